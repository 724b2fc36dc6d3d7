package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jfinfosena/25adso-pap/domain"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/jfinfosena/25adso-pap/service/loan"
	"github.com/samber/lo"
)

type LoanHandler struct {
	loans loan.IService
}

func NewLoanHandler(loans loan.IService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func (h *LoanHandler) Checkout(c *gin.Context) {
	var req domain.CreateLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.loans.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLoanResponse(created, 0))
}

func (h *LoanHandler) Return(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	returned, err := h.loans.Return(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(returned, 0))
}

func (h *LoanHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cancelled, err := h.loans.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(cancelled, 0))
}

func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.loans.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(found, 0))
}

func (h *LoanHandler) List(c *gin.Context) {
	var filter domain.LoanFilter
	_ = c.ShouldBindQuery(&filter)
	filter.Page = filter.Page.Normalize()

	status := repository.LoanStatus(filter.Status)
	if filter.Status != "" && !status.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown loan status"})
		return
	}

	loans, err := h.loans.List(c.Request.Context(), repository.LoanQuery{
		Status: status,
		UserID: filter.UserID,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(loans, toLoanResponse))
}

func toLoanResponse(l repository.Loan, _ int) domain.LoanResponse {
	return domain.LoanResponse{
		ID:         l.ID,
		Reference:  l.Reference,
		UserID:     l.UserID,
		ItemID:     l.ItemID,
		Quantity:   l.Quantity,
		Status:     string(l.Status),
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		CreatedAt:  l.CreatedAt,
	}
}
