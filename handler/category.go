package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jfinfosena/25adso-pap/domain"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/samber/lo"
)

type CategoryHandler struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
}

func NewCategoryHandler(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		items:      items,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category := repository.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(category, 0))
}

func (h *CategoryHandler) List(c *gin.Context) {
	var page domain.Page
	_ = c.ShouldBindQuery(&page)
	page = page.Normalize()

	categories, err := h.categories.List(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(categories, toCategoryResponse))
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category, 0))
}

// Items lists the items belonging to one category.
func (h *CategoryHandler) Items(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.categories.GetByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.items.ListByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(items, toItemResponse))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := h.categories.Update(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category, 0))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toCategoryResponse(category repository.Category, _ int) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}
