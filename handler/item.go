package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jfinfosena/25adso-pap/cache"
	"github.com/jfinfosena/25adso-pap/domain"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/samber/lo"
)

type ItemHandler struct {
	items repository.ItemRepository
	cache *cache.ItemCache
}

func NewItemHandler(items repository.ItemRepository, itemCache *cache.ItemCache) *ItemHandler {
	return &ItemHandler{
		items: items,
		cache: itemCache,
	}
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req domain.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item := repository.Item{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := h.items.Create(c.Request.Context(), &item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemResponse(item, 0))
}

func (h *ItemHandler) List(c *gin.Context) {
	var filter domain.ItemFilter
	_ = c.ShouldBindQuery(&filter)
	filter.Page = filter.Page.Normalize()

	items, err := h.items.List(c.Request.Context(), repository.ItemQuery{
		CategoryID: filter.CategoryID,
		Name:       filter.Name,
		InStock:    filter.InStock,
		Sort:       filter.Sort,
		Descending: filter.Order == "desc",
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Map(items, toItemResponse))
}

func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if h.cache != nil {
		if item, hit := h.cache.Get(ctx, id); hit {
			c.JSON(http.StatusOK, toItemResponse(item, 0))
			return
		}
	}
	item, err := h.items.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Set(ctx, item)
	}
	c.JSON(http.StatusOK, toItemResponse(item, 0))
}

func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	item, err := h.items.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.PriceCents != nil {
		item.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if err := h.items.Update(ctx, &item); err != nil {
		respondError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(ctx, id)
	}
	c.JSON(http.StatusOK, toItemResponse(item, 0))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.items.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(ctx, id)
	}
	c.Status(http.StatusNoContent)
}

func toItemResponse(item repository.Item, _ int) domain.ItemResponse {
	return domain.ItemResponse{
		ID:          item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Stock:       item.Stock,
		CategoryID:  item.CategoryID,
		CreatedAt:   item.CreatedAt,
	}
}
