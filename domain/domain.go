package domain

import "time"

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateItemRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	PriceCents  uint   `json:"price_cents" binding:"required"`
	Stock       uint   `json:"stock"`
	CategoryID  uint   `json:"category_id" binding:"required"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *uint   `json:"price_cents,omitempty"`
	Stock       *uint   `json:"stock,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}

type ItemResponse struct {
	ID          uint      `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  uint      `json:"price_cents"`
	Stock       uint      `json:"stock"`
	CategoryID  uint      `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemFilter narrows GET /items. Zero values mean "no filter".
type ItemFilter struct {
	CategoryID uint   `form:"category_id"`
	Name       string `form:"name"`
	InStock    bool   `form:"in_stock"`
	Sort       string `form:"sort"`
	Order      string `form:"order"`
	Page
}

type CreateLoanRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity uint `json:"quantity" binding:"required,loanqty"`
}

type LoanFilter struct {
	Status string `form:"status"`
	UserID uint   `form:"user_id"`
	Page
}

type LoanResponse struct {
	ID         uint       `json:"id"`
	Reference  string     `json:"reference"`
	UserID     uint       `json:"user_id"`
	ItemID     uint       `json:"item_id"`
	Quantity   uint       `json:"quantity"`
	Status     string     `json:"status"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
