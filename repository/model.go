package repository

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name  string `gorm:"type:varchar(255);column:name;not null"`
	Email string `gorm:"type:varchar(255);column:email;uniqueIndex;not null"`
}

type Category struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);column:name;uniqueIndex;not null"`
	Description string `gorm:"type:text;column:description"`
}

type Item struct {
	gorm.Model
	SKU         string `gorm:"type:varchar(100);column:sku;uniqueIndex;not null"`
	Name        string `gorm:"type:varchar(255);column:name;index;not null"`
	Description string `gorm:"type:text;column:description"`
	PriceCents  uint   `gorm:"type:int unsigned;column:price_cents;not null"`
	Stock       uint   `gorm:"type:int unsigned;column:stock;not null"`
	CategoryID  uint   `gorm:"column:category_id;index;not null"`
}

type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanReturned  LoanStatus = "returned"
	LoanOverdue   LoanStatus = "overdue"
	LoanCancelled LoanStatus = "cancelled"
)

// Valid reports whether s is one of the known loan statuses.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanActive, LoanReturned, LoanOverdue, LoanCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a loan in status s may move to status to.
// Returned and cancelled are terminal; an overdue loan can still be returned.
func (s LoanStatus) CanTransition(to LoanStatus) bool {
	switch s {
	case LoanActive:
		return to == LoanReturned || to == LoanOverdue || to == LoanCancelled
	case LoanOverdue:
		return to == LoanReturned
	}
	return false
}

type Loan struct {
	gorm.Model
	Reference  string     `gorm:"type:varchar(36);column:reference;uniqueIndex;not null"`
	UserID     uint       `gorm:"column:user_id;index;not null"`
	ItemID     uint       `gorm:"column:item_id;index;not null"`
	Quantity   uint       `gorm:"type:int unsigned;column:quantity;not null"`
	Status     LoanStatus `gorm:"type:varchar(16);column:status;index;not null"`
	DueAt      time.Time  `gorm:"column:due_at;not null"`
	ReturnedAt *time.Time `gorm:"column:returned_at"`
}

type OutboxStatus int

const (
	OutboxPending   OutboxStatus = 1
	OutboxPublished OutboxStatus = 2
)

type Outbox struct {
	ID        uint         `gorm:"primaryKey;column:id"`
	Content   []byte       `gorm:"type:blob;column:content;not null"`
	Status    OutboxStatus `gorm:"type:int;column:status;index;not null;default:1"`
	CreatedAt time.Time    `gorm:"column:created_at"`
}

func (Outbox) TableName() string {
	return "outboxes"
}
