package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFunc builds the outbox payload for a loan mutation. It runs inside the
// same transaction as the mutation, so a payload exists iff the row changed.
type EventFunc func(Loan) ([]byte, error)

// LoanQuery narrows loan listings.
type LoanQuery struct {
	Status LoanStatus
	UserID uint
	Limit  int
	Offset int
}

type loanRepository struct {
	database *gorm.DB
}

// Checkout creates an active loan and deducts the borrowed quantity from the
// item's stock under a row lock, all in one transaction.
func (l *loanRepository) Checkout(ctx context.Context, loan Loan, event EventFunc) (Loan, error) {
	tx := l.database.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Loan{}, tx.Error
	}

	var user User
	if err := tx.First(&user, loan.UserID).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	var item Item
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, loan.ItemID).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}
	if item.Stock < loan.Quantity {
		tx.Rollback()
		return Loan{}, ErrInsufficientStock
	}
	item.Stock -= loan.Quantity
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	loan.Status = LoanActive
	if err := tx.Create(&loan).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	if err := l.appendOutbox(tx, loan, event); err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// Return moves a loan to returned and restores the item's stock. Late returns
// of overdue loans are allowed.
func (l *loanRepository) Return(ctx context.Context, id uint, event EventFunc) (Loan, error) {
	return l.transition(ctx, id, LoanReturned, true, event)
}

// Cancel moves an active loan to cancelled and restores the item's stock.
func (l *loanRepository) Cancel(ctx context.Context, id uint, event EventFunc) (Loan, error) {
	return l.transition(ctx, id, LoanCancelled, true, event)
}

func (l *loanRepository) transition(ctx context.Context, id uint, to LoanStatus, restock bool, event EventFunc) (Loan, error) {
	tx := l.database.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Loan{}, tx.Error
	}

	var loan Loan
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&loan, id).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}
	if !loan.Status.CanTransition(to) {
		tx.Rollback()
		return Loan{}, ErrInvalidTransition
	}

	if restock {
		var item Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, loan.ItemID).Error; err != nil {
			tx.Rollback()
			return Loan{}, err
		}
		item.Stock += loan.Quantity
		if err := tx.Save(&item).Error; err != nil {
			tx.Rollback()
			return Loan{}, err
		}
	}

	loan.Status = to
	if to == LoanReturned {
		now := time.Now()
		loan.ReturnedAt = &now
	}
	if err := tx.Save(&loan).Error; err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	if err := l.appendOutbox(tx, loan, event); err != nil {
		tx.Rollback()
		return Loan{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// MarkOverdue flips every active loan past its due date to overdue and returns
// how many were flipped. Stock stays deducted: the item is still out.
func (l *loanRepository) MarkOverdue(ctx context.Context, now time.Time, event EventFunc) (int, error) {
	tx := l.database.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	var loans []Loan
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? AND due_at < ?", LoanActive, now).
		Find(&loans).Error
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for i := range loans {
		loans[i].Status = LoanOverdue
		if err := tx.Save(&loans[i]).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		if err := l.appendOutbox(tx, loans[i], event); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(loans), nil
}

func (l *loanRepository) GetByID(ctx context.Context, id uint) (Loan, error) {
	var loan Loan
	err := l.database.WithContext(ctx).Model(Loan{}).First(&loan, id).Error
	return loan, err
}

func (l *loanRepository) List(ctx context.Context, query LoanQuery) ([]Loan, error) {
	tx := l.database.WithContext(ctx).Model(Loan{})
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}
	if query.UserID != 0 {
		tx = tx.Where("user_id = ?", query.UserID)
	}
	var loans []Loan
	err := tx.Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&loans).Error
	return loans, err
}

func (l *loanRepository) appendOutbox(tx *gorm.DB, loan Loan, event EventFunc) error {
	if event == nil {
		return nil
	}
	content, err := event(loan)
	if err != nil {
		return err
	}
	return tx.Create(&Outbox{Content: content, Status: OutboxPending}).Error
}

type LoanRepository interface {
	Checkout(ctx context.Context, loan Loan, event EventFunc) (Loan, error)
	Return(ctx context.Context, id uint, event EventFunc) (Loan, error)
	Cancel(ctx context.Context, id uint, event EventFunc) (Loan, error)
	MarkOverdue(ctx context.Context, now time.Time, event EventFunc) (int, error)
	GetByID(ctx context.Context, id uint) (Loan, error)
	List(ctx context.Context, query LoanQuery) ([]Loan, error)
}

func NewLoanRepo(db *gorm.DB) LoanRepository {
	return &loanRepository{database: db}
}
