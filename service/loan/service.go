package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jfinfosena/25adso-pap/domain"
	"github.com/jfinfosena/25adso-pap/event"
	"github.com/jfinfosena/25adso-pap/repository"
)

// StockInvalidator drops cached item state after a loan changed its stock.
type StockInvalidator interface {
	Invalidate(ctx context.Context, itemID uint)
}

type IService interface {
	Checkout(ctx context.Context, req domain.CreateLoanRequest) (repository.Loan, error)
	Return(ctx context.Context, id uint) (repository.Loan, error)
	Cancel(ctx context.Context, id uint) (repository.Loan, error)
	Get(ctx context.Context, id uint) (repository.Loan, error)
	List(ctx context.Context, query repository.LoanQuery) ([]repository.Loan, error)
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

func NewService(
	repo repository.LoanRepository,
	invalidator StockInvalidator,
	loanPeriod time.Duration,
) IService {
	return &service{
		repo:        repo,
		invalidator: invalidator,
		loanPeriod:  loanPeriod,
	}
}

type service struct {
	repo        repository.LoanRepository
	invalidator StockInvalidator
	loanPeriod  time.Duration
}

func (s *service) Checkout(ctx context.Context, req domain.CreateLoanRequest) (repository.Loan, error) {
	loan := repository.Loan{
		Reference: uuid.New().String(),
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		DueAt:     time.Now().Add(s.loanPeriod),
	}
	created, err := s.repo.Checkout(ctx, loan, event.Marshaller(event.TypeLoanCreated))
	if err != nil {
		return repository.Loan{}, err
	}
	s.invalidate(ctx, created.ItemID)
	return created, nil
}

func (s *service) Return(ctx context.Context, id uint) (repository.Loan, error) {
	returned, err := s.repo.Return(ctx, id, event.Marshaller(event.TypeLoanReturned))
	if err != nil {
		return repository.Loan{}, err
	}
	s.invalidate(ctx, returned.ItemID)
	return returned, nil
}

func (s *service) Cancel(ctx context.Context, id uint) (repository.Loan, error) {
	cancelled, err := s.repo.Cancel(ctx, id, event.Marshaller(event.TypeLoanCancelled))
	if err != nil {
		return repository.Loan{}, err
	}
	s.invalidate(ctx, cancelled.ItemID)
	return cancelled, nil
}

func (s *service) Get(ctx context.Context, id uint) (repository.Loan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, query repository.LoanQuery) ([]repository.Loan, error) {
	return s.repo.List(ctx, query)
}

func (s *service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	return s.repo.MarkOverdue(ctx, now, event.Marshaller(event.TypeLoanOverdue))
}

func (s *service) invalidate(ctx context.Context, itemID uint) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, itemID)
	}
}
