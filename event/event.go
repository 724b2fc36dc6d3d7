package event

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/jfinfosena/25adso-pap/repository"
)

const (
	TypeLoanCreated   string = "loan.created"
	TypeLoanReturned  string = "loan.returned"
	TypeLoanCancelled string = "loan.cancelled"
	TypeLoanOverdue   string = "loan.overdue"
)

// LoanEvent is the wire format pushed through the outbox to Kafka.
type LoanEvent struct {
	Type      string    `json:"type"`
	Reference string    `json:"reference"`
	LoanID    uint      `json:"loan_id"`
	UserID    uint      `json:"user_id"`
	ItemID    uint      `json:"item_id"`
	Quantity  uint      `json:"quantity"`
	Status    string    `json:"status"`
	DueAt     time.Time `json:"due_at"`
	At        time.Time `json:"at"`
}

// FromLoan builds the event payload for a loan that just changed.
func FromLoan(eventType string, loan repository.Loan) LoanEvent {
	return LoanEvent{
		Type:      eventType,
		Reference: loan.Reference,
		LoanID:    loan.ID,
		UserID:    loan.UserID,
		ItemID:    loan.ItemID,
		Quantity:  loan.Quantity,
		Status:    string(loan.Status),
		DueAt:     loan.DueAt,
		At:        time.Now(),
	}
}

func (e LoanEvent) MarshalBinary() ([]byte, error) {
	return sonic.Marshal(e)
}

// Marshaller returns a repository.EventFunc that serializes the given event
// type for whatever loan the repository hands back.
func Marshaller(eventType string) repository.EventFunc {
	return func(loan repository.Loan) ([]byte, error) {
		return sonic.Marshal(FromLoan(eventType, loan))
	}
}
