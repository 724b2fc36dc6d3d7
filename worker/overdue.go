package worker

import (
	"context"
	"time"

	"github.com/jfinfosena/25adso-pap/log"
)

// OverdueMarker is the slice of the loan service the sweeper needs.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// Sweeper periodically flips active loans past their due date to overdue.
type Sweeper struct {
	loans OverdueMarker
	every time.Duration
}

func NewSweeper(loans OverdueMarker, every time.Duration) *Sweeper {
	return &Sweeper{
		loans: loans,
		every: every,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	logger := log.GetLogger(ctx)
	logger.Infoln("starting the overdue sweeper")
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Infoln("stopping the overdue sweeper")
			return
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}

// Sweep runs one pass. Split out of Run so a pass can be triggered directly.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) {
	logger := log.GetLogger(ctx)
	n, err := s.loans.MarkOverdue(ctx, now)
	if err != nil {
		logger.WithError(err).Errorf("overdue sweep err: %s\n", err)
		return
	}
	if n > 0 {
		logger.Infof("marked %d loans overdue", n)
	}
}
