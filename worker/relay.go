package worker

import (
	"context"
	"time"

	"github.com/jfinfosena/25adso-pap/kafka"
	"github.com/jfinfosena/25adso-pap/log"
	"github.com/jfinfosena/25adso-pap/repository"
)

// Relay drains pending outbox rows to Kafka. Rows are only marked published
// after the producer acknowledged them, so a crash replays instead of losing.
type Relay struct {
	outbox   repository.OutboxRepository
	producer kafka.IProducer
	every    time.Duration
	batch    int
}

func NewRelay(
	outbox repository.OutboxRepository,
	producer kafka.IProducer,
	every time.Duration,
	batch int,
) *Relay {
	return &Relay{
		outbox:   outbox,
		producer: producer,
		every:    every,
		batch:    batch,
	}
}

func (r *Relay) Run(ctx context.Context) {
	logger := log.GetLogger(ctx)
	logger.Infoln("starting the outbox relay")
	ticker := time.NewTicker(r.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Infoln("stopping the outbox relay")
			return
		case <-ticker.C:
			if err := r.RelayOnce(ctx); err != nil {
				logger.WithError(err).Errorf("outbox relay err: %s\n", err)
			}
		}
	}
}

// RelayOnce pushes one batch of pending rows and marks them published.
func (r *Relay) RelayOnce(ctx context.Context) error {
	outboxes, err := r.outbox.GetPending(ctx, r.batch)
	if err != nil {
		return err
	}
	if len(outboxes) == 0 {
		return nil
	}

	if err := r.producer.Push(extractContents(outboxes)); err != nil {
		return err
	}

	return r.outbox.MarkPublished(ctx, extractIDs(outboxes))
}

func extractIDs(outboxes []repository.Outbox) []uint {
	var res []uint
	for _, outbox := range outboxes {
		res = append(res, outbox.ID)
	}
	return res
}

func extractContents(outboxes []repository.Outbox) [][]byte {
	var res [][]byte
	for _, outbox := range outboxes {
		res = append(res, outbox.Content)
	}
	return res
}
