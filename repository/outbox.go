package repository

import (
	"context"

	"gorm.io/gorm"
)

type outboxRepository struct {
	database *gorm.DB
}

func (o *outboxRepository) GetPending(ctx context.Context, limit int) ([]Outbox, error) {
	var outboxes []Outbox
	err := o.database.WithContext(ctx).Model(Outbox{}).
		Where("status = ?", OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&outboxes).Error
	return outboxes, err
}

func (o *outboxRepository) MarkPublished(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return o.database.WithContext(ctx).Model(Outbox{}).
		Where("id IN ?", ids).
		Update("status", OutboxPublished).Error
}

type OutboxRepository interface {
	GetPending(ctx context.Context, limit int) ([]Outbox, error)
	MarkPublished(ctx context.Context, ids []uint) error
}

func NewOutboxRepo(db *gorm.DB) OutboxRepository {
	return &outboxRepository{database: db}
}
