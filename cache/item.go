package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"github.com/jfinfosena/25adso-pap/log"
	"github.com/jfinfosena/25adso-pap/repository"
)

// ItemCache keeps item reads off the database. Redis failures are logged and
// treated as misses so the caller falls through to MySQL.
type ItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewItemCache(client *redis.Client, ttl time.Duration) *ItemCache {
	return &ItemCache{
		client: client,
		ttl:    ttl,
	}
}

// ItemKey is the Redis key holding the cached copy of an item.
func ItemKey(id uint) string {
	return fmt.Sprintf("item:%d", id)
}

func (c *ItemCache) Get(ctx context.Context, id uint) (repository.Item, bool) {
	payload, err := c.client.Get(ctx, ItemKey(id)).Bytes()
	if err == redis.Nil {
		return repository.Item{}, false
	}
	if err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("item cache get %d", id)
		return repository.Item{}, false
	}
	var item repository.Item
	if err := sonic.Unmarshal(payload, &item); err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("item cache decode %d", id)
		return repository.Item{}, false
	}
	return item, true
}

func (c *ItemCache) Set(ctx context.Context, item repository.Item) {
	payload, err := sonic.Marshal(item)
	if err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("item cache encode %d", item.ID)
		return
	}
	if err := c.client.Set(ctx, ItemKey(item.ID), payload, c.ttl).Err(); err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("item cache set %d", item.ID)
	}
}

// Invalidate drops the cached copy after any write touching the item.
func (c *ItemCache) Invalidate(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, ItemKey(id)).Err(); err != nil {
		log.GetLogger(ctx).WithError(err).Warnf("item cache del %d", id)
	}
}
