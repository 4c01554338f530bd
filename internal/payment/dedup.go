package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// Deduper is a fast-path check for webhook events already handled.
// The database remains the source of truth; a miss here is never trusted alone.
type Deduper interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// RedisDeduper keeps processed event ids in Redis with a TTL.
type RedisDeduper struct {
	client *redis.Client
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{client: client}
}

func (d *RedisDeduper) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

func (d *RedisDeduper) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *RedisDeduper) key(eventID string) string {
	return "payments:webhook:" + eventID
}

// NoopDeduper is used when Redis is not configured
type NoopDeduper struct{}

func (NoopDeduper) IsDuplicate(context.Context, string) (bool, error) { return false, nil }
func (NoopDeduper) Mark(context.Context, string) error                { return nil }
