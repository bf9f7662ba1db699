package candidate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hireflow/pkg/platform/sentinel"
)

// RedisSequencer allocates daily sequences with INCR, which is atomic across
// processes. This is the multi-writer answer to the duplicate-identifier race
// the scan-based allocator had: no two INCR calls observe the same value.
type RedisSequencer struct {
	client *redis.Client
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

func (s *RedisSequencer) Next(ctx context.Context, dateID string) (int, error) {
	key := "hireflow:candseq:" + dateID
	seq, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w (%w)", key, err, sentinel.ErrUnavailable)
	}
	// Keys expire well after the day ends; identifiers embed the date so a
	// reset the following day is harmless.
	s.client.Expire(ctx, key, 48*time.Hour)
	return int(seq), nil
}
