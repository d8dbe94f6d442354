package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// ReactionCounter keeps per-idea reaction totals in Redis
type ReactionCounter struct {
	client *redis.Client
}

func NewReactionCounter(client *redis.Client) *ReactionCounter {
	return &ReactionCounter{client: client}
}

func reactionKey(ideaID string) string {
	return fmt.Sprintf("idea:reactions:%s", ideaID)
}

func (c *ReactionCounter) Increment(ctx context.Context, ideaID string) error {
	return c.client.Incr(ctx, reactionKey(ideaID)).Err()
}

func (c *ReactionCounter) Decrement(ctx context.Context, ideaID string) error {
	return c.client.Decr(ctx, reactionKey(ideaID)).Err()
}

// Get returns the cached total. ok is false when the key is absent.
func (c *ReactionCounter) Get(ctx context.Context, ideaID string) (count int64, ok bool, err error) {
	value, err := c.client.Get(ctx, reactionKey(ideaID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err = strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (c *ReactionCounter) Set(ctx context.Context, ideaID string, count int64) error {
	return c.client.Set(ctx, reactionKey(ideaID), count, 0).Err()
}

func (c *ReactionCounter) Delete(ctx context.Context, ideaID string) error {
	return c.client.Del(ctx, reactionKey(ideaID)).Err()
}
