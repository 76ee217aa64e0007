package cache

import (
	"context"
	"encoding/json"
	"time"

	"poll-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const pollKeyPrefix = "poll:view:"

// PollCache is a read-through cache for the sanitized public poll view.
// Submission processing never reads it, only invalidates it: a
// submission must always validate against the live poll structure.
type PollCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPollCache(client *redis.Client, ttl time.Duration) *PollCache {
	return &PollCache{client: client, ttl: ttl}
}

// Get returns the cached view, or nil on miss or any Redis failure. The
// cache degrades to pass-through when Redis is down.
func (c *PollCache) Get(ctx context.Context, pollID string) *models.Poll {
	if c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, pollKeyPrefix+pollID).Bytes()
	if err != nil {
		return nil
	}
	var poll models.Poll
	if err := json.Unmarshal(raw, &poll); err != nil {
		return nil
	}
	return &poll
}

func (c *PollCache) Set(ctx context.Context, poll *models.Poll) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(poll)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pollKeyPrefix+poll.ID, raw, c.ttl).Err()
}

func (c *PollCache) Invalidate(ctx context.Context, pollID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, pollKeyPrefix+pollID).Err()
}
