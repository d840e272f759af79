package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceCache tracks which users are currently online. A user is
// online while their presence key exists; WebSocket connect and pong
// heartbeats refresh the TTL, so presence decays on its own when a
// client vanishes.
type PresenceCache interface {
	Heartbeat(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
	OnlineAmong(ctx context.Context, userIDs []string) (map[string]bool, error)
	Clear(ctx context.Context, userID string) error
}

type presenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPresenceCache(client *redis.Client) PresenceCache {
	return &presenceCache{
		client: client,
		ttl:    60 * time.Second,
	}
}

func (c *presenceCache) key(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

func (c *presenceCache) Heartbeat(ctx context.Context, userID string) error {
	return c.client.Set(ctx, c.key(userID), "1", c.ttl).Err()
}

func (c *presenceCache) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(userID)).Result()
	return n > 0, err
}

// OnlineAmong checks a batch of users in one round trip.
func (c *presenceCache) OnlineAmong(ctx context.Context, userIDs []string) (map[string]bool, error) {
	if len(userIDs) == 0 {
		return map[string]bool{}, nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(userIDs))
	for i, id := range userIDs {
		cmds[i] = pipe.Exists(ctx, c.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	online := make(map[string]bool, len(userIDs))
	for i, id := range userIDs {
		online[id] = cmds[i].Val() > 0
	}
	return online, nil
}

func (c *presenceCache) Clear(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
