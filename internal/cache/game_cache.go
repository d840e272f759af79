package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vibechat/internal/model"
)

// GameCache keeps the latest session snapshot per chat so reads after a
// push notification don't hit MongoDB. Always written after a
// successful versioned update; safe to lose.
type GameCache interface {
	SetSnapshot(ctx context.Context, session *model.GameSession) error
	GetSnapshot(ctx context.Context, chatID string) (*model.GameSession, error)
	Delete(ctx context.Context, chatID string) error
}

type gameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameCache(client *redis.Client) GameCache {
	return &gameCache{
		client: client,
		ttl:    24 * time.Hour, // Matches the session document TTL
	}
}

func (c *gameCache) key(chatID string) string {
	return fmt.Sprintf("game:%s", chatID)
}

func (c *gameCache) SetSnapshot(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ChatID), data, c.ttl).Err()
}

func (c *gameCache) GetSnapshot(ctx context.Context, chatID string) (*model.GameSession, error) {
	data, err := c.client.Get(ctx, c.key(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *gameCache) Delete(ctx context.Context, chatID string) error {
	return c.client.Del(ctx, c.key(chatID)).Err()
}
