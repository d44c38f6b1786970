package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "catalog-admin:session:"

type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository stores sessions as plain keys with a TTL
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func (r *redisSessionRepository) Save(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, redisSessionPrefix+sessionID, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Find(ctx context.Context, sessionID string) (string, error) {
	token, err := r.client.Get(ctx, redisSessionPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to find session: %w", err)
	}
	return token, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisSessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
