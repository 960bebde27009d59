// Package redis stores session progress in Redis, one string key per chat.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

// Options holds Redis connection settings.
type Options struct {
	Address  string
	Password string
	DB       int
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// ProgressRepository persists serialized progress as Redis strings without expiry.
type ProgressRepository struct {
	client redis.UniversalClient
}

// NewProgressRepository creates a ProgressRepository on top of client.
func NewProgressRepository(client redis.UniversalClient) *ProgressRepository {
	return &ProgressRepository{client: client}
}

func (r *ProgressRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return data, nil
}

func (r *ProgressRepository) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
