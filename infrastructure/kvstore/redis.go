package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore grava o estado como RFC3339Nano em chaves prefixadas
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(accountID string) string {
	return s.prefix + accountID
}

func (s *RedisStore) GetLastSync(ctx context.Context, accountID string) (*time.Time, error) {
	value, err := s.client.Get(ctx, s.key(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler última sincronização: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("valor inválido de última sincronização %q: %w", value, err)
	}

	return &at, nil
}

func (s *RedisStore) SetLastSync(ctx context.Context, accountID string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(accountID), at.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("erro ao gravar última sincronização: %w", err)
	}
	return nil
}
