package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCartStore keeps cart snapshots in Redis with a sliding TTL, so
// abandoned session carts expire on their own.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisCartStoreConfig holds Redis connection details for the cart store.
type RedisCartStoreConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCartStore creates a new RedisCartStore.
func NewRedisCartStore(cfg RedisCartStoreConfig) *RedisCartStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &RedisCartStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
	}
}

// Ping verifies connectivity to Redis.
func (s *RedisCartStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get returns the stored snapshot for a session, or ErrCartNotFound.
func (s *RedisCartStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, &ErrCartNotFound{SessionID: sessionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}
	return data, nil
}

// Set stores a snapshot for a session and refreshes its TTL.
func (s *RedisCartStore) Set(ctx context.Context, sessionID string, snapshot []byte) error {
	if err := s.client.Set(ctx, cartKey(sessionID), snapshot, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart for session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the stored snapshot for a session.
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}
	return nil
}
