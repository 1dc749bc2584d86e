package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// mirrorKey is the fixed key the catalog snapshot lives under.
const mirrorKey = "storefront:catalog:products"

// RedisMirror persists the catalog snapshot in Redis so warm data survives
// process restarts. The entry carries its own expiresAt so TTL semantics
// match the in-memory layer exactly; the Redis key TTL is just a janitor.
type RedisMirror struct {
	client *redis.Client
}

type mirrorEnvelope struct {
	Products  []Product `json:"products"`
	ExpiresAt int64     `json:"expiresAt"` // epoch seconds
}

// NewRedisMirror connects to Redis using a redis:// URL and verifies the
// connection with a bounded Ping.
func NewRedisMirror(redisURL string) (*RedisMirror, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisMirror{client: client}, nil
}

// Load returns the mirrored snapshot and its expiry. A missing key is not an
// error; it returns an empty snapshot.
func (m *RedisMirror) Load(ctx context.Context) ([]Product, time.Time, error) {
	raw, err := m.client.Get(ctx, mirrorKey).Result()
	if err == redis.Nil {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("redis get: %w", err)
	}

	var env mirrorEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode cached catalog: %w", err)
	}
	return env.Products, time.Unix(env.ExpiresAt, 0), nil
}

// Store writes the snapshot under the fixed cache key, expiring with it.
func (m *RedisMirror) Store(ctx context.Context, products []Product, expiresAt time.Time) error {
	env := mirrorEnvelope{
		Products:  products,
		ExpiresAt: expiresAt.Unix(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := m.client.Set(ctx, mirrorKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (m *RedisMirror) Close() error {
	return m.client.Close()
}
