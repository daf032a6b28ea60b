package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ValkeyConfig describes how to reach a Valkey (or any RESP compatible) server.
type ValkeyConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Valkey stores values in a Valkey server.
type Valkey struct {
	client *redis.Client
	prefix string
}

// NewValkey connects lazily; call Ping to verify the server is reachable.
func NewValkey(cfg ValkeyConfig) *Valkey {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Valkey{client: client, prefix: cfg.KeyPrefix}
}

func (v *Valkey) key(k string) string { return v.prefix + k }

// Get returns the value stored under key.
func (v *Valkey) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := v.client.Get(ctx, v.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %q: %w", key, err)
	}
	return data, nil
}

// Set stores value under key without expiry.
func (v *Valkey) Set(ctx context.Context, key string, value []byte) error {
	if err := v.client.Set(ctx, v.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %q: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (v *Valkey) Ping(ctx context.Context) error {
	if err := v.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("valkey ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (v *Valkey) Close() error { return v.client.Close() }
