package xredis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint of every SCAN round trip.
const scanBatch = 100

// Client stores JSON encoded objects under string keys.
type Client interface {
	SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObj(ctx context.Context, key string, v any) error
	Del(ctx context.Context, keys ...string) error
	ScanKeys(ctx context.Context, match string) ([]string, error)
	Close() error
}

type client struct {
	rdb *redis.Client
}

// NewClient connects to the configured redis server and fails if it does not answer PING.
func NewClient(ctx context.Context, cfg config.RedisConfigs) (*client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      3,
		MinRetryBackoff: 10 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolSize:        10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}

	return &client{rdb: rdb}, nil
}

// IsNil reports whether err means that the key does not exist.
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *client) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *client) GetObj(ctx context.Context, key string, v any) error {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil && !IsNil(err) {
		return err
	}
	return nil
}

// ScanKeys iterates the keyspace with SCAN so a large cache never blocks the server.
func (c *client) ScanKeys(ctx context.Context, match string) ([]string, error) {
	keys := []string{}
	iter := c.rdb.Scan(ctx, 0, match, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	return keys, iter.Err()
}

func (c *client) Close() error {
	return c.rdb.Close()
}
