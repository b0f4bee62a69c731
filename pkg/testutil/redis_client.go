package testutil

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient keeps values in memory unless the corresponding func is set.
type MockRedisClient struct {
	DelFunc      func(ctx context.Context, keys ...string) error
	ScanKeysFunc func(ctx context.Context, match string) ([]string, error)
	SetObjFunc   func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc   func(ctx context.Context, key string, v any) error

	mutex  sync.Mutex
	values map[string][]byte
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}

	return nil
}

func (m *MockRedisClient) ScanKeys(ctx context.Context, match string) ([]string, error) {
	if m.ScanKeysFunc != nil {
		return m.ScanKeysFunc(ctx, match)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	keys := []string{}
	for k := range m.values {
		if ok, _ := path.Match(match, k); ok {
			keys = append(keys, k)
		}
	}

	return keys, nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = b
	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	m.mutex.Lock()
	b, ok := m.values[key]
	m.mutex.Unlock()
	if !ok {
		return redis.Nil
	}

	return json.Unmarshal(b, v)
}

func (m *MockRedisClient) Close() error {
	return nil
}
