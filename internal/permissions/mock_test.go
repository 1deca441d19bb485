package permissions

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"kinderadmin/pkg/cache"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListRoutes(ctx context.Context) ([]Permission, error) {
	args := m.Called(ctx)
	perms, _ := args.Get(0).([]Permission)
	return perms, args.Error(1)
}

func (m *mockRepository) ListEnabled(ctx context.Context) ([]Permission, error) {
	args := m.Called(ctx)
	perms, _ := args.Get(0).([]Permission)
	return perms, args.Error(1)
}

func (m *mockRepository) ListForUser(ctx context.Context, userID uint) ([]Permission, error) {
	args := m.Called(ctx, userID)
	perms, _ := args.Get(0).([]Permission)
	return perms, args.Error(1)
}

func (m *mockRepository) HasPermission(ctx context.Context, userID uint, path, code string) (bool, error) {
	args := m.Called(ctx, userID, path, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetRoleByCode(ctx context.Context, code string) (*Role, error) {
	args := m.Called(ctx, code)
	role, _ := args.Get(0).(*Role)
	return role, args.Error(1)
}

func (m *mockRepository) UserIDsForRole(ctx context.Context, roleID uint) ([]uint, error) {
	args := m.Called(ctx, roleID)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

// memoryCache is an in-process cache.Service for exercising hit and miss paths.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

func (m *memoryCache) Count(_ context.Context, pattern string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			n++
		}
	}
	return n, nil
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func (m *memoryCache) Enabled() bool { return true }

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
