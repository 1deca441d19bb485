package errorlogs

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, entry *ErrorLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockRepository) List(ctx context.Context, query ListQuery) ([]ErrorLog, int64, error) {
	args := m.Called(ctx, query)
	logs, _ := args.Get(0).([]ErrorLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) CountByLevel(ctx context.Context) (map[Level]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[Level]int64)
	return counts, args.Error(1)
}

func (m *mockRepository) CountBySource(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *mockRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// recordingPublisher keeps what it was given, failing with err when set.
type recordingPublisher struct {
	mu        sync.Mutex
	published []*ErrorLog
	err       error
	delay     time.Duration
}

func (p *recordingPublisher) Publish(ctx context.Context, entry *ErrorLog) error {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, entry)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}
