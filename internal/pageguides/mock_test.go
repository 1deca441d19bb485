package pageguides

import (
	"context"

	"kinderadmin/pkg/cache"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindActiveByPath(ctx context.Context, pagePath string) (*PageGuide, error) {
	args := m.Called(ctx, pagePath)
	g, _ := args.Get(0).(*PageGuide)
	return g, args.Error(1)
}

func (m *mockRepository) ListActive(ctx context.Context) ([]PageGuide, error) {
	args := m.Called(ctx)
	guides, _ := args.Get(0).([]PageGuide)
	return guides, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, query GuideListQuery) ([]PageGuide, int64, error) {
	args := m.Called(ctx, query)
	guides, _ := args.Get(0).([]PageGuide)
	return guides, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*PageGuide, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*PageGuide)
	return g, args.Error(1)
}

func (m *mockRepository) GetByPath(ctx context.Context, pagePath string) (*PageGuide, error) {
	args := m.Called(ctx, pagePath)
	g, _ := args.Get(0).(*PageGuide)
	return g, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, guide *PageGuide) error {
	return m.Called(ctx, guide).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, id uint, updates map[string]interface{}, sections *[]Section) error {
	return m.Called(ctx, id, updates, sections).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// spyCache misses like a disabled cache and records invalidated patterns.
type spyCache struct {
	cache.Service
	invalidated []string
}

func newSpyCache() *spyCache {
	return &spyCache{Service: cache.NewService(nil)}
}

func (s *spyCache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	s.invalidated = append(s.invalidated, pattern)
	return 0, nil
}
