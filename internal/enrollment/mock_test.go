package enrollment

import (
	"context"

	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, app *Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*Application, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*Application)
	return app, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, query ApplicationListQuery) ([]Application, int64, error) {
	args := m.Called(ctx, query)
	apps, _ := args.Get(0).([]Application)
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[Status]int64)
	return counts, args.Error(1)
}

func (m *mockRepository) CountBySource(ctx context.Context) ([]SourceCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]SourceCount)
	return rows, args.Error(1)
}

func (m *mockRepository) CountByChannel(ctx context.Context) ([]ChannelCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]ChannelCount)
	return rows, args.Error(1)
}

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateApplication(ctx context.Context, user *users.AuthUser, req CreateApplicationRequest) (*Application, error) {
	args := m.Called(ctx, user, req)
	app, _ := args.Get(0).(*Application)
	return app, args.Error(1)
}

func (m *mockService) GetApplication(ctx context.Context, id uint) (*Application, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*Application)
	return app, args.Error(1)
}

func (m *mockService) ListApplications(ctx context.Context, query ApplicationListQuery) (*response.PagedData, error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*response.PagedData)
	return page, args.Error(1)
}

func (m *mockService) UpdateStatus(ctx context.Context, user *users.AuthUser, id uint, req UpdateStatusRequest) (*Application, error) {
	args := m.Called(ctx, user, id, req)
	app, _ := args.Get(0).(*Application)
	return app, args.Error(1)
}

func (m *mockService) DeleteApplication(ctx context.Context, user *users.AuthUser, id uint) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func (m *mockService) GetStats(ctx context.Context) (*StatsResponse, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*StatsResponse)
	return stats, args.Error(1)
}
