package marketing

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateChannel(ctx context.Context, ch *Channel) error {
	return m.Called(ctx, ch).Error(0)
}

func (m *mockRepository) GetChannel(ctx context.Context, id uint) (*Channel, error) {
	args := m.Called(ctx, id)
	ch, _ := args.Get(0).(*Channel)
	return ch, args.Error(1)
}

func (m *mockRepository) ListChannels(ctx context.Context, query ChannelListQuery) ([]Channel, int64, error) {
	args := m.Called(ctx, query)
	channels, _ := args.Get(0).([]Channel)
	return channels, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) UpdateChannel(ctx context.Context, id uint, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockRepository) DeleteChannel(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ChannelNameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateCode(ctx context.Context, code *PromotionCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockRepository) GetCode(ctx context.Context, code string) (*PromotionCode, error) {
	args := m.Called(ctx, code)
	pc, _ := args.Get(0).(*PromotionCode)
	return pc, args.Error(1)
}

func (m *mockRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ListCodesByUser(ctx context.Context, userID uint) ([]PromotionCode, error) {
	args := m.Called(ctx, userID)
	codes, _ := args.Get(0).([]PromotionCode)
	return codes, args.Error(1)
}

func (m *mockRepository) RecordClick(ctx context.Context, click *PromotionClick, now time.Time) (*PromotionCode, error) {
	args := m.Called(ctx, click, now)
	pc, _ := args.Get(0).(*PromotionCode)
	return pc, args.Error(1)
}

func (m *mockRepository) ClickStats(ctx context.Context, code string, since time.Time) (*ClickStats, error) {
	args := m.Called(ctx, code, since)
	stats, _ := args.Get(0).(*ClickStats)
	return stats, args.Error(1)
}
