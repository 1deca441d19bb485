package marketing

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrCodeUnavailable is returned when a click races past the usage limit
var ErrCodeUnavailable = errors.New("promotion code unavailable")

type Repository interface {
	// Channels
	CreateChannel(ctx context.Context, ch *Channel) error
	GetChannel(ctx context.Context, id uint) (*Channel, error)
	ListChannels(ctx context.Context, query ChannelListQuery) ([]Channel, int64, error)
	UpdateChannel(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteChannel(ctx context.Context, id uint) (bool, error)
	ChannelNameExists(ctx context.Context, name string, excludeID uint) (bool, error)

	// Promotion codes
	CreateCode(ctx context.Context, code *PromotionCode) error
	GetCode(ctx context.Context, code string) (*PromotionCode, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListCodesByUser(ctx context.Context, userID uint) ([]PromotionCode, error)
	RecordClick(ctx context.Context, click *PromotionClick, now time.Time) (*PromotionCode, error)
	ClickStats(ctx context.Context, code string, since time.Time) (*ClickStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Channels

func (r *repository) CreateChannel(ctx context.Context, ch *Channel) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *repository) GetChannel(ctx context.Context, id uint) (*Channel, error) {
	var ch Channel
	if err := r.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *repository) ListChannels(ctx context.Context, query ChannelListQuery) ([]Channel, int64, error) {
	var channels []Channel
	var total int64

	db := r.db.WithContext(ctx).Model(&Channel{})
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("channel_name LIKE ? OR utm_source LIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&channels).Error
	return channels, total, err
}

func (r *repository) UpdateChannel(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Channel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteChannel(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&Channel{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *repository) ChannelNameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Channel{}).Where("channel_name = ?", name)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// Promotion codes

func (r *repository) CreateCode(ctx context.Context, code *PromotionCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) GetCode(ctx context.Context, code string) (*PromotionCode, error) {
	var pc PromotionCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&pc).Error; err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&PromotionCode{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *repository) ListCodesByUser(ctx context.Context, userID uint) ([]PromotionCode, error) {
	var codes []PromotionCode
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

// RecordClick stores the click and bumps usage in one transaction. The
// conditional update keeps usage_count from passing usage_limit under
// concurrent clicks.
func (r *repository) RecordClick(ctx context.Context, click *PromotionClick, now time.Time) (*PromotionCode, error) {
	var pc PromotionCode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PromotionCode{}).
			Where("code = ? AND status = ? AND expires_at > ? AND usage_count < usage_limit", click.Code, CodeStatusActive, now).
			Updates(map[string]interface{}{
				"usage_count": gorm.Expr("usage_count + 1"),
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCodeUnavailable
		}

		if err := tx.Create(click).Error; err != nil {
			return err
		}

		return tx.Where("code = ?", click.Code).First(&pc).Error
	})
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

func (r *repository) ClickStats(ctx context.Context, code string, since time.Time) (*ClickStats, error) {
	var stats ClickStats
	err := r.db.WithContext(ctx).Model(&PromotionClick{}).
		Select("COUNT(*) AS total_clicks, COUNT(DISTINCT DATE(created_at)) AS active_days, COUNT(DISTINCT ip_address) AS unique_visitors").
		Where("code = ? AND created_at >= ?", code, since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
