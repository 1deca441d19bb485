package enrollment

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uint) (*Application, error)
	List(ctx context.Context, query ApplicationListQuery) ([]Application, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	CountBySource(ctx context.Context) ([]SourceCount, error)
	CountByChannel(ctx context.Context) ([]ChannelCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, app *Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Application, error) {
	var app Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) List(ctx context.Context, query ApplicationListQuery) ([]Application, int64, error) {
	var apps []Application
	var total int64

	db := r.db.WithContext(ctx).Model(&Application{})

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("student_name LIKE ? OR parent_name LIKE ? OR contact_phone LIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Application{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&Application{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(allStatuses))
	for _, s := range allStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) CountBySource(ctx context.Context) ([]SourceCount, error) {
	var rows []SourceCount
	err := r.db.WithContext(ctx).Model(&Application{}).
		Select("application_source AS source, COUNT(*) AS count").
		Group("application_source").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountByChannel(ctx context.Context) ([]ChannelCount, error) {
	var rows []ChannelCount
	err := r.db.WithContext(ctx).Model(&Application{}).
		Select("enrollment_applications.channel_id AS channel_id, COALESCE(channel_trackings.channel_name, '') AS channel_name, COUNT(*) AS count").
		Joins("LEFT JOIN channel_trackings ON channel_trackings.id = enrollment_applications.channel_id").
		Group("enrollment_applications.channel_id, channel_trackings.channel_name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
