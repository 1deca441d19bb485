package errorlogs

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, entry *ErrorLog) error
	List(ctx context.Context, query ListQuery) ([]ErrorLog, int64, error)
	CountByLevel(ctx context.Context) (map[Level]int64, error)
	CountBySource(ctx context.Context) (map[string]int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts entry. A row with the same event id is left untouched.
func (r *repository) Create(ctx context.Context, entry *ErrorLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(entry).Error
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]ErrorLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&ErrorLog{})
	if query.Level != "" {
		q = q.Where("level = ?", query.Level)
	}
	if query.Source != "" {
		q = q.Where("source = ?", query.Source)
	}
	if query.Component != "" {
		q = q.Where("component = ?", query.Component)
	}
	if query.Keyword != "" {
		q = q.Where("message ILIKE ?", "%"+query.Keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []ErrorLog
	err := q.Order("created_at DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&logs).Error
	return logs, total, err
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *repository) countBy(ctx context.Context, column string) ([]groupCount, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(&ErrorLog{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountByLevel(ctx context.Context) (map[Level]int64, error) {
	rows, err := r.countBy(ctx, "level")
	if err != nil {
		return nil, err
	}
	counts := make(map[Level]int64, len(rows))
	for _, row := range rows {
		counts[Level(row.Key)] = row.Count
	}
	return counts, nil
}

func (r *repository) CountBySource(ctx context.Context) (map[string]int64, error) {
	rows, err := r.countBy(ctx, "source")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ErrorLog{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&ErrorLog{})
	return result.RowsAffected, result.Error
}
