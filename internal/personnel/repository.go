package personnel

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, kind Kind, id uint) (*Person, error)
	List(ctx context.Context, kind Kind, query PersonListQuery) ([]Person, int64, error)
	Update(ctx context.Context, kind Kind, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, kind Kind, id uint) (bool, error)
	CountByKind(ctx context.Context) (map[Kind]KindCount, error)
	CountClasses(ctx context.Context) (int64, error)
	GroupBy(ctx context.Context, kind Kind, column string) ([]BucketCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, kind Kind, id uint) (*Person, error) {
	var p Person
	if err := r.db.WithContext(ctx).Where("kind = ?", kind).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, kind Kind, query PersonListQuery) ([]Person, int64, error) {
	var people []Person
	var total int64

	db := r.db.WithContext(ctx).Model(&Person{}).Where("kind = ?", kind)
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("name LIKE ? OR phone LIKE ? OR number LIKE ?", like, like, like)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.ClassName != "" {
		db = db.Where("class_name = ?", query.ClassName)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&people).Error
	return people, total, err
}

func (r *repository) Update(ctx context.Context, kind Kind, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Person{}).
		Where("id = ? AND kind = ?", id, kind).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, kind Kind, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("kind = ?", kind).Delete(&Person{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *repository) CountByKind(ctx context.Context) (map[Kind]KindCount, error) {
	var rows []struct {
		Kind   Kind
		Total  int64
		Active int64
	}
	err := r.db.WithContext(ctx).Model(&Person{}).
		Select("kind, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS active", StatusActive).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Kind]KindCount, len(rows))
	for _, row := range rows {
		counts[row.Kind] = KindCount{Total: row.Total, Active: row.Active}
	}
	return counts, nil
}

func (r *repository) CountClasses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Person{}).
		Where("class_name <> ''").
		Distinct("class_name").
		Count(&count).Error
	return count, err
}

// GroupBy counts people of kind per value of column (class_name or status)
func (r *repository) GroupBy(ctx context.Context, kind Kind, column string) ([]BucketCount, error) {
	var rows []BucketCount
	err := r.db.WithContext(ctx).Model(&Person{}).
		Select("COALESCE(NULLIF("+column+", ''), '未分配') AS label, COUNT(*) AS count").
		Where("kind = ?", kind).
		Group("label").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
