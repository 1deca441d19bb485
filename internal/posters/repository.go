package posters

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, poster *Poster) error
	GetByID(ctx context.Context, id uint) (*Poster, error)
	ListByOwner(ctx context.Context, ownerID uint, query PosterListQuery) ([]Poster, int64, error)
	Delete(ctx context.Context, id uint) error
	GetTemplate(ctx context.Context, id uint) (*Template, error)
	ListTemplates(ctx context.Context, category string) ([]Template, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, poster *Poster) error {
	return r.db.WithContext(ctx).Create(poster).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Poster, error) {
	var poster Poster
	if err := r.db.WithContext(ctx).First(&poster, id).Error; err != nil {
		return nil, err
	}
	return &poster, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uint, query PosterListQuery) ([]Poster, int64, error) {
	q := r.db.WithContext(ctx).Model(&Poster{}).Where("created_by = ?", ownerID)
	if query.TemplateID != nil {
		q = q.Where("template_id = ?", *query.TemplateID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posters []Poster
	err := q.Order("created_at DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&posters).Error
	return posters, total, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Poster{}, id).Error
}

func (r *repository) GetTemplate(ctx context.Context, id uint) (*Template, error) {
	var tpl Template
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&tpl, id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *repository) ListTemplates(ctx context.Context, category string) ([]Template, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var templates []Template
	err := q.Order("sort_order ASC, id ASC").Find(&templates).Error
	return templates, err
}
