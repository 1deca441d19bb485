package pageguides

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindActiveByPath(ctx context.Context, pagePath string) (*PageGuide, error)
	ListActive(ctx context.Context) ([]PageGuide, error)
	List(ctx context.Context, query GuideListQuery) ([]PageGuide, int64, error)
	GetByID(ctx context.Context, id uint) (*PageGuide, error)
	GetByPath(ctx context.Context, pagePath string) (*PageGuide, error)
	Create(ctx context.Context, guide *PageGuide) error
	Update(ctx context.Context, id uint, updates map[string]interface{}, sections *[]Section) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func activeSections(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("sort_order ASC, id ASC")
}

func allSections(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func (r *repository) FindActiveByPath(ctx context.Context, pagePath string) (*PageGuide, error) {
	var guide PageGuide
	err := r.db.WithContext(ctx).
		Preload("Sections", activeSections).
		Where("page_path = ? AND is_active = ?", pagePath, true).
		First(&guide).Error
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

// ListActive returns active guides, most important first.
func (r *repository) ListActive(ctx context.Context) ([]PageGuide, error) {
	var guides []PageGuide
	err := r.db.WithContext(ctx).
		Preload("Sections", activeSections).
		Where("is_active = ?", true).
		Order("importance DESC, id ASC").
		Find(&guides).Error
	return guides, err
}

func (r *repository) List(ctx context.Context, query GuideListQuery) ([]PageGuide, int64, error) {
	q := r.db.WithContext(ctx).Model(&PageGuide{}).Where("is_active = ?", true)
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var guides []PageGuide
	err := q.Preload("Sections", activeSections).
		Order("importance DESC, created_at DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&guides).Error
	return guides, total, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*PageGuide, error) {
	var guide PageGuide
	if err := r.db.WithContext(ctx).Preload("Sections", allSections).First(&guide, id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *repository) GetByPath(ctx context.Context, pagePath string) (*PageGuide, error) {
	var guide PageGuide
	err := r.db.WithContext(ctx).
		Preload("Sections", allSections).
		Where("page_path = ?", pagePath).
		First(&guide).Error
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

// Create inserts the guide together with its sections.
func (r *repository) Create(ctx context.Context, guide *PageGuide) error {
	return r.db.WithContext(ctx).Create(guide).Error
}

// Update applies column updates and, when sections is non-nil, replaces the
// guide's sections in the same transaction.
func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}, sections *[]Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&PageGuide{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if sections == nil {
			return nil
		}

		if err := tx.Where("page_guide_id = ?", id).Delete(&Section{}).Error; err != nil {
			return err
		}
		if len(*sections) == 0 {
			return nil
		}
		for i := range *sections {
			(*sections)[i].PageGuideID = id
		}
		return tx.Create(sections).Error
	})
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_guide_id = ?", id).Delete(&Section{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&PageGuide{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
