package migrations

import (
	"context"
	"fmt"
	"time"

	"kinderadmin/internal/shared/database"

	"gorm.io/gorm"
)

type Repository interface {
	EnsureTable(ctx context.Context) error
	ListApplied(ctx context.Context) ([]SchemaMigration, error)
	Apply(ctx context.Context, m database.Migration) (*SchemaMigration, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EnsureTable(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&SchemaMigration{})
}

func (r *repository) ListApplied(ctx context.Context) ([]SchemaMigration, error) {
	var applied []SchemaMigration
	err := r.db.WithContext(ctx).Order("id ASC").Find(&applied).Error
	return applied, err
}

// Apply runs m and records it in one transaction.
func (r *repository) Apply(ctx context.Context, m database.Migration) (*SchemaMigration, error) {
	record := &SchemaMigration{
		Name:        m.Name,
		Description: m.Description,
		AppliedAt:   time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.Apply(ctx, tx, m); err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
