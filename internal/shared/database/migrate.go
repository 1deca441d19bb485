package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migration is one named schema step. Models are synced with AutoMigrate and
// Statements run afterwards, in order.
type Migration struct {
	Name        string
	Description string
	Models      []interface{}
	Statements  []string
}

// Apply runs m against db. Callers wanting atomicity pass a transaction.
func Apply(ctx context.Context, db *gorm.DB, m Migration) error {
	tx := db.WithContext(ctx)
	if len(m.Models) > 0 {
		if err := tx.AutoMigrate(m.Models...); err != nil {
			return fmt.Errorf("migration %s: auto migrate: %w", m.Name, err)
		}
	}
	for i, stmt := range m.Statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %s: statement %d: %w", m.Name, i+1, err)
		}
	}
	return nil
}
