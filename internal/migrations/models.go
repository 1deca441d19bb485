package migrations

import "time"

// SchemaMigration records one applied migration.
type SchemaMigration struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:255"`
	AppliedAt   time.Time `json:"appliedAt" gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
