package posters

import (
	"time"

	"gorm.io/gorm"
)

type Poster struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:100"`
	TemplateID   *uint          `json:"templateId" gorm:"index"`
	FileName     string         `json:"fileName" gorm:"not null;size:100"`
	OriginalName string         `json:"originalName" gorm:"size:255"`
	FilePath     string         `json:"-" gorm:"not null;size:500"`
	FileURL      string         `json:"fileUrl" gorm:"not null;size:500"`
	FileSize     int64          `json:"fileSize" gorm:"not null"`
	MimeType     string         `json:"mimeType" gorm:"size:64"`
	CreatedBy    uint           `json:"createdBy" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Poster) TableName() string {
	return "posters"
}

type Template struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Category    string    `json:"category" gorm:"size:50;index"`
	Description string    `json:"description" gorm:"type:text"`
	PreviewURL  string    `json:"previewUrl" gorm:"size:500"`
	Width       int       `json:"width" gorm:"not null;default:750"`
	Height      int       `json:"height" gorm:"not null;default:1334"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Template) TableName() string {
	return "poster_templates"
}
