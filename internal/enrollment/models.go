package enrollment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusEnrolled  Status = "enrolled"
)

var allStatuses = []Status{StatusPending, StatusReviewing, StatusApproved, StatusRejected, StatusEnrolled}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is an admission request for one child
type Application struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	StudentName       string         `json:"studentName" gorm:"not null;size:64"`
	Gender            string         `json:"gender" gorm:"size:8;default:'male'"`
	BirthDate         *time.Time     `json:"birthDate" gorm:"type:date"`
	ParentName        string         `json:"parentName" gorm:"size:64"`
	ContactPhone      string         `json:"contactPhone" gorm:"not null;size:32;index"`
	ApplicationSource string         `json:"applicationSource" gorm:"size:32;default:'web';index"`
	ChannelID         *uint          `json:"channelId" gorm:"index"`
	DesiredClass      string         `json:"desiredClass" gorm:"size:64"`
	Status            Status         `json:"status" gorm:"not null;size:16;default:'pending';index"`
	ReviewNotes       string         `json:"reviewNotes" gorm:"size:500"`
	ReviewedBy        *uint          `json:"reviewedBy"`
	ReviewedAt        *time.Time     `json:"reviewedAt"`
	CreatedBy         uint           `json:"createdBy" gorm:"not null"`
	CreatedAt         time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Application) TableName() string {
	return "enrollment_applications"
}
