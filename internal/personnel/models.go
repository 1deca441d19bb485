package personnel

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindParent  Kind = "parent"
)

var allKinds = []Kind{KindStudent, KindTeacher, KindParent}

// ParseKind accepts the singular or plural path form
func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s"))
	for _, v := range allKinds {
		if k == v {
			return k, true
		}
	}
	return "", false
}

// Label is the display name used in messages
func (k Kind) Label() string {
	switch k {
	case KindStudent:
		return "学生"
	case KindTeacher:
		return "教师"
	case KindParent:
		return "家长"
	default:
		return "人员"
	}
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusGraduated Status = "graduated"
)

// Person is a student, teacher or parent record
type Person struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Kind      Kind           `json:"kind" gorm:"not null;size:16;index"`
	Name      string         `json:"name" gorm:"not null;size:64"`
	Gender    string         `json:"gender" gorm:"size:8"`
	Phone     string         `json:"phone" gorm:"size:32;index"`
	ClassName string         `json:"className" gorm:"size:64;index"`
	Number    string         `json:"number" gorm:"size:32"` // student or staff number
	Status    Status         `json:"status" gorm:"size:16;default:'active';index"`
	BirthDate *time.Time     `json:"birthDate" gorm:"type:date"`
	Remark    string         `json:"remark" gorm:"size:500"`
	UserID    *uint          `json:"userId" gorm:"index"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Person) TableName() string {
	return "personnel"
}
