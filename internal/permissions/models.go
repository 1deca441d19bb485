package permissions

import (
	"time"
)

type PermissionType string

const (
	TypeCatalog PermissionType = "catalog"
	TypeMenu    PermissionType = "menu"
	TypeButton  PermissionType = "button"
)

const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

type Role struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:64"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null;size:64"`
	Description string    `json:"description" gorm:"size:255"`
	Status      int       `json:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Role) TableName() string {
	return "roles"
}

// Permission is either a front-end route (catalog or menu) or a button-level
// capability. Routes nest through ParentID.
type Permission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;size:100"`
	ChineseName string         `json:"chineseName" gorm:"size:100"`
	Code        string         `json:"code" gorm:"uniqueIndex;not null;size:100"`
	Type        PermissionType `json:"type" gorm:"not null;size:16;default:'menu'"`
	ParentID    *uint          `json:"parentId" gorm:"index"`
	Path        string         `json:"path" gorm:"size:255;index"`
	Component   string         `json:"component" gorm:"size:255"`
	FilePath    string         `json:"filePath" gorm:"size:255"`
	Icon        string         `json:"icon" gorm:"size:64"`
	Sort        int            `json:"sort" gorm:"not null;default:0"`
	Status      int            `json:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	RoleID       uint      `json:"roleId" gorm:"primaryKey"`
	PermissionID uint      `json:"permissionId" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type UserRole struct {
	UserID    uint      `json:"userId" gorm:"primaryKey"`
	RoleID    uint      `json:"roleId" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
