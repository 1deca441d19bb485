package users

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RolePrincipal Role = "principal"
	RoleTeacher   Role = "teacher"
	RoleParent    Role = "parent"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:64"`
	RealName  string    `json:"realName" gorm:"size:64"`
	Phone     string    `json:"phone" gorm:"size:32"`
	Email     string    `json:"email" gorm:"size:128"`
	Role      Role      `json:"role" gorm:"not null;size:32;default:'teacher'"`
	Status    string    `json:"status" gorm:"size:16;default:'active'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// AuthUser is the identity the auth middleware attaches to a request.
type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RolePrincipal, RoleTeacher, RoleParent:
		return true
	default:
		return false
	}
}
