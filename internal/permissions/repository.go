package permissions

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListRoutes(ctx context.Context) ([]Permission, error)
	ListEnabled(ctx context.Context) ([]Permission, error)
	ListForUser(ctx context.Context, userID uint) ([]Permission, error)
	HasPermission(ctx context.Context, userID uint, path, code string) (bool, error)
	GetRoleByCode(ctx context.Context, code string) (*Role, error)
	UserIDsForRole(ctx context.Context, roleID uint) ([]uint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListRoutes returns enabled menu and button entries that map to a page.
func (r *repository) ListRoutes(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusEnabled).
		Where("type IN ?", []PermissionType{TypeMenu, TypeButton}).
		Where("path IS NOT NULL AND path <> ''").
		Where("component IS NOT NULL AND component <> ''").
		Order("sort ASC, id ASC").
		Find(&perms).Error
	return perms, err
}

func (r *repository) ListEnabled(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusEnabled).
		Order("sort ASC, id ASC").
		Find(&perms).Error
	return perms, err
}

func (r *repository) userScope(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("permissions AS p").
		Joins("INNER JOIN role_permissions rp ON p.id = rp.permission_id").
		Joins("INNER JOIN roles r ON rp.role_id = r.id").
		Joins("INNER JOIN user_roles ur ON r.id = ur.role_id").
		Where("ur.user_id = ? AND p.status = ? AND r.status = ?", userID, StatusEnabled, StatusEnabled)
}

func (r *repository) ListForUser(ctx context.Context, userID uint) ([]Permission, error) {
	var perms []Permission
	err := r.userScope(ctx, userID).
		Distinct("p.*").
		Order("p.sort ASC, p.id ASC").
		Find(&perms).Error
	return perms, err
}

// HasPermission matches on path, on code, or on either when both are set.
func (r *repository) HasPermission(ctx context.Context, userID uint, path, code string) (bool, error) {
	q := r.userScope(ctx, userID)
	switch {
	case path != "" && code != "":
		q = q.Where("(p.path = ? OR p.code = ?)", path, code)
	case path != "":
		q = q.Where("p.path = ?", path)
	default:
		q = q.Where("p.code = ?", code)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetRoleByCode(ctx context.Context, code string) (*Role, error) {
	var role Role
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) UserIDsForRole(ctx context.Context, roleID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&UserRole{}).
		Where("role_id = ?", roleID).
		Pluck("user_id", &ids).Error
	return ids, err
}
