package permissions

import (
	"context"
	"errors"
	"testing"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin   = &users.AuthUser{ID: 1, Username: "admin", Role: users.RoleAdmin}
	teacher = &users.AuthUser{ID: 7, Username: "li.teacher", Role: users.RoleTeacher}
)

func uintPtr(v uint) *uint { return &v }

func samplePermissions() []Permission {
	return []Permission{
		{ID: 1, Name: "Enrollment", ChineseName: "招生管理", Code: "ENROLLMENT", Type: TypeCatalog, Path: "/enrollment", Sort: 1, Status: StatusEnabled},
		{ID: 2, Name: "Applications", Code: "ENROLLMENT_APPLICATIONS", Type: TypeMenu, ParentID: uintPtr(1), Path: "/enrollment/applications", Component: "enrollment/Applications", Sort: 1, Status: StatusEnabled},
		{ID: 3, Name: "Review", Code: "ENROLLMENT_REVIEW", Type: TypeButton, ParentID: uintPtr(2), Sort: 1, Status: StatusEnabled},
		{ID: 4, Name: "Stats", Code: "ENROLLMENT_STATS", Type: TypeMenu, ParentID: uintPtr(1), Path: "/enrollment/stats", Component: "enrollment/Stats", Sort: 2, Status: StatusEnabled},
		{ID: 5, Name: "Orphan", Code: "ORPHAN", Type: TypeMenu, ParentID: uintPtr(99), Path: "/orphan", Component: "Orphan", Sort: 9, Status: StatusEnabled},
	}
}

func TestBuildMenuTree(t *testing.T) {
	tree := BuildMenuTree(samplePermissions())

	require.Len(t, tree, 2)
	assert.Equal(t, "ENROLLMENT", tree[0].Code)
	assert.Equal(t, "招生管理", tree[0].Meta.Title)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "ENROLLMENT_APPLICATIONS", tree[0].Children[0].Code)
	assert.Empty(t, tree[0].Children[0].Children, "buttons are not menu entries")
	assert.Equal(t, "ENROLLMENT_STATS", tree[0].Children[1].Code)
	assert.Equal(t, "ORPHAN", tree[1].Code)
}

func TestGetUserPermissionsCachesCodes(t *testing.T) {
	repo := new(mockRepository)
	mem := newMemoryCache()
	svc := NewService(repo, mem)
	ctx := context.Background()

	repo.On("ListForUser", mock.Anything, teacher.ID).Return(samplePermissions()[:3], nil).Once()

	first, err := svc.GetUserPermissions(ctx, teacher)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, []string{"ENROLLMENT", "ENROLLMENT_APPLICATIONS", "ENROLLMENT_REVIEW"}, first.Codes)
	assert.True(t, mem.has(constants.BuildUserPermissionsKey(teacher.ID)))

	second, err := svc.GetUserPermissions(ctx, teacher)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Codes, second.Codes)

	stats, err := svc.CacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, 50.0, stats.CacheHitRate)
	assert.Equal(t, int64(1), stats.CachedEntries)
	repo.AssertExpectations(t)
}

func TestGetUserPermissionsAdminGetsEverything(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	repo.On("ListEnabled", mock.Anything).Return(samplePermissions(), nil)

	resp, err := svc.GetUserPermissions(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Len(t, resp.Codes, 5)
	repo.AssertNotCalled(t, "ListForUser", mock.Anything, mock.Anything)
}

func TestGetUserPermissionsRepositoryFailure(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	repo.On("ListForUser", mock.Anything, teacher.ID).Return(nil, errors.New("connection reset"))

	_, err := svc.GetUserPermissions(context.Background(), teacher)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestCheck(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Check(ctx, teacher, CheckRequest{})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	resp, err := svc.Check(ctx, admin, CheckRequest{Code: "ANYTHING"})
	require.NoError(t, err)
	assert.True(t, resp.HasPermission)
	assert.True(t, resp.IsAdmin)

	repo.On("HasPermission", mock.Anything, teacher.ID, "/enrollment/stats", "").Return(false, nil)
	resp, err = svc.Check(ctx, teacher, CheckRequest{Path: "/enrollment/stats"})
	require.NoError(t, err)
	assert.False(t, resp.HasPermission)
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()

	t.Run("no scope", func(t *testing.T) {
		svc := NewService(new(mockRepository), newMemoryCache())
		_, err := svc.ClearCache(ctx, ClearCacheRequest{})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
		assert.Equal(t, "请指定userId、roleCode或all参数", apperrors.MessageOf(err))
	})

	t.Run("single user", func(t *testing.T) {
		mem := newMemoryCache()
		svc := NewService(new(mockRepository), mem)
		require.NoError(t, mem.Set(ctx, constants.BuildUserPermissionsKey(7), []string{"A"}, 0))
		require.NoError(t, mem.Set(ctx, constants.BuildUserPermissionsKey(8), []string{"B"}, 0))

		resp, err := svc.ClearCache(ctx, ClearCacheRequest{UserID: uintPtr(7)})
		require.NoError(t, err)
		assert.Equal(t, "user:7", resp.Scope)
		assert.False(t, mem.has(constants.BuildUserPermissionsKey(7)))
		assert.True(t, mem.has(constants.BuildUserPermissionsKey(8)))
	})

	t.Run("role", func(t *testing.T) {
		repo := new(mockRepository)
		mem := newMemoryCache()
		svc := NewService(repo, mem)
		require.NoError(t, mem.Set(ctx, constants.BuildUserPermissionsKey(7), []string{"A"}, 0))

		repo.On("GetRoleByCode", mock.Anything, "teacher").Return(&Role{ID: 3, Code: "teacher"}, nil)
		repo.On("UserIDsForRole", mock.Anything, uint(3)).Return([]uint{7, 9}, nil)

		resp, err := svc.ClearCache(ctx, ClearCacheRequest{RoleCode: "teacher"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Cleared)
		assert.False(t, mem.has(constants.BuildUserPermissionsKey(7)))
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo, newMemoryCache())
		repo.On("GetRoleByCode", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ClearCache(ctx, ClearCacheRequest{RoleCode: "ghost"})
		assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run("all", func(t *testing.T) {
		mem := newMemoryCache()
		svc := NewService(new(mockRepository), mem)
		require.NoError(t, mem.Set(ctx, constants.BuildUserPermissionsKey(7), []string{"A"}, 0))
		require.NoError(t, mem.Set(ctx, constants.BuildRoutesKey("all"), []string{}, 0))
		require.NoError(t, mem.Set(ctx, constants.BuildPageGuideKey("/home"), "guide", 0))

		resp, err := svc.ClearCache(ctx, ClearCacheRequest{All: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Cleared)
		assert.True(t, mem.has(constants.BuildPageGuideKey("/home")))
	})
}
