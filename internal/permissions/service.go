package permissions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"
	"kinderadmin/pkg/logger"

	"gorm.io/gorm"
)

type Service interface {
	GetRoutes(ctx context.Context) ([]RouteResponse, error)
	GetDynamicRoutes(ctx context.Context, user *users.AuthUser) ([]*MenuNode, error)
	GetUserPermissions(ctx context.Context, user *users.AuthUser) (*UserPermissionsResponse, error)
	Check(ctx context.Context, user *users.AuthUser, req CheckRequest) (*CheckResponse, error)
	CacheStats(ctx context.Context) (*CacheStatsResponse, error)
	ClearCache(ctx context.Context, req ClearCacheRequest) (*ClearCacheResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service

	// per-process counters for the user permission lookups
	requests atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
}

func NewService(repo Repository, cacheService cache.Service) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	return &service{repo: repo, cache: cacheService}
}

func (s *service) GetRoutes(ctx context.Context) ([]RouteResponse, error) {
	var routes []RouteResponse
	err := s.cache.GetOrSet(ctx, constants.BuildRoutesKey("all"), constants.TTL_PERMISSIONS_ROLE, func() (interface{}, error) {
		perms, err := s.repo.ListRoutes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list routes: %w", err)
		}
		out := make([]RouteResponse, 0, len(perms))
		for _, p := range perms {
			out = append(out, toRouteResponse(p))
		}
		return out, nil
	}, &routes)
	if err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *service) GetDynamicRoutes(ctx context.Context, user *users.AuthUser) ([]*MenuNode, error) {
	var tree []*MenuNode
	err := s.cache.GetOrSet(ctx, constants.BuildUserRoutesKey(user.ID), constants.TTL_PERMISSIONS_USER, func() (interface{}, error) {
		perms, err := s.permissionsFor(ctx, user)
		if err != nil {
			return nil, err
		}
		return BuildMenuTree(perms), nil
	}, &tree)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *service) permissionsFor(ctx context.Context, user *users.AuthUser) ([]Permission, error) {
	if user.IsAdmin() {
		perms, err := s.repo.ListEnabled(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list permissions: %w", err)
		}
		return perms, nil
	}

	perms, err := s.repo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for user %d: %w", user.ID, err)
	}
	return perms, nil
}

// BuildMenuTree nests catalog and menu entries under their parents. Buttons
// are left out and entries whose parent is not visible become roots. Input
// order is kept among siblings.
func BuildMenuTree(perms []Permission) []*MenuNode {
	nodes := make(map[uint]*MenuNode, len(perms))
	ordered := make([]*MenuNode, 0, len(perms))
	for _, p := range perms {
		if p.Type == TypeButton {
			continue
		}
		node := &MenuNode{RouteResponse: toRouteResponse(p), Children: []*MenuNode{}}
		nodes[p.ID] = node
		ordered = append(ordered, node)
	}

	roots := make([]*MenuNode, 0)
	for _, node := range ordered {
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *service) GetUserPermissions(ctx context.Context, user *users.AuthUser) (*UserPermissionsResponse, error) {
	s.requests.Add(1)
	resp := &UserPermissionsResponse{
		UserID:  user.ID,
		Role:    string(user.Role),
		IsAdmin: user.IsAdmin(),
	}

	key := constants.BuildUserPermissionsKey(user.ID)
	var codes []string
	err := s.cache.Get(ctx, key, &codes)
	if err == nil {
		s.hits.Add(1)
		resp.Codes = codes
		resp.FromCache = true
		return resp, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.GetDefault().WarnContext(ctx, "Permission cache read failed", "user_id", user.ID, "error", err)
	}
	s.misses.Add(1)

	perms, err := s.permissionsFor(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Codes = permissionCodes(perms)

	if err := s.cache.Set(ctx, key, resp.Codes, constants.TTL_PERMISSIONS_USER); err != nil {
		logger.GetDefault().WarnContext(ctx, "Permission cache write failed", "user_id", user.ID, "error", err)
	}
	return resp, nil
}

func permissionCodes(perms []Permission) []string {
	seen := make(map[string]struct{}, len(perms))
	codes := make([]string, 0, len(perms))
	for _, p := range perms {
		if p.Code == "" {
			continue
		}
		if _, dup := seen[p.Code]; dup {
			continue
		}
		seen[p.Code] = struct{}{}
		codes = append(codes, p.Code)
	}
	return codes
}

func (s *service) Check(ctx context.Context, user *users.AuthUser, req CheckRequest) (*CheckResponse, error) {
	if req.Path == "" && req.Code == "" {
		return nil, apperrors.Validation("缺少必要的权限检查参数")
	}
	if user.IsAdmin() {
		return &CheckResponse{HasPermission: true, IsAdmin: true}, nil
	}

	ok, err := s.repo.HasPermission(ctx, user.ID, req.Path, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	return &CheckResponse{HasPermission: ok}, nil
}

func (s *service) CacheStats(ctx context.Context) (*CacheStatsResponse, error) {
	total := s.requests.Load()
	hits := s.hits.Load()
	stats := &CacheStatsResponse{
		Enabled:       s.cache.Enabled(),
		TotalRequests: total,
		CacheHits:     hits,
		CacheMisses:   s.misses.Load(),
	}
	if total > 0 {
		stats.CacheHitRate = math.Round(float64(hits)/float64(total)*10000) / 100
	}

	entries, err := s.cache.Count(ctx, constants.PATTERN_INVALIDATE_PERMISSIONS_ALL)
	if err != nil {
		return nil, fmt.Errorf("failed to count permission cache entries: %w", err)
	}
	stats.CachedEntries = entries
	return stats, nil
}

func userKeys(userID uint) []string {
	return []string{constants.BuildUserPermissionsKey(userID), constants.BuildUserRoutesKey(userID)}
}

func (s *service) ClearCache(ctx context.Context, req ClearCacheRequest) (*ClearCacheResponse, error) {
	switch {
	case req.All:
		n, err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PERMISSIONS_ALL)
		if err != nil {
			return nil, fmt.Errorf("failed to clear permission cache: %w", err)
		}
		logger.GetDefault().InfoContext(ctx, "Permission cache cleared", "scope", "all", "keys", n)
		return &ClearCacheResponse{Scope: "all", Cleared: n}, nil

	case req.UserID != nil:
		keys := userKeys(*req.UserID)
		if err := s.cache.Delete(ctx, keys...); err != nil {
			return nil, fmt.Errorf("failed to clear permission cache for user %d: %w", *req.UserID, err)
		}
		logger.GetDefault().InfoContext(ctx, "Permission cache cleared", "scope", "user", "user_id", *req.UserID)
		return &ClearCacheResponse{Scope: fmt.Sprintf("user:%d", *req.UserID), Cleared: int64(len(keys))}, nil

	case req.RoleCode != "":
		role, err := s.repo.GetRoleByCode(ctx, req.RoleCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("角色不存在")
			}
			return nil, fmt.Errorf("failed to get role %s: %w", req.RoleCode, err)
		}
		userIDs, err := s.repo.UserIDsForRole(ctx, role.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list users for role %s: %w", role.Code, err)
		}

		keys := []string{constants.BuildRolePermissionsKey(role.Code)}
		for _, id := range userIDs {
			keys = append(keys, userKeys(id)...)
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			return nil, fmt.Errorf("failed to clear permission cache for role %s: %w", role.Code, err)
		}
		logger.GetDefault().InfoContext(ctx, "Permission cache cleared", "scope", "role", "role", role.Code, "users", len(userIDs))
		return &ClearCacheResponse{Scope: "role:" + role.Code, Cleared: int64(len(keys))}, nil
	}

	return nil, apperrors.Validation("请指定userId、roleCode或all参数")
}
