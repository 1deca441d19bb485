package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: kinderadmin:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG       = 24 * time.Hour   // role permission tables
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // page guides
	TTL_DYNAMIC_MEDIUM    = 30 * time.Minute // per-user permissions
	TTL_DYNAMIC_SHORT     = 5 * time.Minute  // dashboards and stats
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "kinderadmin"
)

// ================== PERMISSIONS MODULE ==================

const (
	CACHE_KEY_PERMISSIONS_USER  = CACHE_PREFIX + ":permissions:user:"  // + user-id
	CACHE_KEY_PERMISSIONS_ROLE  = CACHE_PREFIX + ":permissions:role:"  // + role
	CACHE_KEY_PERMISSIONS_ROUTE = CACHE_PREFIX + ":permissions:routes" // + :role
)

const (
	TTL_PERMISSIONS_USER = TTL_DYNAMIC_MEDIUM
	TTL_PERMISSIONS_ROLE = TTL_STATIC_LONG
)

// ================== PAGE GUIDES MODULE ==================

const (
	CACHE_KEY_PAGE_GUIDE_PATH = CACHE_PREFIX + ":page_guides:path:" // + page path
)

const (
	TTL_PAGE_GUIDE = TTL_SEMI_STATIC_SHORT
)

// ================== STATS ==================

const (
	CACHE_KEY_PERSONNEL_STATS = CACHE_PREFIX + ":personnel:overview"
)

const (
	TTL_STATS = TTL_DYNAMIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PERMISSIONS_ALL = CACHE_PREFIX + ":permissions:*"
	PATTERN_INVALIDATE_PAGE_GUIDES_ALL = CACHE_PREFIX + ":page_guides:*"
	PATTERN_INVALIDATE_PERSONNEL_ALL   = CACHE_PREFIX + ":personnel:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildUserPermissionsKey -> "kinderadmin:permissions:user:42"
func BuildUserPermissionsKey(userID uint) string {
	return CACHE_KEY_PERMISSIONS_USER + fmt.Sprintf("%d", userID)
}

// BuildUserRoutesKey -> "kinderadmin:permissions:user:42:routes"
func BuildUserRoutesKey(userID uint) string {
	return BuildUserPermissionsKey(userID) + ":routes"
}

func BuildRolePermissionsKey(role string) string {
	return CACHE_KEY_PERMISSIONS_ROLE + role
}

func BuildRoutesKey(role string) string {
	return CACHE_KEY_PERMISSIONS_ROUTE + ":" + role
}

func BuildPageGuideKey(pagePath string) string {
	return CACHE_KEY_PAGE_GUIDE_PATH + pagePath
}
