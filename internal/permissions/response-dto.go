package permissions

type RouteMeta struct {
	Title        string `json:"title"`
	RequiresAuth bool   `json:"requiresAuth"`
	Permission   string `json:"permission"`
}

type RouteResponse struct {
	ID        uint           `json:"id"`
	Path      string         `json:"path"`
	Component string         `json:"component"`
	FilePath  string         `json:"filePath"`
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Type      PermissionType `json:"type"`
	ParentID  *uint          `json:"parentId"`
	Icon      string         `json:"icon"`
	Sort      int            `json:"sort"`
	Meta      RouteMeta      `json:"meta"`
}

// MenuNode is one entry of the navigation tree sent to the front end.
type MenuNode struct {
	RouteResponse
	Children []*MenuNode `json:"children"`
}

type UserPermissionsResponse struct {
	Codes     []string `json:"codes"`
	UserID    uint     `json:"userId"`
	Role      string   `json:"role"`
	IsAdmin   bool     `json:"isAdmin"`
	FromCache bool     `json:"fromCache"`
}

type CheckResponse struct {
	HasPermission bool `json:"hasPermission"`
	IsAdmin       bool `json:"isAdmin"`
}

type CacheStatsResponse struct {
	Enabled       bool    `json:"enabled"`
	TotalRequests int64   `json:"totalRequests"`
	CacheHits     int64   `json:"cacheHits"`
	CacheMisses   int64   `json:"cacheMisses"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	CachedEntries int64   `json:"cachedEntries"`
}

type ClearCacheResponse struct {
	Scope   string `json:"scope"`
	Cleared int64  `json:"cleared"`
}

func toRouteResponse(p Permission) RouteResponse {
	title := p.ChineseName
	if title == "" {
		title = p.Name
	}
	return RouteResponse{
		ID:        p.ID,
		Path:      p.Path,
		Component: p.Component,
		FilePath:  p.FilePath,
		Name:      p.Name,
		Code:      p.Code,
		Type:      p.Type,
		ParentID:  p.ParentID,
		Icon:      p.Icon,
		Sort:      p.Sort,
		Meta: RouteMeta{
			Title:        title,
			RequiresAuth: true,
			Permission:   p.Code,
		},
	}
}
