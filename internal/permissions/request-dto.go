package permissions

type CheckRequest struct {
	Path string `json:"path" binding:"omitempty,max=255"`
	Code string `json:"code" binding:"omitempty,max=100"`
}

// ClearCacheRequest selects which cached entries to drop. Exactly one scope
// is honored, in the order all, userId, roleCode.
type ClearCacheRequest struct {
	UserID   *uint  `json:"userId" binding:"omitempty,min=1"`
	RoleCode string `json:"roleCode" binding:"omitempty,max=64"`
	All      bool   `json:"all"`
}
