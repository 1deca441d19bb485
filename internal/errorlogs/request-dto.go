package errorlogs

import (
	"kinderadmin/internal/shared/utils/request"
)

type ReportRequest struct {
	Level     string                 `json:"level" binding:"omitempty,oneof=fatal error warning info"`
	Message   string                 `json:"message" binding:"required"`
	Stack     string                 `json:"stack"`
	URL       string                 `json:"url" binding:"omitempty,max=1000"`
	UserAgent string                 `json:"userAgent" binding:"omitempty,max=500"`
	Component string                 `json:"component" binding:"omitempty,max=200"`
	Extra     map[string]interface{} `json:"extra"`
}

type ListQuery struct {
	request.PageQuery
	Level     string `form:"level" binding:"omitempty,oneof=fatal error warning info"`
	Source    string `form:"source" binding:"omitempty,oneof=client server"`
	Component string `form:"component" binding:"omitempty,max=200"`
	Keyword   string `form:"keyword" binding:"omitempty,max=100"`
}

type PurgeQuery struct {
	Days int `form:"days" binding:"required,min=1,max=3650"`
}
