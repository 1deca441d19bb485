package posters

import (
	"kinderadmin/internal/shared/utils/request"
)

// UploadRequest carries the form fields sent next to the file.
type UploadRequest struct {
	Title      string `form:"title" binding:"omitempty,max=100"`
	TemplateID *uint  `form:"templateId" binding:"omitempty,min=1"`
}

type PosterListQuery struct {
	request.PageQuery
	TemplateID *uint `form:"templateId" binding:"omitempty,min=1"`
}

type TemplateQuery struct {
	Category string `form:"category" binding:"omitempty,max=50"`
}
