package pageguides

import (
	"kinderadmin/internal/shared/utils/request"
)

type SectionInput struct {
	SectionName        string   `json:"sectionName" binding:"required,max=100"`
	SectionDescription string   `json:"sectionDescription"`
	SectionPath        string   `json:"sectionPath" binding:"omitempty,max=255"`
	Features           []string `json:"features"`
	SortOrder          int      `json:"sortOrder"`
	IsActive           *bool    `json:"isActive"`
}

// UpsertGuideRequest creates a guide or overwrites the one already stored
// for the same path.
type UpsertGuideRequest struct {
	PagePath        string         `json:"pagePath" binding:"required,max=255"`
	PageName        string         `json:"pageName" binding:"required,max=100"`
	PageDescription string         `json:"pageDescription"`
	Category        string         `json:"category" binding:"omitempty,max=50"`
	Importance      int            `json:"importance" binding:"omitempty,min=1,max=10"`
	RelatedTables   []string       `json:"relatedTables"`
	ContextPrompt   string         `json:"contextPrompt"`
	IsActive        *bool          `json:"isActive"`
	Sections        []SectionInput `json:"sections" binding:"omitempty,dive"`
}

type UpdateGuideRequest struct {
	PagePath        *string         `json:"pagePath" binding:"omitempty,max=255"`
	PageName        *string         `json:"pageName" binding:"omitempty,max=100"`
	PageDescription *string         `json:"pageDescription"`
	Category        *string         `json:"category" binding:"omitempty,max=50"`
	Importance      *int            `json:"importance" binding:"omitempty,min=1,max=10"`
	RelatedTables   []string        `json:"relatedTables"`
	ContextPrompt   *string         `json:"contextPrompt"`
	IsActive        *bool           `json:"isActive"`
	Sections        *[]SectionInput `json:"sections"`
}

type GuideListQuery struct {
	request.PageQuery
	Category string `form:"category" binding:"omitempty,max=50"`
}
