package pageguides

import (
	"time"

	"kinderadmin/internal/shared/database"
)

const DefaultImportance = 5

// PageGuide is the help text shown for one front-end page. PagePath may hold
// ":param" segments and "*" wildcards.
type PageGuide struct {
	ID              uint                `json:"id" gorm:"primaryKey"`
	PagePath        string              `json:"pagePath" gorm:"uniqueIndex;not null;size:255"`
	PageName        string              `json:"pageName" gorm:"not null;size:100"`
	PageDescription string              `json:"pageDescription" gorm:"type:text"`
	Category        string              `json:"category" gorm:"size:50;index"`
	Importance      int                 `json:"importance" gorm:"not null;default:5"`
	RelatedTables   database.StringList `json:"relatedTables"`
	ContextPrompt   string              `json:"contextPrompt" gorm:"type:text"`
	IsActive        bool                `json:"isActive" gorm:"not null;default:true"`
	Sections        []Section           `json:"sections" gorm:"foreignKey:PageGuideID"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (PageGuide) TableName() string {
	return "page_guides"
}

type Section struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	PageGuideID        uint                `json:"pageGuideId" gorm:"not null;index"`
	SectionName        string              `json:"sectionName" gorm:"not null;size:100"`
	SectionDescription string              `json:"sectionDescription" gorm:"type:text"`
	SectionPath        string              `json:"sectionPath" gorm:"size:255"`
	Features           database.StringList `json:"features"`
	SortOrder          int                 `json:"sortOrder" gorm:"not null;default:0"`
	IsActive           bool                `json:"isActive" gorm:"not null;default:true"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

func (Section) TableName() string {
	return "page_guide_sections"
}
