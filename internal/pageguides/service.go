package pageguides

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"
	"kinderadmin/pkg/logger"

	"gorm.io/gorm"
)

const defaultGuidePageSize = 20

type Service interface {
	GetByPath(ctx context.Context, pagePath string) (*PageGuide, error)
	List(ctx context.Context, query GuideListQuery) (*response.PagedData, error)
	Upsert(ctx context.Context, user *users.AuthUser, req UpsertGuideRequest) (*PageGuide, bool, error)
	Update(ctx context.Context, user *users.AuthUser, id uint, req UpdateGuideRequest) (*PageGuide, error)
	Delete(ctx context.Context, user *users.AuthUser, id uint) error
	SeedPresets(ctx context.Context, user *users.AuthUser) ([]PresetResult, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	return &service{repo: repo, cache: cacheService}
}

func (s *service) invalidate(ctx context.Context) {
	if _, err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PAGE_GUIDES_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "Failed to invalidate page guide cache", "error", err)
	}
}

// GetByPath returns the guide for a page: an exact match first, then the
// first active pattern that covers the path. A nil guide means none applies.
func (s *service) GetByPath(ctx context.Context, rawPath string) (*PageGuide, error) {
	pagePath := normalizePath(rawPath)
	if pagePath == "" {
		return nil, apperrors.Validation("页面路径不能为空")
	}

	var result lookup
	err := s.cache.GetOrSet(ctx, constants.BuildPageGuideKey(pagePath), constants.TTL_PAGE_GUIDE, func() (interface{}, error) {
		guide, err := s.resolve(ctx, pagePath)
		if err != nil {
			return nil, err
		}
		return lookup{Guide: guide}, nil
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Guide, nil
}

func (s *service) resolve(ctx context.Context, pagePath string) (*PageGuide, error) {
	guide, err := s.repo.FindActiveByPath(ctx, pagePath)
	if err == nil {
		return guide, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find page guide for %s: %w", pagePath, err)
	}

	guides, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list page guides: %w", err)
	}
	for i := range guides {
		if IsPattern(guides[i].PagePath) && MatchPath(guides[i].PagePath, pagePath) {
			return &guides[i], nil
		}
	}
	return nil, nil
}

func (s *service) List(ctx context.Context, query GuideListQuery) (*response.PagedData, error) {
	if query.PageSize == 0 {
		query.PageSize = defaultGuidePageSize
	}
	query.Normalize()

	guides, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list page guides: %w", err)
	}
	if guides == nil {
		guides = []PageGuide{}
	}

	page := response.NewPagedData(guides, total, query.Page, query.PageSize)
	return &page, nil
}

func toSections(inputs []SectionInput) ([]Section, error) {
	sections := make([]Section, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.SectionName)
		if name == "" {
			return nil, apperrors.Validation("章节名称不能为空")
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		sections = append(sections, Section{
			SectionName:        name,
			SectionDescription: in.SectionDescription,
			SectionPath:        in.SectionPath,
			Features:           database.StringList(in.Features),
			SortOrder:          in.SortOrder,
			IsActive:           active,
		})
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
	return sections, nil
}

func (s *service) Upsert(ctx context.Context, user *users.AuthUser, req UpsertGuideRequest) (*PageGuide, bool, error) {
	pagePath := normalizePath(req.PagePath)
	name := strings.TrimSpace(req.PageName)
	if pagePath == "" || name == "" {
		return nil, false, apperrors.Validation("页面路径和页面名称不能为空")
	}

	importance := req.Importance
	if importance == 0 {
		importance = DefaultImportance
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	related := req.RelatedTables
	if related == nil {
		related = []string{}
	}

	var sections []Section
	if req.Sections != nil {
		var err error
		if sections, err = toSections(req.Sections); err != nil {
			return nil, false, err
		}
	}

	existing, err := s.repo.GetByPath(ctx, pagePath)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up page guide %s: %w", pagePath, err)
	}

	if existing != nil {
		updates := map[string]interface{}{
			"page_name":        name,
			"page_description": req.PageDescription,
			"category":         req.Category,
			"importance":       importance,
			"related_tables":   database.StringList(related),
			"context_prompt":   req.ContextPrompt,
			"is_active":        active,
		}
		var replace *[]Section
		if req.Sections != nil {
			replace = &sections
		}
		if err := s.repo.Update(ctx, existing.ID, updates, replace); err != nil {
			return nil, false, fmt.Errorf("failed to update page guide %d: %w", existing.ID, err)
		}

		s.invalidate(ctx)
		logger.GetDefault().LogEntityChanged(ctx, "page_guide", "update", existing.ID, user.ID)
		guide, err := s.get(ctx, existing.ID)
		return guide, false, err
	}

	guide := &PageGuide{
		PagePath:        pagePath,
		PageName:        name,
		PageDescription: req.PageDescription,
		Category:        req.Category,
		Importance:      importance,
		RelatedTables:   database.StringList(related),
		ContextPrompt:   req.ContextPrompt,
		IsActive:        active,
		Sections:        sections,
	}
	if err := s.repo.Create(ctx, guide); err != nil {
		return nil, false, fmt.Errorf("failed to create page guide %s: %w", pagePath, err)
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, "page_guide", "create", guide.ID, user.ID)
	return guide, true, nil
}

func (s *service) get(ctx context.Context, id uint) (*PageGuide, error) {
	guide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("页面说明文档不存在")
		}
		return nil, fmt.Errorf("failed to get page guide %d: %w", id, err)
	}
	return guide, nil
}

func (s *service) Update(ctx context.Context, user *users.AuthUser, id uint, req UpdateGuideRequest) (*PageGuide, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.PagePath != nil {
		pagePath := normalizePath(*req.PagePath)
		if pagePath == "" {
			return nil, apperrors.Validation("页面路径不能为空")
		}
		if pagePath != current.PagePath {
			other, err := s.repo.GetByPath(ctx, pagePath)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to look up page guide %s: %w", pagePath, err)
			}
			if other != nil {
				return nil, apperrors.Conflict("页面路径已存在")
			}
			updates["page_path"] = pagePath
		}
	}
	if req.PageName != nil {
		name := strings.TrimSpace(*req.PageName)
		if name == "" {
			return nil, apperrors.Validation("页面名称不能为空")
		}
		updates["page_name"] = name
	}
	if req.PageDescription != nil {
		updates["page_description"] = *req.PageDescription
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Importance != nil {
		updates["importance"] = *req.Importance
	}
	if req.RelatedTables != nil {
		updates["related_tables"] = database.StringList(req.RelatedTables)
	}
	if req.ContextPrompt != nil {
		updates["context_prompt"] = *req.ContextPrompt
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	var sections *[]Section
	if req.Sections != nil {
		converted, err := toSections(*req.Sections)
		if err != nil {
			return nil, err
		}
		sections = &converted
	}

	if len(updates) == 0 && sections == nil {
		return nil, apperrors.Validation("没有需要更新的字段")
	}

	if err := s.repo.Update(ctx, id, updates, sections); err != nil {
		return nil, fmt.Errorf("failed to update page guide %d: %w", id, err)
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, "page_guide", "update", id, user.ID)
	return s.get(ctx, id)
}

func (s *service) Delete(ctx context.Context, user *users.AuthUser, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete page guide %d: %w", id, err)
	}
	if !deleted {
		return apperrors.NotFound("页面说明文档不存在")
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, "page_guide", "delete", id, user.ID)
	return nil
}

// SeedPresets writes the built-in guides, overwriting any stored under the
// same paths.
func (s *service) SeedPresets(ctx context.Context, user *users.AuthUser) ([]PresetResult, error) {
	presets := MarketingPresets()
	results := make([]PresetResult, 0, len(presets))
	for _, preset := range presets {
		guide, created, err := s.Upsert(ctx, user, preset)
		if err != nil {
			return nil, err
		}
		results = append(results, PresetResult{
			ID:       guide.ID,
			PagePath: guide.PagePath,
			PageName: guide.PageName,
			Created:  created,
		})
	}
	return results, nil
}
