package personnel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/constants"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/cache"
	"kinderadmin/pkg/logger"

	"gorm.io/gorm"
)

type Service interface {
	GetOverview(ctx context.Context) (*OverviewResponse, error)
	GetDistribution(ctx context.Context, kind string) (*DistributionResponse, error)
	List(ctx context.Context, kind string, query PersonListQuery) (*response.PagedData, error)
	Get(ctx context.Context, kind string, id uint) (*Person, error)
	Create(ctx context.Context, user *users.AuthUser, kind string, req CreatePersonRequest) (*Person, error)
	Update(ctx context.Context, user *users.AuthUser, kind string, id uint, req UpdatePersonRequest) (*Person, error)
	Delete(ctx context.Context, user *users.AuthUser, kind string, id uint) error
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

func parseKind(raw string) (Kind, error) {
	kind, ok := ParseKind(raw)
	if !ok {
		return "", apperrors.Validationf("无效的人员类型: %s", raw)
	}
	return kind, nil
}

func (s *service) invalidate(ctx context.Context) {
	if _, err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PERSONNEL_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "Failed to invalidate personnel cache", "error", err)
	}
}

func (s *service) GetOverview(ctx context.Context) (*OverviewResponse, error) {
	var overview OverviewResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PERSONNEL_STATS, constants.TTL_STATS, func() (interface{}, error) {
		counts, err := s.repo.CountByKind(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count personnel: %w", err)
		}
		classes, err := s.repo.CountClasses(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count classes: %w", err)
		}
		return &OverviewResponse{
			Students: counts[KindStudent],
			Teachers: counts[KindTeacher],
			Parents:  counts[KindParent],
			Classes:  classes,
		}, nil
	}, &overview)
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *service) GetDistribution(ctx context.Context, rawKind string) (*DistributionResponse, error) {
	kind := KindStudent
	if rawKind != "" {
		var err error
		if kind, err = parseKind(rawKind); err != nil {
			return nil, err
		}
	}

	byClass, err := s.repo.GroupBy(ctx, kind, "class_name")
	if err != nil {
		return nil, fmt.Errorf("failed to group personnel by class: %w", err)
	}
	byStatus, err := s.repo.GroupBy(ctx, kind, "status")
	if err != nil {
		return nil, fmt.Errorf("failed to group personnel by status: %w", err)
	}
	if byClass == nil {
		byClass = []BucketCount{}
	}
	if byStatus == nil {
		byStatus = []BucketCount{}
	}

	return &DistributionResponse{Kind: kind, ByClass: byClass, ByStatus: byStatus}, nil
}

func (s *service) List(ctx context.Context, rawKind string, query PersonListQuery) (*response.PagedData, error) {
	kind, err := parseKind(rawKind)
	if err != nil {
		return nil, err
	}
	query.Normalize()

	people, total, err := s.repo.List(ctx, kind, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	page := response.NewPagedData(people, total, query.Page, query.PageSize)
	return &page, nil
}

func (s *service) Get(ctx context.Context, rawKind string, id uint) (*Person, error) {
	kind, err := parseKind(rawKind)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, kind, id)
}

func (s *service) get(ctx context.Context, kind Kind, id uint) (*Person, error) {
	p, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(kind.Label() + "不存在")
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, user *users.AuthUser, rawKind string, req CreatePersonRequest) (*Person, error) {
	kind, err := parseKind(rawKind)
	if err != nil {
		return nil, err
	}

	p := &Person{
		Kind:      kind,
		Name:      strings.TrimSpace(req.Name),
		Gender:    req.Gender,
		Phone:     req.Phone,
		ClassName: req.ClassName,
		Number:    req.Number,
		Status:    req.Status,
		Remark:    req.Remark,
	}
	if p.Name == "" {
		return nil, apperrors.Validation("姓名不能为空")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, apperrors.Validationf("出生日期格式不正确: %s", req.BirthDate)
		}
		p.BirthDate = &birth
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, string(kind), "create", p.ID, user.ID)
	return p, nil
}

func (s *service) Update(ctx context.Context, user *users.AuthUser, rawKind string, id uint, req UpdatePersonRequest) (*Person, error) {
	kind, err := parseKind(rawKind)
	if err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, kind, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("姓名不能为空")
		}
		updates["name"] = name
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ClassName != nil {
		updates["class_name"] = *req.ClassName
	}
	if req.Number != nil {
		updates["number"] = *req.Number
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Remark != nil {
		updates["remark"] = *req.Remark
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("没有需要更新的字段")
	}

	if err := s.repo.Update(ctx, kind, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", kind, err)
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, string(kind), "update", id, user.ID)
	return s.get(ctx, kind, id)
}

func (s *service) Delete(ctx context.Context, user *users.AuthUser, rawKind string, id uint) error {
	kind, err := parseKind(rawKind)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if !deleted {
		return apperrors.NotFound(kind.Label() + "不存在")
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEntityChanged(ctx, string(kind), "delete", id, user.ID)
	return nil
}
