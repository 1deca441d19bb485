package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/logger"

	"gorm.io/gorm"
)

type Service interface {
	CreateApplication(ctx context.Context, user *users.AuthUser, req CreateApplicationRequest) (*Application, error)
	GetApplication(ctx context.Context, id uint) (*Application, error)
	ListApplications(ctx context.Context, query ApplicationListQuery) (*response.PagedData, error)
	UpdateStatus(ctx context.Context, user *users.AuthUser, id uint, req UpdateStatusRequest) (*Application, error)
	DeleteApplication(ctx context.Context, user *users.AuthUser, id uint) error
	GetStats(ctx context.Context) (*StatsResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateApplication(ctx context.Context, user *users.AuthUser, req CreateApplicationRequest) (*Application, error) {
	app := &Application{
		StudentName:       strings.TrimSpace(req.StudentName),
		Gender:            req.Gender,
		ParentName:        strings.TrimSpace(req.ParentName),
		ContactPhone:      strings.TrimSpace(req.ContactPhone),
		ApplicationSource: req.ApplicationSource,
		ChannelID:         req.ChannelID,
		DesiredClass:      req.DesiredClass,
		Status:            StatusPending,
		CreatedBy:         user.ID,
	}
	if app.StudentName == "" {
		return nil, apperrors.Validation("学生姓名不能为空")
	}
	if app.Gender == "" {
		app.Gender = "male"
	}
	if app.ApplicationSource == "" {
		app.ApplicationSource = "web"
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, apperrors.Validationf("出生日期格式不正确: %s", req.BirthDate)
		}
		app.BirthDate = &birth
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "enrollment_application", "create", app.ID, user.ID)
	return app, nil
}

func (s *service) GetApplication(ctx context.Context, id uint) (*Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("报名申请不存在")
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func (s *service) ListApplications(ctx context.Context, query ApplicationListQuery) (*response.PagedData, error) {
	query.Normalize()
	if query.Status != "" && !Status(query.Status).IsValid() {
		return nil, apperrors.Validationf("无效的申请状态: %s", query.Status)
	}

	apps, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	page := response.NewPagedData(apps, total, query.Page, query.PageSize)
	return &page, nil
}

func (s *service) UpdateStatus(ctx context.Context, user *users.AuthUser, id uint, req UpdateStatusRequest) (*Application, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.Validationf("无效的申请状态: %s", req.Status)
	}

	if _, err := s.GetApplication(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       req.Status,
		"review_notes": req.ReviewNotes,
		"reviewed_by":  user.ID,
		"reviewed_at":  now,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "enrollment_application", "status:"+string(req.Status), id, user.ID)
	return s.GetApplication(ctx, id)
}

func (s *service) DeleteApplication(ctx context.Context, user *users.AuthUser, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("报名申请不存在")
	}

	logger.GetDefault().LogEntityChanged(ctx, "enrollment_application", "delete", id, user.ID)
	return nil
}

func (s *service) GetStats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	bySource, err := s.repo.CountBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by source: %w", err)
	}
	byChannel, err := s.repo.CountByChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by channel: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	if bySource == nil {
		bySource = []SourceCount{}
	}
	if byChannel == nil {
		byChannel = []ChannelCount{}
	}

	return &StatsResponse{
		Total:     total,
		ByStatus:  byStatus,
		BySource:  bySource,
		ByChannel: byChannel,
	}, nil
}
