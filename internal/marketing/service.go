package marketing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultValidityDays = 30
	defaultUsageLimit   = 100
	clickStatsWindow    = 30 * 24 * time.Hour
	codeGenerateRetries = 3
)

type Service interface {
	// Channels
	ListChannels(ctx context.Context, query ChannelListQuery) (*response.PagedData, error)
	CreateChannel(ctx context.Context, user *users.AuthUser, req CreateChannelRequest) (*ChannelResponse, error)
	UpdateChannel(ctx context.Context, user *users.AuthUser, id uint, req UpdateChannelRequest) (*ChannelResponse, error)
	DeleteChannel(ctx context.Context, user *users.AuthUser, id uint) error

	// Promotion codes
	GenerateCode(ctx context.Context, user *users.AuthUser, req CreatePromotionCodeRequest) (*PromotionCode, error)
	ListMyCodes(ctx context.Context, user *users.AuthUser) ([]PromotionCode, error)
	GetCodeStats(ctx context.Context, code string) (*PromotionCodeStats, error)
	RecordClick(ctx context.Context, req ClickRequest) (*ClickResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func toChannelResponse(ch *Channel) *ChannelResponse {
	return &ChannelResponse{Channel: *ch, ConversionRate: ch.ConversionRate()}
}

// Channels

func (s *service) ListChannels(ctx context.Context, query ChannelListQuery) (*response.PagedData, error) {
	query.Normalize()

	channels, total, err := s.repo.ListChannels(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	items := make([]ChannelResponse, 0, len(channels))
	for i := range channels {
		items = append(items, *toChannelResponse(&channels[i]))
	}

	page := response.NewPagedData(items, total, query.Page, query.PageSize)
	return &page, nil
}

func (s *service) CreateChannel(ctx context.Context, user *users.AuthUser, req CreateChannelRequest) (*ChannelResponse, error) {
	name := strings.TrimSpace(req.ChannelName)
	if name == "" {
		return nil, apperrors.Validation("渠道名称不能为空")
	}

	exists, err := s.repo.ChannelNameExists(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check channel name: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("渠道名称已存在")
	}

	ch := &Channel{
		ChannelName: name,
		ChannelType: req.ChannelType,
		UtmSource:   req.UtmSource,
		Cost:        req.Cost,
		CreatedBy:   user.ID,
	}
	if ch.ChannelType == "" {
		ch.ChannelType = ChannelTypeOnline
	}

	if err := s.repo.CreateChannel(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "channel", "create", ch.ID, user.ID)
	return toChannelResponse(ch), nil
}

func (s *service) getChannel(ctx context.Context, id uint) (*Channel, error) {
	ch, err := s.repo.GetChannel(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("渠道不存在")
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return ch, nil
}

func (s *service) UpdateChannel(ctx context.Context, user *users.AuthUser, id uint, req UpdateChannelRequest) (*ChannelResponse, error) {
	if _, err := s.getChannel(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.ChannelName != nil {
		name := strings.TrimSpace(*req.ChannelName)
		if name == "" {
			return nil, apperrors.Validation("渠道名称不能为空")
		}
		exists, err := s.repo.ChannelNameExists(ctx, name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check channel name: %w", err)
		}
		if exists {
			return nil, apperrors.Conflict("渠道名称已存在")
		}
		updates["channel_name"] = name
	}
	if req.ChannelType != nil {
		updates["channel_type"] = *req.ChannelType
	}
	if req.UtmSource != nil {
		updates["utm_source"] = *req.UtmSource
	}
	if req.VisitCount != nil {
		updates["visit_count"] = *req.VisitCount
	}
	if req.LeadCount != nil {
		updates["lead_count"] = *req.LeadCount
	}
	if req.ConversionCount != nil {
		updates["conversion_count"] = *req.ConversionCount
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if req.Revenue != nil {
		updates["revenue"] = *req.Revenue
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("没有需要更新的字段")
	}

	if err := s.repo.UpdateChannel(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "channel", "update", id, user.ID)

	ch, err := s.getChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	return toChannelResponse(ch), nil
}

func (s *service) DeleteChannel(ctx context.Context, user *users.AuthUser, id uint) error {
	deleted, err := s.repo.DeleteChannel(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("渠道不存在")
	}

	logger.GetDefault().LogEntityChanged(ctx, "channel", "delete", id, user.ID)
	return nil
}

// Promotion codes

// generateCode builds <user base36><millis base36><6 random hex>, upper-cased
func generateCode(userID uint, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.ToUpper(
		strconv.FormatUint(uint64(userID), 36) +
			strconv.FormatInt(now.UnixMilli(), 36) +
			random,
	)
}

func (s *service) GenerateCode(ctx context.Context, user *users.AuthUser, req CreatePromotionCodeRequest) (*PromotionCode, error) {
	now := s.now().UTC()

	validity := req.ValidityDays
	if validity <= 0 {
		validity = defaultValidityDays
	}
	limit := req.UsageLimit
	if limit <= 0 {
		limit = defaultUsageLimit
	}

	var code string
	for attempt := 0; attempt < codeGenerateRetries; attempt++ {
		candidate := generateCode(user.ID, now)
		exists, err := s.repo.CodeExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to check promotion code: %w", err)
		}
		if !exists {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, apperrors.Conflict("推广码生成冲突，请重试")
	}

	pc := &PromotionCode{
		UserID:       user.ID,
		ActivityID:   req.ActivityID,
		Code:         code,
		Title:        req.Title,
		Description:  req.Description,
		ValidityDays: validity,
		UsageLimit:   limit,
		ExpiresAt:    now.AddDate(0, 0, validity),
		Status:       CodeStatusActive,
	}
	if err := s.repo.CreateCode(ctx, pc); err != nil {
		return nil, fmt.Errorf("failed to create promotion code: %w", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "promotion_code", "create", pc.ID, user.ID)
	return pc, nil
}

func (s *service) ListMyCodes(ctx context.Context, user *users.AuthUser) ([]PromotionCode, error) {
	codes, err := s.repo.ListCodesByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotion codes: %w", err)
	}
	if codes == nil {
		codes = []PromotionCode{}
	}
	return codes, nil
}

func (s *service) getCode(ctx context.Context, code string) (*PromotionCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.Validation("推广码不能为空")
	}

	pc, err := s.repo.GetCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("推广码不存在")
		}
		return nil, fmt.Errorf("failed to get promotion code: %w", err)
	}
	return pc, nil
}

func (s *service) GetCodeStats(ctx context.Context, code string) (*PromotionCodeStats, error) {
	pc, err := s.getCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	clicks, err := s.repo.ClickStats(ctx, pc.Code, now.Add(-clickStatsWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load click stats: %w", err)
	}

	return &PromotionCodeStats{
		Code:       pc.Code,
		Title:      pc.Title,
		Status:     pc.Status,
		ExpiresAt:  pc.ExpiresAt,
		UsageLimit: pc.UsageLimit,
		UsageCount: pc.UsageCount,
		Expired:    pc.IsExpired(now),
		Clicks:     *clicks,
	}, nil
}

func (s *service) RecordClick(ctx context.Context, req ClickRequest) (*ClickResponse, error) {
	pc, err := s.getCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	switch {
	case pc.Status != CodeStatusActive:
		return nil, apperrors.Validation("推广码已停用")
	case pc.IsExpired(now):
		return nil, apperrors.Validation("推广码已过期")
	case pc.IsExhausted():
		return nil, apperrors.Validation("推广码使用次数已达上限")
	}

	updated, err := s.repo.RecordClick(ctx, &PromotionClick{
		Code:      pc.Code,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Referrer:  req.Referrer,
	}, now)
	if err != nil {
		if errors.Is(err, ErrCodeUnavailable) {
			return nil, apperrors.Validation("推广码使用次数已达上限")
		}
		return nil, fmt.Errorf("failed to record click: %w", err)
	}

	return &ClickResponse{
		Code:       updated.Code,
		UsageCount: updated.UsageCount,
		Remaining:  updated.UsageLimit - updated.UsageCount,
	}, nil
}
