package errorlogs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/database"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/logger"

	"github.com/google/uuid"
)

const (
	maxMessageLen = 2000
	maxStackLen   = 10000
)

// ClientMeta is what the server knows about the reporting client.
type ClientMeta struct {
	IP        string
	UserAgent string
}

type Service interface {
	Report(ctx context.Context, user *users.AuthUser, meta ClientMeta, req ReportRequest) (*ReportResponse, error)
	Record(ctx context.Context, entry *ErrorLog) (queued bool, err error)
	List(ctx context.Context, query ListQuery) (*response.PagedData, error)
	Stats(ctx context.Context) (*StatsResponse, error)
	Purge(ctx context.Context, user *users.AuthUser, days int) (*PurgeResponse, error)
}

type service struct {
	repo      Repository
	publisher Publisher
	now       func() time.Time
}

// NewService returns a service that stores entries directly when publisher
// is nil and streams them otherwise.
func NewService(repo Repository, publisher Publisher) Service {
	return &service{repo: repo, publisher: publisher, now: time.Now}
}

func (s *service) Report(ctx context.Context, user *users.AuthUser, meta ClientMeta, req ReportRequest) (*ReportResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.Validation("错误信息不能为空")
	}

	level := Level(req.Level)
	if level == "" {
		level = LevelError
	}
	if !level.IsValid() {
		return nil, apperrors.Validationf("无效的日志级别: %s", req.Level)
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = meta.UserAgent
	}

	entry := &ErrorLog{
		Source:    SourceClient,
		Level:     level,
		Message:   truncate(message, maxMessageLen),
		Stack:     truncate(req.Stack, maxStackLen),
		URL:       truncate(req.URL, 1000),
		UserAgent: truncate(userAgent, 500),
		Component: req.Component,
		IPAddress: meta.IP,
		Extra:     database.JSONMap(req.Extra),
	}
	if user != nil {
		id := user.ID
		entry.UserID = &id
	}

	queued, err := s.Record(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &ReportResponse{EventID: entry.EventID, Queued: queued}, nil
}

// Record assigns the event id and timestamp, then publishes entry. Without
// a publisher, or when publishing fails, entry is written directly.
func (s *service) Record(ctx context.Context, entry *ErrorLog) (bool, error) {
	if entry.EventID == "" {
		entry.EventID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if entry.Source == "" {
		entry.Source = SourceClient
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, entry)
		if err == nil {
			return true, nil
		}
		logger.GetDefault().WarnContext(ctx, "error log stream unavailable, storing directly",
			"event_id", entry.EventID,
			"error", err.Error(),
		)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return false, fmt.Errorf("failed to store error log: %w", err)
	}
	return false, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*response.PagedData, error) {
	query.Normalize()

	logs, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list error logs: %w", err)
	}
	if logs == nil {
		logs = []ErrorLog{}
	}

	page := response.NewPagedData(logs, total, query.Page, query.PageSize)
	return &page, nil
}

func (s *service) Stats(ctx context.Context) (*StatsResponse, error) {
	byLevel, err := s.repo.CountByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count error logs by level: %w", err)
	}
	bySource, err := s.repo.CountBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count error logs by source: %w", err)
	}
	recent, err := s.repo.CountSince(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent error logs: %w", err)
	}

	stats := &StatsResponse{
		Last24h:  recent,
		ByLevel:  make(map[Level]int64, len(Levels)),
		BySource: bySource,
	}
	for _, level := range Levels {
		stats.ByLevel[level] = byLevel[level]
	}
	for _, n := range byLevel {
		stats.Total += n
	}
	return stats, nil
}

func (s *service) Purge(ctx context.Context, user *users.AuthUser, days int) (*PurgeResponse, error) {
	if days < 1 {
		return nil, apperrors.Validation("保留天数必须大于0")
	}

	before := s.now().AddDate(0, 0, -days)
	deleted, err := s.repo.DeleteBefore(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to purge error logs: %w", err)
	}

	logger.GetDefault().InfoContext(ctx, "error logs purged",
		"deleted", deleted,
		"before", before,
		"operator_id", user.ID,
	)
	return &PurgeResponse{Deleted: deleted, Before: before}, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
