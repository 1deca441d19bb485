package migrations

import (
	"context"
	"fmt"
	"sync"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/database"
	"kinderadmin/pkg/logger"
)

type Service interface {
	List(ctx context.Context) ([]Status, error)
	RunPending(ctx context.Context) (*RunResponse, error)
	Run(ctx context.Context, name string) (*RunResponse, error)
}

type service struct {
	repo     Repository
	registry []database.Migration
	mu       sync.Mutex
}

// NewService manages registry against repo. Registry order is apply order.
func NewService(repo Repository, registry []database.Migration) Service {
	return &service{repo: repo, registry: registry}
}

func (s *service) applied(ctx context.Context) (map[string]SchemaMigration, error) {
	if err := s.repo.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}
	rows, err := s.repo.ListApplied(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	done := make(map[string]SchemaMigration, len(rows))
	for _, row := range rows {
		done[row.Name] = row
	}
	return done, nil
}

func (s *service) List(ctx context.Context) ([]Status, error) {
	done, err := s.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(s.registry))
	for _, m := range s.registry {
		st := Status{Name: m.Name, Description: m.Description}
		if row, ok := done[m.Name]; ok {
			at := row.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (s *service) RunPending(ctx context.Context) (*RunResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done, err := s.applied(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResponse{Applied: []string{}}
	for i, m := range s.registry {
		if _, ok := done[m.Name]; ok {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			result.Pending = s.countPending(done, i)
			return result, err
		}
		done[m.Name] = SchemaMigration{Name: m.Name}
		result.Applied = append(result.Applied, m.Name)
	}
	return result, nil
}

// Run applies the named migration. Every migration before it must already
// be applied.
func (s *service) Run(ctx context.Context, name string) (*RunResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.registry {
		if m.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("迁移不存在: %s", name))
	}

	done, err := s.applied(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := done[name]; ok {
		return nil, apperrors.Conflict(fmt.Sprintf("迁移已执行: %s", name))
	}
	for _, prev := range s.registry[:idx] {
		if _, ok := done[prev.Name]; !ok {
			return nil, apperrors.Validationf("请先执行之前的迁移: %s", prev.Name)
		}
	}

	m := s.registry[idx]
	if err := s.apply(ctx, m); err != nil {
		return nil, err
	}
	done[name] = SchemaMigration{Name: name}

	return &RunResponse{Applied: []string{name}, Pending: s.countPending(done, 0)}, nil
}

func (s *service) apply(ctx context.Context, m database.Migration) error {
	record, err := s.repo.Apply(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
	}
	logger.GetDefault().InfoContext(ctx, "migration applied",
		"name", record.Name,
		"applied_at", record.AppliedAt,
	)
	return nil
}

func (s *service) countPending(done map[string]SchemaMigration, from int) int {
	n := 0
	for _, m := range s.registry[from:] {
		if _, ok := done[m.Name]; !ok {
			n++
		}
	}
	return n
}
