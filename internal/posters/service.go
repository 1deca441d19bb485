package posters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"kinderadmin/internal/shared/apperrors"
	"kinderadmin/internal/shared/utils/response"
	"kinderadmin/internal/users"
	"kinderadmin/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

type Settings struct {
	MaxSize      int64
	PublicURL    string
	AllowedTypes []string
}

type Service interface {
	Upload(ctx context.Context, user *users.AuthUser, file *multipart.FileHeader, req UploadRequest) (*Poster, error)
	List(ctx context.Context, user *users.AuthUser, query PosterListQuery) (*response.PagedData, error)
	ListTemplates(ctx context.Context, query TemplateQuery) ([]Template, error)
	Delete(ctx context.Context, user *users.AuthUser, id uint) error
}

type service struct {
	repo     Repository
	storage  Storage
	settings Settings
}

func NewService(repo Repository, storage Storage, settings Settings) Service {
	return &service{repo: repo, storage: storage, settings: settings}
}

func (s *service) allowed(mime string) bool {
	for _, t := range s.settings.AllowedTypes {
		if strings.EqualFold(t, mime) {
			return true
		}
	}
	return false
}

func (s *service) Upload(ctx context.Context, user *users.AuthUser, file *multipart.FileHeader, req UploadRequest) (*Poster, error) {
	if file == nil {
		return nil, apperrors.Validation("请选择要上传的文件")
	}
	if file.Size <= 0 {
		return nil, apperrors.Validation("上传的文件为空")
	}
	if s.settings.MaxSize > 0 && file.Size > s.settings.MaxSize {
		return nil, apperrors.Validationf("文件大小超过限制: 最大 %d MB", s.settings.MaxSize/(1024*1024))
	}

	if req.TemplateID != nil {
		if _, err := s.repo.GetTemplate(ctx, *req.TemplateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("海报模板不存在")
			}
			return nil, fmt.Errorf("failed to get poster template %d: %w", *req.TemplateID, err)
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	mime := detected.String()
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	if !s.allowed(mime) {
		return nil, apperrors.Validationf("不支持的文件类型: %s", mime)
	}

	name := uuid.NewString() + detected.Extension()
	stored, size, err := s.storage.Save(ctx, path.Join("posters", name), io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		return nil, fmt.Errorf("failed to store poster: %w", err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(file.Filename, path.Ext(file.Filename))
	}

	poster := &Poster{
		Title:        title,
		TemplateID:   req.TemplateID,
		FileName:     name,
		OriginalName: file.Filename,
		FilePath:     stored,
		FileURL:      strings.TrimRight(s.settings.PublicURL, "/") + "/posters/" + name,
		FileSize:     size,
		MimeType:     mime,
		CreatedBy:    user.ID,
	}
	if err := s.repo.Create(ctx, poster); err != nil {
		if rmErr := s.storage.Remove(ctx, stored); rmErr != nil {
			logger.GetDefault().WarnContext(ctx, "Failed to remove orphaned poster file", "path", stored, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save poster: %w", err)
	}

	logger.GetDefault().LogFileStored(ctx, stored, size, user.ID)
	return poster, nil
}

func (s *service) List(ctx context.Context, user *users.AuthUser, query PosterListQuery) (*response.PagedData, error) {
	query.Normalize()

	posters, total, err := s.repo.ListByOwner(ctx, user.ID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posters: %w", err)
	}
	if posters == nil {
		posters = []Poster{}
	}

	page := response.NewPagedData(posters, total, query.Page, query.PageSize)
	return &page, nil
}

func (s *service) ListTemplates(ctx context.Context, query TemplateQuery) ([]Template, error) {
	templates, err := s.repo.ListTemplates(ctx, query.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list poster templates: %w", err)
	}
	if templates == nil {
		templates = []Template{}
	}
	return templates, nil
}

// Delete removes the owner's poster and its file. A file that cannot be
// removed is logged and left behind.
func (s *service) Delete(ctx context.Context, user *users.AuthUser, id uint) error {
	poster, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("海报不存在")
		}
		return fmt.Errorf("failed to get poster %d: %w", id, err)
	}
	if poster.CreatedBy != user.ID {
		return apperrors.Forbidden("只能删除自己上传的海报")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete poster %d: %w", id, err)
	}
	if err := s.storage.Remove(ctx, poster.FilePath); err != nil {
		logger.GetDefault().WarnContext(ctx, "Failed to remove poster file", "path", poster.FilePath, "error", err)
	}

	logger.GetDefault().LogEntityChanged(ctx, "poster", "delete", id, user.ID)
	return nil
}
