package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"gorm.io/gorm"
)

type URLService struct {
	urlRepo repository.URLRepository
	images  ImageStore
}

func NewURLService(urlRepo repository.URLRepository, images ImageStore) *URLService {
	return &URLService{
		urlRepo: urlRepo,
		images:  images,
	}
}

// CreateURL stores an absolute http(s) link
func (s *URLService) CreateURL(ctx context.Context, raw string) (*domain.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.BadRequest(domain.MsgFieldsEmpty)
	}

	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, domain.BadRequest(domain.MsgInvalidURL)
	}

	u := &domain.URL{URL: parsed.String()}
	if err := s.urlRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save url: %w", err)
	}
	return u, nil
}

func (s *URLService) GetURL(ctx context.Context, id string) (*domain.URL, error) {
	u, err := s.urlRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgURLNotFoundFormat, id)
		}
		return nil, err
	}
	return u, nil
}

// UploadImage stores the image in object storage and records its URL
func (s *URLService) UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*domain.URL, error) {
	if s.images == nil {
		return nil, domain.Internal(domain.MsgUploadsDisabled)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.BadRequest(domain.MsgImagesOnly)
	}

	location, err := s.images.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filename, err)
	}

	u := &domain.URL{URL: location}
	if err := s.urlRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save url: %w", err)
	}
	return u, nil
}
