package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"gorm.io/gorm"
)

type TagService struct {
	domainRepo repository.TagRepository[domain.Domain]
	techRepo   repository.TagRepository[domain.Technology]
	topicRepo  repository.TagRepository[domain.Topic]
}

func NewTagService(
	domainRepo repository.TagRepository[domain.Domain],
	techRepo repository.TagRepository[domain.Technology],
	topicRepo repository.TagRepository[domain.Topic],
) *TagService {
	return &TagService{
		domainRepo: domainRepo,
		techRepo:   techRepo,
		topicRepo:  topicRepo,
	}
}

func (s *TagService) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	return s.domainRepo.GetAll(ctx)
}

func (s *TagService) ListTechs(ctx context.Context) ([]*domain.Technology, error) {
	return s.techRepo.GetAll(ctx)
}

func (s *TagService) ListTopics(ctx context.Context) ([]*domain.Topic, error) {
	return s.topicRepo.GetAll(ctx)
}

func (s *TagService) CreateDomain(ctx context.Context, name string) (*domain.Domain, error) {
	return createTag(ctx, s.domainRepo, domain.TagKindDomain, name, func(n string) *domain.Domain {
		return &domain.Domain{Name: n}
	})
}

func (s *TagService) CreateTech(ctx context.Context, name string) (*domain.Technology, error) {
	return createTag(ctx, s.techRepo, domain.TagKindTechnology, name, func(n string) *domain.Technology {
		return &domain.Technology{Name: n}
	})
}

func (s *TagService) CreateTopic(ctx context.Context, name string) (*domain.Topic, error) {
	return createTag(ctx, s.topicRepo, domain.TagKindTopic, name, func(n string) *domain.Topic {
		return &domain.Topic{Name: n}
	})
}

func createTag[T domain.Domain | domain.Technology | domain.Topic](
	ctx context.Context,
	repo repository.TagRepository[T],
	kind domain.TagKind,
	name string,
	build func(string) *T,
) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.BadRequest(domain.MsgFieldsEmpty)
	}

	_, err := repo.GetByName(ctx, name)
	if err == nil {
		return nil, domain.BadRequest(domain.MsgTagExistsFormat, kind, name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := build(name)
	if err := repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", strings.ToLower(string(kind)), name, err)
	}
	return tag, nil
}
