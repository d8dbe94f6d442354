package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"gorm.io/gorm"
)

type IdeaService struct {
	ideaRepo        repository.IdeaRepository
	regularUserRepo repository.RegularUserRepository
	domainRepo      repository.TagRepository[domain.Domain]
	techRepo        repository.TagRepository[domain.Technology]
	topicRepo       repository.TagRepository[domain.Topic]
	urlRepo         repository.URLRepository
	counter         ReactionCounter
}

func NewIdeaService(repos *repository.Repositories, counter ReactionCounter) *IdeaService {
	return &IdeaService{
		ideaRepo:        repos.Idea,
		regularUserRepo: repos.RegularUser,
		domainRepo:      repos.Domain,
		techRepo:        repos.Technology,
		topicRepo:       repos.Topic,
		urlRepo:         repos.URL,
		counter:         counter,
	}
}

type CreateIdeaInput struct {
	Title       string
	Purpose     string
	Description string
	IsPaid      bool
	InProgress  bool
	IsPrivate   bool
	DomainIDs   []string
	TechIDs     []string
	TopicIDs    []string
	ImageURLIDs []string
	IconURLID   string
}

// ModifyIdeaInput describes an edit. Nil text fields and nil lists leave the
// stored value untouched; the booleans and the icon are always applied.
type ModifyIdeaInput struct {
	ID          string
	Title       *string
	Purpose     *string
	Description *string
	IsPaid      bool
	InProgress  bool
	IsPrivate   bool
	DomainIDs   []string
	TechIDs     []string
	TopicIDs    []string
	ImageURLIDs []string
	IconURLID   string
}

func (s *IdeaService) GetIdeaByID(ctx context.Context, id string) (*domain.Idea, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.BadRequest(domain.MsgEmptyIdeaID)
	}

	idea, err := s.ideaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgIdeaNotFoundFormat, id)
		}
		return nil, err
	}
	return idea, nil
}

// GetIdeasByAllCriteria returns the public ideas matching every non-nil
// name list, newest first.
func (s *IdeaService) GetIdeasByAllCriteria(ctx context.Context, domainNames, topicNames, techNames []string) ([]*domain.Idea, error) {
	all, err := s.ideaRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR [IdeaService.GetIdeasByAllCriteria] fetch failed: %v", err)
		return nil, domain.Internal(domain.MsgCouldNotRetrieve)
	}

	filter := domain.IdeaFilter{Domains: domainNames, Topics: topicNames, Techs: techNames}
	matched := make([]*domain.Idea, 0, len(all))
	for _, idea := range all {
		if idea.IsPrivate {
			continue
		}
		if filter.Matches(idea) {
			matched = append(matched, idea)
		}
	}

	if len(matched) == 0 {
		return nil, domain.NotFound(domain.MsgNoIdeasMatch)
	}

	sortNewestFirst(matched)
	return matched, nil
}

func sortNewestFirst(ideas []*domain.Idea) {
	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].Date.After(ideas[j].Date)
	})
}

func (s *IdeaService) CreateIdea(ctx context.Context, caller domain.Caller, input CreateIdeaInput) (*domain.Idea, error) {
	if err := checkNotBlank(input.Title); err != nil {
		return nil, err
	}
	if err := checkTitleLength(input.Title); err != nil {
		return nil, err
	}
	if err := checkNotBlank(input.Description); err != nil {
		return nil, err
	}
	if err := checkNotBlank(input.Purpose); err != nil {
		return nil, err
	}

	if !hasNonBlank(input.DomainIDs) {
		return nil, domain.BadRequest(domain.MsgDomainRequired)
	}
	domains, err := s.resolveDomains(ctx, input.DomainIDs)
	if err != nil {
		return nil, err
	}
	techs, err := s.resolveTechs(ctx, input.TechIDs)
	if err != nil {
		return nil, err
	}
	if !hasNonBlank(input.TopicIDs) {
		return nil, domain.BadRequest(domain.MsgTopicRequired)
	}
	topics, err := s.resolveTopics(ctx, input.TopicIDs)
	if err != nil {
		return nil, err
	}
	images, err := s.resolveURLs(ctx, input.ImageURLIDs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.IconURLID) == "" {
		return nil, domain.BadRequest(domain.MsgIconRequired)
	}
	icon, err := s.resolveURL(ctx, input.IconURLID)
	if err != nil {
		return nil, err
	}

	owner, err := s.regularUserRepo.GetByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}

	idea := &domain.Idea{
		Title:       input.Title,
		Purpose:     input.Purpose,
		Description: input.Description,
		IsPaid:      input.IsPaid,
		InProgress:  input.InProgress,
		IsPrivate:   input.IsPrivate,
		Date:        time.Now(),
		Domains:     domains,
		Techs:       techs,
		Topics:      topics,
		IconURLID:   icon.ID,
		OwnerID:     owner.ID,
	}
	idea.SetSupportingImageURLs(images)

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to save idea: %w", err)
	}

	return s.ideaRepo.GetByID(ctx, idea.ID)
}

func (s *IdeaService) ModifyIdea(ctx context.Context, input ModifyIdeaInput) (*domain.Idea, error) {
	idea, err := s.GetIdeaByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	for _, field := range []*string{input.Title, input.Purpose, input.Description} {
		if field == nil {
			continue
		}
		if err := checkNotBlank(*field); err != nil {
			return nil, err
		}
	}
	if input.Title != nil {
		if err := checkTitleLength(*input.Title); err != nil {
			return nil, err
		}
	}

	var (
		domains []*domain.Domain
		techs   []*domain.Technology
		topics  []*domain.Topic
		images  []*domain.URL
	)
	if input.DomainIDs != nil {
		if !hasNonBlank(input.DomainIDs) {
			return nil, domain.BadRequest(domain.MsgDomainRequired)
		}
		if domains, err = s.resolveDomains(ctx, input.DomainIDs); err != nil {
			return nil, err
		}
	}
	if input.TechIDs != nil {
		if techs, err = s.resolveTechs(ctx, input.TechIDs); err != nil {
			return nil, err
		}
	}
	if input.TopicIDs != nil {
		if !hasNonBlank(input.TopicIDs) {
			return nil, domain.BadRequest(domain.MsgTopicRequired)
		}
		if topics, err = s.resolveTopics(ctx, input.TopicIDs); err != nil {
			return nil, err
		}
	}
	if input.ImageURLIDs != nil {
		if images, err = s.resolveURLs(ctx, input.ImageURLIDs); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(input.IconURLID) == "" {
		return nil, domain.BadRequest(domain.MsgIconRequired)
	}
	icon, err := s.resolveURL(ctx, input.IconURLID)
	if err != nil {
		return nil, err
	}

	idea.IsPaid = input.IsPaid
	idea.InProgress = input.InProgress
	idea.IsPrivate = input.IsPrivate
	if input.Title != nil {
		idea.Title = *input.Title
	}
	if input.Purpose != nil {
		idea.Purpose = *input.Purpose
	}
	if input.Description != nil {
		idea.Description = *input.Description
	}
	if input.DomainIDs != nil {
		idea.Domains = domains
	}
	if input.TechIDs != nil {
		idea.Techs = techs
	}
	if input.TopicIDs != nil {
		idea.Topics = topics
	}
	if input.ImageURLIDs != nil {
		idea.SetSupportingImageURLs(images)
	} else {
		// keep the stored order when images are untouched
		idea.SetSupportingImageURLs(idea.SupportingImageURLs())
	}
	idea.IconURLID = icon.ID
	idea.IconURL = icon

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to update idea %s: %w", idea.ID, err)
	}

	return s.ideaRepo.GetByID(ctx, idea.ID)
}

// RemoveIdeaByID deletes the idea along with its reactions and
// collaboration requests.
func (s *IdeaService) RemoveIdeaByID(ctx context.Context, id string) error {
	if _, err := s.GetIdeaByID(ctx, id); err != nil {
		return err
	}

	if err := s.ideaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BadRequest(domain.MsgIdeaNotFoundFormat, id)
		}
		return fmt.Errorf("failed to delete idea %s: %w", id, err)
	}

	if s.counter != nil {
		if err := s.counter.Delete(ctx, id); err != nil {
			log.Printf("ERROR [IdeaService.RemoveIdeaByID] failed to clear reaction count for %s: %v", id, err)
		}
	}
	return nil
}

// GetCreatedIdeas returns every idea the user owns, private ones included
func (s *IdeaService) GetCreatedIdeas(ctx context.Context, email string) ([]*domain.Idea, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.BadRequest(domain.MsgEmptyEmail)
	}

	owner, err := s.findRegularUser(ctx, email)
	if err != nil {
		return nil, err
	}

	ideas, err := s.ideaRepo.GetByOwnerID(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(ideas)
	return ideas, nil
}

// GetIdeasByCollaborationRequest returns the ideas the user asked to join
func (s *IdeaService) GetIdeasByCollaborationRequest(ctx context.Context, email string) ([]*domain.Idea, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.BadRequest(domain.MsgEmptyEmailShort)
	}

	requester, err := s.findRegularUser(ctx, email)
	if err != nil {
		return nil, err
	}

	ideas, err := s.ideaRepo.GetByCollaborationRequester(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(ideas)
	return ideas, nil
}

func (s *IdeaService) findRegularUser(ctx context.Context, email string) (*domain.RegularUser, error) {
	user, err := s.regularUserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}
	return user, nil
}

func checkNotBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.BadRequest(domain.MsgFieldsEmpty)
	}
	return nil
}

func checkTitleLength(title string) error {
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.BadRequest(domain.MsgTitleTooLong)
	}
	return nil
}

func hasNonBlank(ids []string) bool {
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			return true
		}
	}
	return false
}

// uniqueIDs drops duplicates, keeping first-seen order. A blank id can never
// resolve, so it fails the whole lookup.
func uniqueIDs(ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, domain.BadRequest(domain.MsgNonexistentObject)
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique, nil
}

// resolveTags loads every id or fails with the nonexistent-object error
func resolveTags[T domain.Domain | domain.Technology | domain.Topic](ctx context.Context, repo repository.TagRepository[T], ids []string) ([]*T, error) {
	unique, err := uniqueIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(unique) == 0 {
		return []*T{}, nil
	}

	found, err := repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, domain.BadRequest(domain.MsgNonexistentObject)
	}
	return found, nil
}

func (s *IdeaService) resolveDomains(ctx context.Context, ids []string) ([]*domain.Domain, error) {
	return resolveTags(ctx, s.domainRepo, ids)
}

func (s *IdeaService) resolveTechs(ctx context.Context, ids []string) ([]*domain.Technology, error) {
	return resolveTags(ctx, s.techRepo, ids)
}

func (s *IdeaService) resolveTopics(ctx context.Context, ids []string) ([]*domain.Topic, error) {
	return resolveTags(ctx, s.topicRepo, ids)
}

// resolveURLs keeps the caller's order and repeats
func (s *IdeaService) resolveURLs(ctx context.Context, ids []string) ([]*domain.URL, error) {
	unique, err := uniqueIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(unique) == 0 {
		return []*domain.URL{}, nil
	}

	found, err := s.urlRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.URL, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	urls := make([]*domain.URL, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			return nil, domain.BadRequest(domain.MsgNonexistentObject)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (s *IdeaService) resolveURL(ctx context.Context, id string) (*domain.URL, error) {
	url, err := s.urlRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgNonexistentObject)
		}
		return nil, err
	}
	return url, nil
}
