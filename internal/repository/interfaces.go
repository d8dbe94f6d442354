package repository

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
)

type AppUserRepository interface {
	Create(ctx context.Context, user *domain.AppUser) error
	GetByID(ctx context.Context, id string) (*domain.AppUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AppUser, error)
	Update(ctx context.Context, user *domain.AppUser) error
}

type RegularUserRepository interface {
	Create(ctx context.Context, user *domain.RegularUser) error
	GetByID(ctx context.Context, id string) (*domain.RegularUser, error)
	GetByAppUserID(ctx context.Context, appUserID string) (*domain.RegularUser, error)
	// GetByEmail joins through the owning AppUser
	GetByEmail(ctx context.Context, email string) (*domain.RegularUser, error)
}

type IdeaRepository interface {
	// Create and Update persist the idea together with its tag links and
	// ordered image rows in one transaction.
	Create(ctx context.Context, idea *domain.Idea) error
	Update(ctx context.Context, idea *domain.Idea) error
	// Delete removes the idea and everything hanging off it
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	// GetAll returns every idea ordered by date DESC, id ASC
	GetAll(ctx context.Context) ([]*domain.Idea, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Idea, error)
	GetByCollaborationRequester(ctx context.Context, requesterID string) ([]*domain.Idea, error)
}

// TagRepository serves the three shared tag tables
type TagRepository[T domain.Domain | domain.Technology | domain.Topic] interface {
	Create(ctx context.Context, tag *T) error
	GetAll(ctx context.Context) ([]*T, error)
	GetByIDs(ctx context.Context, ids []string) ([]*T, error)
	GetByName(ctx context.Context, name string) (*T, error)
}

type URLRepository interface {
	Create(ctx context.Context, url *domain.URL) error
	GetByID(ctx context.Context, id string) (*domain.URL, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.URL, error)
}

type ReactionRepository interface {
	Create(ctx context.Context, reaction *domain.Reaction) error
	Delete(ctx context.Context, id string) error
	GetByIdeaAndUser(ctx context.Context, ideaID, regularUserID string) (*domain.Reaction, error)
	CountByIdeaID(ctx context.Context, ideaID string) (int64, error)
}

type CollaborationRepository interface {
	CreateRequest(ctx context.Context, request *domain.CollaborationRequest) error
	GetRequestByID(ctx context.Context, id string) (*domain.CollaborationRequest, error)
	// GetRequestsByIdeaAndRequester returns the newest request first
	GetRequestsByIdeaAndRequester(ctx context.Context, ideaID, requesterID string) ([]*domain.CollaborationRequest, error)
	GetRequestsByIdeaID(ctx context.Context, ideaID string) ([]*domain.CollaborationRequest, error)
	// Respond stores the response (and its confirmation, if any) and links
	// it to the request.
	Respond(ctx context.Context, request *domain.CollaborationRequest, response *domain.CollaborationResponse) error
}

type Repositories struct {
	AppUser       AppUserRepository
	RegularUser   RegularUserRepository
	Idea          IdeaRepository
	Domain        TagRepository[domain.Domain]
	Technology    TagRepository[domain.Technology]
	Topic         TagRepository[domain.Topic]
	URL           URLRepository
	Reaction      ReactionRepository
	Collaboration CollaborationRepository
}
