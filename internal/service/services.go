package service

import (
	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/purposeful/purposeful-backend/internal/repository"
)

type Services struct {
	Auth          *AuthService
	Idea          *IdeaService
	Reaction      *ReactionService
	Collaboration *CollaborationService
	Tag           *TagService
	URL           *URLService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, integrations Integrations) *Services {
	ideaService := NewIdeaService(repos, integrations.Counter)

	return &Services{
		Auth:          NewAuthService(repos.AppUser, repos.RegularUser, cfg),
		Idea:          ideaService,
		Reaction:      NewReactionService(repos.Reaction, repos.Idea, repos.RegularUser, integrations.Counter, integrations.Notifier),
		Collaboration: NewCollaborationService(repos.Collaboration, repos.RegularUser, ideaService, integrations.Notifier),
		Tag:           NewTagService(repos.Domain, repos.Technology, repos.Topic),
		URL:           NewURLService(repos.URL, integrations.Images),
	}
}
