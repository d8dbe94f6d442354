package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"gorm.io/gorm"
)

type ReactionService struct {
	reactionRepo    repository.ReactionRepository
	ideaRepo        repository.IdeaRepository
	regularUserRepo repository.RegularUserRepository
	counter         ReactionCounter
	notifier        Notifier
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	ideaRepo repository.IdeaRepository,
	regularUserRepo repository.RegularUserRepository,
	counter ReactionCounter,
	notifier Notifier,
) *ReactionService {
	return &ReactionService{
		reactionRepo:    reactionRepo,
		ideaRepo:        ideaRepo,
		regularUserRepo: regularUserRepo,
		counter:         counter,
		notifier:        notifier,
	}
}

// React toggles the user's reaction on an idea. It returns the new reaction,
// or nil when an existing one was removed.
func (s *ReactionService) React(ctx context.Context, date time.Time, reactionType domain.ReactionType, ideaID, regularUserID string) (*domain.Reaction, error) {
	if !reactionType.IsValid() {
		return nil, domain.BadRequest(domain.MsgInvalidReaction)
	}

	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgIdeaNotFoundFormat, ideaID)
		}
		return nil, err
	}

	user, err := s.regularUserRepo.GetByID(ctx, regularUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}

	existing, err := s.reactionRepo.GetByIdeaAndUser(ctx, idea.ID, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to remove reaction: %w", err)
		}
		s.adjustCount(ctx, idea.ID, -1)
		return nil, nil
	}

	reaction := &domain.Reaction{
		Date:          date,
		ReactionType:  reactionType,
		IdeaID:        idea.ID,
		RegularUserID: user.ID,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		return nil, fmt.Errorf("failed to save reaction: %w", err)
	}
	s.adjustCount(ctx, idea.ID, 1)
	s.notifyOwner(idea, user, reaction)

	return reaction, nil
}

// ReactAs toggles a reaction on behalf of the authenticated caller
func (s *ReactionService) ReactAs(ctx context.Context, caller domain.Caller, ideaID string, reactionType domain.ReactionType) (*domain.Reaction, error) {
	user, err := s.regularUserRepo.GetByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}
	return s.React(ctx, time.Now(), reactionType, ideaID, user.ID)
}

// CountReactions reads the cached total, falling back to the database and
// refilling the cache.
func (s *ReactionService) CountReactions(ctx context.Context, ideaID string) (int64, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.BadRequest(domain.MsgIdeaNotFoundFormat, ideaID)
		}
		return 0, err
	}

	if s.counter != nil {
		count, ok, err := s.counter.Get(ctx, ideaID)
		if err == nil && ok {
			return count, nil
		}
		if err != nil {
			log.Printf("ERROR [ReactionService.CountReactions] cache read failed for %s: %v", ideaID, err)
		}
	}

	count, err := s.reactionRepo.CountByIdeaID(ctx, ideaID)
	if err != nil {
		return 0, err
	}

	if s.counter != nil {
		if err := s.counter.Set(ctx, ideaID, count); err != nil {
			log.Printf("ERROR [ReactionService.CountReactions] cache write failed for %s: %v", ideaID, err)
		}
	}
	return count, nil
}

// adjustCount only touches totals that are already cached; a missing key is
// rebuilt from the database on the next read.
func (s *ReactionService) adjustCount(ctx context.Context, ideaID string, delta int) {
	if s.counter == nil {
		return
	}
	if _, ok, err := s.counter.Get(ctx, ideaID); err != nil || !ok {
		return
	}

	var err error
	if delta > 0 {
		err = s.counter.Increment(ctx, ideaID)
	} else {
		err = s.counter.Decrement(ctx, ideaID)
	}
	if err != nil {
		log.Printf("ERROR [ReactionService.adjustCount] idea=%s: %v", ideaID, err)
	}
}

func (s *ReactionService) notifyOwner(idea *domain.Idea, from *domain.RegularUser, reaction *domain.Reaction) {
	if s.notifier == nil || idea.Owner == nil || idea.Owner.ID == from.ID {
		return
	}
	s.notifier.Notify(idea.Owner.AppUserID, websocket.MessageTypeReactionReceived, websocket.ReactionReceivedPayload{
		IdeaID:       idea.ID,
		IdeaTitle:    idea.Title,
		ReactionType: string(reaction.ReactionType),
		FromEmail:    from.Email(),
	})
}
