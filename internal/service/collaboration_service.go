package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"gorm.io/gorm"
)

type CollaborationService struct {
	collabRepo      repository.CollaborationRepository
	regularUserRepo repository.RegularUserRepository
	ideaService     *IdeaService
	notifier        Notifier
}

func NewCollaborationService(
	collabRepo repository.CollaborationRepository,
	regularUserRepo repository.RegularUserRepository,
	ideaService *IdeaService,
	notifier Notifier,
) *CollaborationService {
	return &CollaborationService{
		collabRepo:      collabRepo,
		regularUserRepo: regularUserRepo,
		ideaService:     ideaService,
		notifier:        notifier,
	}
}

type SendRequestInput struct {
	IdeaID            string
	Message           string
	AdditionalContact string
}

type RespondInput struct {
	RequestID         string
	Status            domain.CollaborationStatus
	Message           string
	AdditionalContact string
}

// GetCollaborationResponseForIdea returns the answer to the caller's most
// recent request on the idea. The response is nil while unanswered.
func (s *CollaborationService) GetCollaborationResponseForIdea(ctx context.Context, caller domain.Caller, ideaID string) (*domain.CollaborationResponse, error) {
	idea, err := s.ideaService.GetIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	requester, err := s.callerProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	requests, err := s.collabRepo.GetRequestsByIdeaAndRequester(ctx, idea.ID, requester.ID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, domain.BadRequest(domain.MsgNoRequestSent)
	}

	return requests[0].Response, nil
}

func (s *CollaborationService) SendRequest(ctx context.Context, caller domain.Caller, input SendRequestInput) (*domain.CollaborationRequest, error) {
	idea, err := s.ideaService.GetIdeaByID(ctx, input.IdeaID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.BadRequest(domain.MsgFieldsEmpty)
	}

	requester, err := s.callerProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if idea.OwnerID == requester.ID {
		return nil, domain.BadRequest(domain.MsgOwnIdea)
	}

	previous, err := s.collabRepo.GetRequestsByIdeaAndRequester(ctx, idea.ID, requester.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range previous {
		if r.ResponseID == nil {
			return nil, domain.BadRequest(domain.MsgRequestAlreadySent)
		}
	}

	request := &domain.CollaborationRequest{
		IdeaID:            idea.ID,
		RequesterID:       requester.ID,
		Message:           input.Message,
		AdditionalContact: input.AdditionalContact,
	}
	if err := s.collabRepo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save collaboration request: %w", err)
	}

	if s.notifier != nil && idea.Owner != nil {
		s.notifier.Notify(idea.Owner.AppUserID, websocket.MessageTypeCollaborationRequested, websocket.CollaborationRequestedPayload{
			RequestID: request.ID,
			IdeaID:    idea.ID,
			IdeaTitle: idea.Title,
			FromEmail: requester.Email(),
			Message:   request.Message,
		})
	}

	return request, nil
}

// GetRequestsForIdea lists the requests on an idea for someone allowed to
// manage it.
func (s *CollaborationService) GetRequestsForIdea(ctx context.Context, caller domain.Caller, ideaID string) ([]*domain.CollaborationRequest, error) {
	idea, err := s.ideaService.GetIdeaByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(idea) {
		return nil, domain.BadRequest(domain.MsgNotAuthorized)
	}
	return s.collabRepo.GetRequestsByIdeaID(ctx, idea.ID)
}

// Respond answers a request. Only the idea owner may answer, and only once.
func (s *CollaborationService) Respond(ctx context.Context, caller domain.Caller, input RespondInput) (*domain.CollaborationResponse, error) {
	if !input.Status.IsValid() {
		return nil, domain.BadRequest(domain.MsgInvalidStatus)
	}

	request, err := s.collabRepo.GetRequestByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgRequestNotFoundFormat, input.RequestID)
		}
		return nil, err
	}

	if request.Idea == nil || !strings.EqualFold(request.Idea.Owner.Email(), caller.Email) {
		return nil, domain.BadRequest(domain.MsgNotAuthorized)
	}
	if request.ResponseID != nil {
		return nil, domain.BadRequest(domain.MsgRequestAnswered)
	}

	response := &domain.CollaborationResponse{
		Status:  input.Status,
		Message: input.Message,
	}
	if input.Status == domain.CollaborationApproved {
		if strings.TrimSpace(input.AdditionalContact) == "" {
			return nil, domain.BadRequest(domain.MsgFieldsEmpty)
		}
		response.Confirmation = &domain.CollaborationConfirmation{
			AdditionalContact: input.AdditionalContact,
			Message:           input.Message,
		}
	}

	if err := s.collabRepo.Respond(ctx, request, response); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgRequestAnswered)
		}
		return nil, fmt.Errorf("failed to save collaboration response: %w", err)
	}

	if s.notifier != nil && request.Requester != nil {
		s.notifier.Notify(request.Requester.AppUserID, websocket.MessageTypeCollaborationAnswered, websocket.CollaborationAnsweredPayload{
			RequestID: request.ID,
			IdeaID:    request.IdeaID,
			IdeaTitle: request.Idea.Title,
			Status:    string(response.Status),
			Message:   response.Message,
		})
	}

	return response, nil
}

func (s *CollaborationService) callerProfile(ctx context.Context, caller domain.Caller) (*domain.RegularUser, error) {
	if strings.TrimSpace(caller.Email) == "" {
		return nil, domain.BadRequest(domain.MsgEmptyEmailShort)
	}
	user, err := s.regularUserRepo.GetByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}
	return user, nil
}
