package postgres

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collaborationRepository struct {
	db *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) *collaborationRepository {
	return &collaborationRepository{db: db}
}

func (r *collaborationRepository) CreateRequest(ctx context.Context, request *domain.CollaborationRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

func (r *collaborationRepository) GetRequestByID(ctx context.Context, id string) (*domain.CollaborationRequest, error) {
	var request domain.CollaborationRequest
	err := r.db.WithContext(ctx).
		Preload("Idea").
		Preload("Idea.Owner").
		Preload("Idea.Owner.AppUser").
		Preload("Requester").
		Preload("Requester.AppUser").
		Preload("Response").
		Preload("Response.Confirmation").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *collaborationRepository) GetRequestsByIdeaAndRequester(ctx context.Context, ideaID, requesterID string) ([]*domain.CollaborationRequest, error) {
	var requests []*domain.CollaborationRequest
	err := r.db.WithContext(ctx).
		Preload("Response").
		Preload("Response.Confirmation").
		Where("idea_id = ? AND requester_id = ?", ideaID, requesterID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *collaborationRepository) GetRequestsByIdeaID(ctx context.Context, ideaID string) ([]*domain.CollaborationRequest, error) {
	var requests []*domain.CollaborationRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requester.AppUser").
		Preload("Response").
		Where("idea_id = ?", ideaID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *collaborationRepository) Respond(ctx context.Context, request *domain.CollaborationRequest, response *domain.CollaborationResponse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if response.Confirmation != nil {
			if err := tx.Create(response.Confirmation).Error; err != nil {
				return err
			}
			response.ConfirmationID = &response.Confirmation.ID
		}
		if err := tx.Omit(clause.Associations).Create(response).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.CollaborationRequest{}).
			Where("id = ? AND response_id IS NULL", request.ID).
			Update("response_id", response.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		request.ResponseID = &response.ID
		request.Response = response
		return nil
	})
}
