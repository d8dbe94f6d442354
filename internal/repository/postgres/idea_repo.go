package postgres

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ideaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) *ideaRepository {
	return &ideaRepository{db: db}
}

func withIdeaRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Domains").
		Preload("Techs").
		Preload("Topics").
		Preload("IconURL").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Images.URL").
		Preload("Owner").
		Preload("Owner.AppUser")
}

func (r *ideaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(idea).Error; err != nil {
			return err
		}
		return saveIdeaLinks(tx, idea)
	})
}

func (r *ideaRepository) Update(ctx context.Context, idea *domain.Idea) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(idea).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&domain.IdeaImage{}).Error; err != nil {
			return err
		}
		return saveIdeaLinks(tx, idea)
	})
}

// saveIdeaLinks rewrites the tag join rows and inserts the image rows
func saveIdeaLinks(tx *gorm.DB, idea *domain.Idea) error {
	if err := replaceLinks(tx, idea, "Domains", idea.Domains, len(idea.Domains)); err != nil {
		return err
	}
	if err := replaceLinks(tx, idea, "Techs", idea.Techs, len(idea.Techs)); err != nil {
		return err
	}
	if err := replaceLinks(tx, idea, "Topics", idea.Topics, len(idea.Topics)); err != nil {
		return err
	}

	if len(idea.Images) == 0 {
		return nil
	}
	for pos, img := range idea.Images {
		img.IdeaID = idea.ID
		img.Position = pos
	}
	return tx.Omit(clause.Associations).Create(idea.Images).Error
}

func replaceLinks(tx *gorm.DB, idea *domain.Idea, name string, values interface{}, n int) error {
	if n == 0 {
		return tx.Model(idea).Association(name).Clear()
	}
	return tx.Model(idea).Association(name).Replace(values)
}

func (r *ideaRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idea := &domain.Idea{ID: id}
		for _, assoc := range []string{"Domains", "Techs", "Topics"} {
			if err := tx.Model(idea).Association(assoc).Clear(); err != nil {
				return err
			}
		}

		if err := tx.Where("idea_id = ?", id).Delete(&domain.IdeaImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", id).Delete(&domain.Reaction{}).Error; err != nil {
			return err
		}
		if err := deleteCollaborations(tx, id); err != nil {
			return err
		}

		result := tx.Delete(&domain.Idea{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// deleteCollaborations removes the idea's requests, then the responses and
// confirmations they pointed at.
func deleteCollaborations(tx *gorm.DB, ideaID string) error {
	var responseIDs []string
	err := tx.Model(&domain.CollaborationRequest{}).
		Where("idea_id = ? AND response_id IS NOT NULL", ideaID).
		Pluck("response_id", &responseIDs).Error
	if err != nil {
		return err
	}

	if err := tx.Where("idea_id = ?", ideaID).Delete(&domain.CollaborationRequest{}).Error; err != nil {
		return err
	}
	if len(responseIDs) == 0 {
		return nil
	}

	var confirmationIDs []string
	err = tx.Model(&domain.CollaborationResponse{}).
		Where("id IN ? AND confirmation_id IS NOT NULL", responseIDs).
		Pluck("confirmation_id", &confirmationIDs).Error
	if err != nil {
		return err
	}

	if err := tx.Where("id IN ?", responseIDs).Delete(&domain.CollaborationResponse{}).Error; err != nil {
		return err
	}
	if len(confirmationIDs) == 0 {
		return nil
	}
	return tx.Where("id IN ?", confirmationIDs).Delete(&domain.CollaborationConfirmation{}).Error
}

func (r *ideaRepository) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	var idea domain.Idea
	err := withIdeaRelations(r.db.WithContext(ctx)).First(&idea, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepository) GetAll(ctx context.Context) ([]*domain.Idea, error) {
	var ideas []*domain.Idea
	err := withIdeaRelations(r.db.WithContext(ctx)).
		Order("date DESC").
		Order("id ASC").
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Idea, error) {
	var ideas []*domain.Idea
	err := withIdeaRelations(r.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("date DESC").
		Order("id ASC").
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) GetByCollaborationRequester(ctx context.Context, requesterID string) ([]*domain.Idea, error) {
	db := r.db.WithContext(ctx)
	requested := db.Model(&domain.CollaborationRequest{}).
		Select("idea_id").
		Where("requester_id = ?", requesterID)

	var ideas []*domain.Idea
	err := withIdeaRelations(db).
		Where("id IN (?)", requested).
		Order("date DESC").
		Order("id ASC").
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}
	return ideas, nil
}
