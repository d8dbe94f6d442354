package postgres

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
)

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *reactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(ctx context.Context, reaction *domain.Reaction) error {
	return r.db.WithContext(ctx).Omit("Idea", "RegularUser").Create(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Reaction{}, "id = ?", id).Error
}

func (r *reactionRepository) GetByIdeaAndUser(ctx context.Context, ideaID, regularUserID string) (*domain.Reaction, error) {
	var reaction domain.Reaction
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND regular_user_id = ?", ideaID, regularUserID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) CountByIdeaID(ctx context.Context, ideaID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Reaction{}).
		Where("idea_id = ?", ideaID).
		Count(&count).Error
	return count, err
}
