package postgres

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
)

type tagRepository[T domain.Domain | domain.Technology | domain.Topic] struct {
	db *gorm.DB
}

func NewTagRepository[T domain.Domain | domain.Technology | domain.Topic](db *gorm.DB) *tagRepository[T] {
	return &tagRepository[T]{db: db}
}

func (r *tagRepository[T]) Create(ctx context.Context, tag *T) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	var tags []*T
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository[T]) GetByIDs(ctx context.Context, ids []string) ([]*T, error) {
	var tags []*T
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	var tag T
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
