package postgres

import (
	"context"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
)

type urlRepository struct {
	db *gorm.DB
}

func NewURLRepository(db *gorm.DB) *urlRepository {
	return &urlRepository{db: db}
}

func (r *urlRepository) Create(ctx context.Context, url *domain.URL) error {
	return r.db.WithContext(ctx).Create(url).Error
}

func (r *urlRepository) GetByID(ctx context.Context, id string) (*domain.URL, error) {
	var url domain.URL
	err := r.db.WithContext(ctx).First(&url, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (r *urlRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.URL, error) {
	var urls []*domain.URL
	if len(ids) == 0 {
		return urls, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&urls).Error
	if err != nil {
		return nil, err
	}
	return urls, nil
}
