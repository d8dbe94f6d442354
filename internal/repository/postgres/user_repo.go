package postgres

import (
	"context"
	"strings"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"gorm.io/gorm"
)

type appUserRepository struct {
	db *gorm.DB
}

func NewAppUserRepository(db *gorm.DB) *appUserRepository {
	return &appUserRepository{db: db}
}

func (r *appUserRepository) Create(ctx context.Context, user *domain.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *appUserRepository) GetByID(ctx context.Context, id string) (*domain.AppUser, error) {
	var user domain.AppUser
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	var user domain.AppUser
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appUserRepository) Update(ctx context.Context, user *domain.AppUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

type regularUserRepository struct {
	db *gorm.DB
}

func NewRegularUserRepository(db *gorm.DB) *regularUserRepository {
	return &regularUserRepository{db: db}
}

func (r *regularUserRepository) Create(ctx context.Context, user *domain.RegularUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *regularUserRepository) GetByID(ctx context.Context, id string) (*domain.RegularUser, error) {
	var user domain.RegularUser
	err := r.db.WithContext(ctx).
		Preload("AppUser").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *regularUserRepository) GetByAppUserID(ctx context.Context, appUserID string) (*domain.RegularUser, error) {
	var user domain.RegularUser
	err := r.db.WithContext(ctx).
		Preload("AppUser").
		Where("app_user_id = ?", appUserID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *regularUserRepository) GetByEmail(ctx context.Context, email string) (*domain.RegularUser, error) {
	var user domain.RegularUser
	err := r.db.WithContext(ctx).
		Preload("AppUser").
		Joins("JOIN app_users ON app_users.id = regular_users.app_user_id").
		Where("LOWER(app_users.email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
