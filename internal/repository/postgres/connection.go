package postgres

import (
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table. It works on any gorm dialect.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.AppUser{},
		&domain.RegularUser{},
		&domain.Domain{},
		&domain.Technology{},
		&domain.Topic{},
		&domain.URL{},
		&domain.Idea{},
		&domain.IdeaImage{},
		&domain.Reaction{},
		&domain.CollaborationConfirmation{},
		&domain.CollaborationResponse{},
		&domain.CollaborationRequest{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		AppUser:       NewAppUserRepository(db),
		RegularUser:   NewRegularUserRepository(db),
		Idea:          NewIdeaRepository(db),
		Domain:        NewTagRepository[domain.Domain](db),
		Technology:    NewTagRepository[domain.Technology](db),
		Topic:         NewTagRepository[domain.Topic](db),
		URL:           NewURLRepository(db),
		Reaction:      NewReactionRepository(db),
		Collaboration: NewCollaborationRepository(db),
	}
}
