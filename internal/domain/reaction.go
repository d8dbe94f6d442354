package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionType string

const (
	ReactionHighFive ReactionType = "HighFive"
)

// IsValid checks if a reaction type is supported
func (t ReactionType) IsValid() bool {
	return t == ReactionHighFive
}

// Reaction is a user's marker on an idea. At most one exists per (user, idea).
type Reaction struct {
	ID            string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	Date          time.Time    `json:"date" gorm:"not null"`
	ReactionType  ReactionType `json:"reactionType" gorm:"type:varchar(20);not null"`
	IdeaID        string       `json:"ideaId" gorm:"type:varchar(36);not null;uniqueIndex:idx_reactions_idea_user"`
	RegularUserID string       `json:"regularUserId" gorm:"type:varchar(36);not null;uniqueIndex:idx_reactions_idea_user"`

	Idea        *Idea        `json:"-" gorm:"foreignKey:IdeaID"`
	RegularUser *RegularUser `json:"-" gorm:"foreignKey:RegularUserID"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
