package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollaborationStatus string

const (
	CollaborationApproved CollaborationStatus = "Approved"
	CollaborationDeclined CollaborationStatus = "Declined"
)

// IsValid checks if a status is a known answer
func (s CollaborationStatus) IsValid() bool {
	return s == CollaborationApproved || s == CollaborationDeclined
}

// CollaborationRequest is a user's proposal to work on someone else's idea
type CollaborationRequest struct {
	ID                string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	IdeaID            string    `json:"ideaId" gorm:"type:varchar(36);not null;index"`
	RequesterID       string    `json:"requesterId" gorm:"type:varchar(36);not null;index"`
	Message           string    `json:"message"`
	AdditionalContact string    `json:"additionalContact"`
	ResponseID        *string   `json:"responseId" gorm:"type:varchar(36)"`
	CreatedAt         time.Time `json:"createdAt" gorm:"index"`

	Idea      *Idea                  `json:"-" gorm:"foreignKey:IdeaID"`
	Requester *RegularUser           `json:"-" gorm:"foreignKey:RequesterID"`
	Response  *CollaborationResponse `json:"response,omitempty" gorm:"foreignKey:ResponseID"`
}

func (r *CollaborationRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// CollaborationResponse is the idea owner's answer to a request
type CollaborationResponse struct {
	ID             string              `json:"id" gorm:"type:varchar(36);primaryKey"`
	Status         CollaborationStatus `json:"status" gorm:"type:varchar(20);not null"`
	Message        string              `json:"message"`
	ConfirmationID *string             `json:"confirmationId" gorm:"type:varchar(36)"`
	CreatedAt      time.Time           `json:"createdAt"`

	Confirmation *CollaborationConfirmation `json:"confirmation,omitempty" gorm:"foreignKey:ConfirmationID"`
}

func (r *CollaborationResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// CollaborationConfirmation carries the contact details shared on approval
type CollaborationConfirmation struct {
	ID                string `json:"id" gorm:"type:varchar(36);primaryKey"`
	AdditionalContact string `json:"additionalContact"`
	Message           string `json:"message"`
}

func (c *CollaborationConfirmation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
