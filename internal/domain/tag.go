package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Domain, Technology and Topic are shared categorical tags. Many ideas may
// reference the same tag; ideas never own them.

type Domain struct {
	ID   string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

type Technology struct {
	ID   string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (t *Technology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type Topic struct {
	ID   string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// URL is a stored link, used as an idea icon or supporting image
type URL struct {
	ID  string `json:"id" gorm:"type:varchar(36);primaryKey"`
	URL string `json:"url" gorm:"not null"`
}

func (u *URL) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TagKind names one of the three tag tables
type TagKind string

const (
	TagKindDomain     TagKind = "Domain"
	TagKindTechnology TagKind = "Technology"
	TagKindTopic      TagKind = "Topic"
)
