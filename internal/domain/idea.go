package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Idea struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null"`
	Purpose     string    `json:"purpose" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	IsPaid      bool      `json:"isPaid" gorm:"not null;default:false"`
	InProgress  bool      `json:"inProgress" gorm:"not null;default:false"`
	IsPrivate   bool      `json:"isPrivate" gorm:"not null;default:false"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	IconURLID   string    `json:"iconUrlId" gorm:"type:varchar(36);not null"`
	OwnerID     string    `json:"ownerId" gorm:"type:varchar(36);not null;index"`

	// Relations
	Domains []*Domain     `json:"domains" gorm:"many2many:idea_domains"`
	Techs   []*Technology `json:"techs" gorm:"many2many:idea_techs"`
	Topics  []*Topic      `json:"topics" gorm:"many2many:idea_topics"`
	Images  []*IdeaImage  `json:"-" gorm:"foreignKey:IdeaID"`
	IconURL *URL          `json:"iconUrl,omitempty" gorm:"foreignKey:IconURLID"`
	Owner   *RegularUser  `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// SupportingImageURLs returns the image links in display order. Images must
// be loaded sorted by position.
func (i *Idea) SupportingImageURLs() []*URL {
	urls := make([]*URL, 0, len(i.Images))
	for _, img := range i.Images {
		if img.URL != nil {
			urls = append(urls, img.URL)
		}
	}
	return urls
}

// SetSupportingImageURLs replaces the ordered image list
func (i *Idea) SetSupportingImageURLs(urls []*URL) {
	images := make([]*IdeaImage, 0, len(urls))
	for pos, u := range urls {
		images = append(images, &IdeaImage{IdeaID: i.ID, Position: pos, URLID: u.ID, URL: u})
	}
	i.Images = images
}

func (i *Idea) DomainNames() []string {
	names := make([]string, len(i.Domains))
	for n, d := range i.Domains {
		names[n] = d.Name
	}
	return names
}

func (i *Idea) TechNames() []string {
	names := make([]string, len(i.Techs))
	for n, t := range i.Techs {
		names[n] = t.Name
	}
	return names
}

func (i *Idea) TopicNames() []string {
	names := make([]string, len(i.Topics))
	for n, t := range i.Topics {
		names[n] = t.Name
	}
	return names
}

// IdeaImage is a positioned link between an idea and a supporting image URL
type IdeaImage struct {
	IdeaID   string `gorm:"type:varchar(36);primaryKey"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	URLID    string `gorm:"type:varchar(36);not null"`

	URL *URL `gorm:"foreignKey:URLID"`
}

// IdeaFilter selects ideas by tag names. A nil list places no constraint on
// its dimension; a non-nil list requires at least one shared name.
type IdeaFilter struct {
	Domains []string
	Topics  []string
	Techs   []string
}

// Matches reports whether idea satisfies all three dimensions
func (f IdeaFilter) Matches(idea *Idea) bool {
	return intersects(f.Domains, idea.DomainNames()) &&
		intersects(f.Topics, idea.TopicNames()) &&
		intersects(f.Techs, idea.TechNames())
}

func intersects(wanted, have []string) bool {
	if wanted == nil {
		return true
	}
	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		set[w] = struct{}{}
	}
	for _, h := range have {
		if _, ok := set[h]; ok {
			return true
		}
	}
	return false
}
