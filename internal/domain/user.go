package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AppUser struct {
	ID           string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	FirstName    string         `json:"firstname"`
	LastName     string         `json:"lastname"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Authorities  datatypes.JSON `json:"authorities"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// AuthorityList decodes the stored authorities, skipping unknown values
func (u *AppUser) AuthorityList() []Authority {
	var raw []string
	if len(u.Authorities) > 0 {
		_ = json.Unmarshal(u.Authorities, &raw)
	}
	authorities := make([]Authority, 0, len(raw))
	for _, s := range raw {
		if a, ok := ParseAuthority(s); ok {
			authorities = append(authorities, a)
		}
	}
	return authorities
}

// SetAuthorities replaces the stored authorities, dropping duplicates
func (u *AppUser) SetAuthorities(authorities ...Authority) {
	seen := make(map[Authority]bool, len(authorities))
	list := make([]Authority, 0, len(authorities))
	for _, a := range authorities {
		if !a.IsValid() || seen[a] {
			continue
		}
		seen[a] = true
		list = append(list, a)
	}
	data, _ := json.Marshal(list)
	u.Authorities = datatypes.JSON(data)
}

// HasAuthority checks whether the account holds a
func (u *AppUser) HasAuthority(a Authority) bool {
	for _, held := range u.AuthorityList() {
		if held == a {
			return true
		}
	}
	return false
}

// RegularUser is the profile of an account that can own ideas and react
type RegularUser struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	AppUserID       string    `json:"appUserId" gorm:"type:varchar(36);uniqueIndex;not null"`
	VerifiedCompany bool      `json:"verifiedCompany" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`

	AppUser *AppUser `json:"appUser,omitempty" gorm:"foreignKey:AppUserID"`
}

func (u *RegularUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Email returns the login email of the wrapped account, or "" if not loaded
func (u *RegularUser) Email() string {
	if u == nil || u.AppUser == nil {
		return ""
	}
	return u.AppUser.Email
}
