package domain

import "strings"

// Caller is the authenticated identity a request runs as. It is passed
// explicitly to every service call that depends on who is asking.
type Caller struct {
	AppUserID   string
	Email       string
	Authorities []Authority
}

// HasAny reports whether the caller holds at least one of the authorities
func (c Caller) HasAny(authorities ...Authority) bool {
	for _, held := range c.Authorities {
		for _, want := range authorities {
			if held == want {
				return true
			}
		}
	}
	return false
}

// IsElevated reports whether the caller is a Moderator or an Owner
func (c Caller) IsElevated() bool {
	return c.HasAny(AuthorityModerator, AuthorityOwner)
}

// CanManage decides whether the caller may modify or delete an idea:
// its owner, a Moderator or an Owner.
func (c Caller) CanManage(idea *Idea) bool {
	if idea == nil {
		return false
	}
	if c.IsElevated() {
		return true
	}
	ownerEmail := idea.Owner.Email()
	return ownerEmail != "" && strings.EqualFold(ownerEmail, c.Email)
}
