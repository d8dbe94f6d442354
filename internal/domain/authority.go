package domain

import "strings"

// Authority is an access level granted to an account
type Authority string

const (
	AuthorityUser      Authority = "User"
	AuthorityModerator Authority = "Moderator"
	AuthorityOwner     Authority = "Owner"
)

// AllAuthorities contains every valid authority
var AllAuthorities = []Authority{AuthorityUser, AuthorityModerator, AuthorityOwner}

// IsValid checks if an authority is one of the known values
func (a Authority) IsValid() bool {
	switch a {
	case AuthorityUser, AuthorityModerator, AuthorityOwner:
		return true
	}
	return false
}

// IsElevated reports whether the authority may manage content it does not own
func (a Authority) IsElevated() bool {
	return a == AuthorityModerator || a == AuthorityOwner
}

func (a Authority) String() string {
	return string(a)
}

// ParseAuthority matches s against the known authorities, ignoring case
func ParseAuthority(s string) (Authority, bool) {
	for _, a := range AllAuthorities {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, true
		}
	}
	return "", false
}
