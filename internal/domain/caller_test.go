package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaller_CanManage(t *testing.T) {
	idea := &Idea{Owner: &RegularUser{AppUser: &AppUser{Email: "Owner@Test.dev"}}}

	tests := []struct {
		name   string
		caller Caller
		idea   *Idea
		want   bool
	}{
		{name: "owner", caller: Caller{Email: "owner@test.dev", Authorities: []Authority{AuthorityUser}}, idea: idea, want: true},
		{name: "stranger", caller: Caller{Email: "other@test.dev", Authorities: []Authority{AuthorityUser}}, idea: idea, want: false},
		{name: "moderator", caller: Caller{Email: "mod@test.dev", Authorities: []Authority{AuthorityModerator}}, idea: idea, want: true},
		{name: "site owner", caller: Caller{Email: "boss@test.dev", Authorities: []Authority{AuthorityOwner}}, idea: idea, want: true},
		{name: "nil idea", caller: Caller{Authorities: []Authority{AuthorityOwner}}, idea: nil, want: false},
		{name: "owner not loaded", caller: Caller{Email: ""}, idea: &Idea{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caller.CanManage(tt.idea))
		})
	}
}

func TestCaller_HasAny(t *testing.T) {
	caller := Caller{Authorities: []Authority{AuthorityUser}}
	assert.True(t, caller.HasAny(AuthorityModerator, AuthorityUser))
	assert.False(t, caller.HasAny(AuthorityModerator, AuthorityOwner))
	assert.False(t, caller.IsElevated())
	assert.False(t, Caller{}.HasAny(AuthorityUser))
}
