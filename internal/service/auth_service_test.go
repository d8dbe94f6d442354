package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.services.Auth.Register(ctx, service.RegisterInput{
		Email:     "ada@test.dev",
		Password:  "password123",
		FirstName: " Ada ",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "Ada", result.User.FirstName)
	assert.NotEqual(t, "password123", result.User.PasswordHash)
	assert.Equal(t, []domain.Authority{domain.AuthorityUser}, result.User.AuthorityList())
	require.NotNil(t, result.RegularUser)
	assert.Equal(t, result.User.ID, result.RegularUser.AppUserID)
	assert.NotEmpty(t, result.AccessToken)

	profile, err := env.repos.RegularUser.GetByEmail(ctx, "ADA@test.dev")
	require.NoError(t, err)
	assert.Equal(t, result.RegularUser.ID, profile.ID)
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	existing, _ := testutil.NewUserBuilder().WithEmail("taken@test.dev").Build(t, env.db)

	tests := []struct {
		name    string
		input   service.RegisterInput
		message string
	}{
		{
			name:    "missing email",
			input:   service.RegisterInput{Password: "password123"},
			message: domain.MsgEmptyEmailShort,
		},
		{
			name:    "missing password",
			input:   service.RegisterInput{Email: "new@test.dev"},
			message: domain.MsgEmptyPassword,
		},
		{
			name:    "email taken",
			input:   service.RegisterInput{Email: existing.AppUser.Email, Password: "password123"},
			message: domain.MsgEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.services.Auth.Register(ctx, tt.input)
			testutil.AssertDomainError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, password := testutil.NewUserBuilder().
		WithAuthorities(domain.AuthorityUser, domain.AuthorityModerator).
		Build(t, env.db)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := env.services.Auth.Login(ctx, service.LoginInput{Email: user.AppUser.Email, Password: password})
		require.NoError(t, err)
		assert.Equal(t, user.AppUserID, result.User.ID)
		require.NotNil(t, result.RegularUser)
		assert.Equal(t, user.ID, result.RegularUser.ID)

		caller, err := env.services.Auth.CallerFromToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.AppUserID, caller.AppUserID)
		assert.Equal(t, user.AppUser.Email, caller.Email)
		assert.ElementsMatch(t, []domain.Authority{domain.AuthorityUser, domain.AuthorityModerator}, caller.Authorities)
		assert.True(t, caller.IsElevated())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.services.Auth.Login(ctx, service.LoginInput{Email: user.AppUser.Email, Password: "wrong"})
		testutil.AssertDomainError(t, err, http.StatusUnauthorized, domain.MsgInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.services.Auth.Login(ctx, service.LoginInput{Email: "nobody@test.dev", Password: password})
		testutil.AssertDomainError(t, err, http.StatusUnauthorized, domain.MsgInvalidCredentials)
	})
}

func TestAuthService_CallerFromToken_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Auth.CallerFromToken("not-a-jwt")
	assert.Error(t, err)

	cfg := testutil.TestConfig()
	cfg.JWTSecret = "another-secret"
	other := service.NewAuthService(env.repos.AppUser, env.repos.RegularUser, cfg)
	user, password := testutil.NewUserBuilder().Build(t, env.db)
	result, err := other.Login(context.Background(), service.LoginInput{Email: user.AppUser.Email, Password: password})
	require.NoError(t, err)

	_, err = env.services.Auth.CallerFromToken(result.AccessToken)
	assert.Error(t, err, "token signed with another secret is rejected")
}

func TestAuthService_SetAuthorities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := testutil.NewUserBuilder().Build(t, env.db)

	updated, err := env.services.Auth.SetAuthorities(ctx, user.AppUser.Email, domain.AuthorityOwner, domain.AuthorityOwner)
	require.NoError(t, err)
	assert.Equal(t, []domain.Authority{domain.AuthorityOwner}, updated.AuthorityList())

	stored, err := env.repos.AppUser.GetByID(ctx, user.AppUserID)
	require.NoError(t, err)
	assert.True(t, stored.HasAuthority(domain.AuthorityOwner))
	assert.False(t, stored.HasAuthority(domain.AuthorityUser))

	_, err = env.services.Auth.SetAuthorities(ctx, "ghost@test.dev", domain.AuthorityUser)
	testutil.AssertDomainError(t, err, http.StatusBadRequest, domain.MsgAccountNotFound)
}
