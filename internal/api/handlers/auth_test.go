package handlers_test

import (
	"net/http"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/api/handlers"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.Do(t, http.MethodPost, ts.APIURL("/register"), map[string]string{
		"email":     "new@test.dev",
		"password":  "secret123",
		"firstname": "New",
		"lastname":  "Person",
	}, "")

	var body handlers.AuthResponse
	testutil.AssertJSONResponse(t, resp, &body)
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "new@test.dev", body.User.Email)
	assert.Equal(t, []string{"User"}, body.User.Authorities)

	// the token works against a protected route
	me := testutil.Do(t, http.MethodGet, ts.APIURL("/me"), nil, body.AccessToken)
	var user handlers.UserResponse
	testutil.AssertJSONResponse(t, me, &user)
	assert.Equal(t, body.User.ID, user.ID)
	assert.Equal(t, "New", user.FirstName)
}

func TestAuthHandler_RegisterErrors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.NewUserBuilder().WithEmail("taken@test.dev").Build(t, ts.DB)

	tests := []struct {
		name    string
		body    interface{}
		wantMsg string
	}{
		{name: "empty email", body: map[string]string{"password": "x"}, wantMsg: domain.MsgEmptyEmailShort},
		{name: "empty password", body: map[string]string{"email": "a@test.dev"}, wantMsg: domain.MsgEmptyPassword},
		{name: "email taken", body: map[string]string{"email": "TAKEN@test.dev", "password": "x"}, wantMsg: domain.MsgEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(t, http.MethodPost, ts.APIURL("/register"), tt.body, "")
			testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, tt.wantMsg)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.APIURL("/register"), "not an object", "")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request body")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)
	profile, password := testutil.NewUserBuilder().
		WithEmail("login@test.dev").
		WithAuthorities(domain.AuthorityModerator).
		Build(t, ts.DB)

	t.Run("json body", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.APIURL("/login"), map[string]string{
			"email":    "login@test.dev",
			"password": password,
		}, "")
		var body handlers.AuthResponse
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, profile.AppUserID, body.User.ID)
		assert.Equal(t, []string{"Moderator"}, body.User.Authorities)
	})

	t.Run("basic auth", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/login"), nil)
		require.NoError(t, err)
		req.SetBasicAuth("login@test.dev", password)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body handlers.AuthResponse
		testutil.AssertJSONResponse(t, resp, &body)
		assert.NotEmpty(t, body.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.APIURL("/login"), map[string]string{
			"email":    "login@test.dev",
			"password": "nope",
		}, "")
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, domain.MsgInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := testutil.Do(t, http.MethodPost, ts.APIURL("/login"), map[string]string{"email": "login@test.dev"}, "")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Email and password are required")
	})
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.Do(t, http.MethodGet, ts.APIURL("/me"), nil, "")
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Authorization header required")

	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/idea/user"), nil, "bogus")
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Invalid token")
}
