package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	uploaded map[string][]byte
	err      error
}

func (s *fakeImageStore) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[filename] = data
	return "https://cdn.test.dev/ideas/" + filename, nil
}

func TestURLService_CreateURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		raw     string
		want    string
		message string
	}{
		{name: "https link", raw: "https://example.com/logo.png", want: "https://example.com/logo.png"},
		{name: "surrounding space", raw: "  http://example.com/a  ", want: "http://example.com/a"},
		{name: "empty", raw: "", message: domain.MsgFieldsEmpty},
		{name: "relative path", raw: "/images/logo.png", message: domain.MsgInvalidURL},
		{name: "other scheme", raw: "ftp://example.com/logo.png", message: domain.MsgInvalidURL},
		{name: "not a url", raw: "logo", message: domain.MsgInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := env.services.URL.CreateURL(ctx, tt.raw)
			if tt.message != "" {
				testutil.AssertDomainError(t, err, http.StatusBadRequest, tt.message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.URL)

			stored, err := env.services.URL.GetURL(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.URL)
		})
	}
}

func TestURLService_GetURL_Unknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.URL.GetURL(context.Background(), "missing")
	testutil.AssertDomainError(t, err, http.StatusBadRequest, "URL with UUID missing does not exist.")
}

func TestURLService_UploadImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := &fakeImageStore{}
	urls := service.NewURLService(env.repos.URL, store)

	u, err := urls.UploadImage(ctx, "logo.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test.dev/ideas/logo.png", u.URL)
	assert.Equal(t, []byte("png-bytes"), store.uploaded["logo.png"])

	stored, err := env.repos.URL.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.URL, stored.URL)

	_, err = urls.UploadImage(ctx, "notes.txt", strings.NewReader("text"), 4, "text/plain")
	testutil.AssertDomainError(t, err, http.StatusBadRequest, domain.MsgImagesOnly)

	store.err = errors.New("bucket unavailable")
	_, err = urls.UploadImage(ctx, "logo.png", strings.NewReader("png-bytes"), 9, "image/png")
	assert.ErrorContains(t, err, "bucket unavailable")
}

func TestURLService_UploadImage_Disabled(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.URL.UploadImage(context.Background(), "logo.png", strings.NewReader("x"), 1, "image/png")
	testutil.AssertDomainError(t, err, http.StatusInternalServerError, domain.MsgUploadsDisabled)
}
