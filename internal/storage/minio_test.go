package storage

import (
	"strings"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("Photo.PNG")
	assert.True(t, strings.HasPrefix(name, "ideas/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("Photo.PNG"))

	assert.False(t, strings.Contains(ObjectName("noext"), "."))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{
			name: "falls back to endpoint",
			cfg:  config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "imgs"},
			want: "http://localhost:9000/imgs/ideas/a.png",
		},
		{
			name: "public endpoint with ssl",
			cfg:  config.MinIOConfig{Endpoint: "minio:9000", PublicEndpoint: "cdn.example.com", Bucket: "imgs", UseSSL: true},
			want: "https://cdn.example.com/imgs/ideas/a.png",
		},
		{
			name: "public endpoint with scheme",
			cfg:  config.MinIOConfig{Endpoint: "minio:9000", PublicEndpoint: "https://cdn.example.com/", Bucket: "imgs"},
			want: "https://cdn.example.com/imgs/ideas/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewMinIOClient(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.PublicURL("ideas/a.png"))
		})
	}
}
