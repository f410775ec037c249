package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myblog/internal/config"
	"myblog/internal/models"
)

func newClientForTest(useSSL bool) *MinIOClient {
	return &MinIOClient{
		cfg: &config.Config{
			MinIO: config.MinIO{
				Endpoint:   "localhost:9000",
				BucketName: "blog-images",
				UseSSL:     useSSL,
			},
		},
	}
}

func TestMinIOClient_PublicURL(t *testing.T) {
	m := newClientForTest(false)
	assert.Equal(t,
		"http://localhost:9000/blog-images/posts/abc.png",
		m.PublicURL("posts/abc.png"))

	m = newClientForTest(true)
	assert.Equal(t,
		"https://localhost:9000/blog-images/posts/abc.png",
		m.PublicURL("posts/abc.png"))
}

func TestMinIOClient_ObjectNameFromURL(t *testing.T) {
	m := newClientForTest(false)

	tests := []struct {
		name        string
		rawURL      string
		want        string
		expectError bool
	}{
		{
			name:   "Ключ восстанавливается из публичного URL",
			rawURL: "http://localhost:9000/blog-images/posts/abc.png",
			want:   "posts/abc.png",
		},
		{
			name:   "Ключ с вложенным префиксом",
			rawURL: "http://localhost:9000/blog-images/comments/2024/c1.gif",
			want:   "comments/2024/c1.gif",
		},
		{
			name:        "URL чужого bucket отклоняется",
			rawURL:      "http://localhost:9000/other-bucket/posts/abc.png",
			expectError: true,
		},
		{
			name:        "URL без ключа отклоняется",
			rawURL:      "http://localhost:9000/blog-images/",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ObjectNameFromURL(tt.rawURL)

			if tt.expectError {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinIOClient_RoundTrip(t *testing.T) {
	m := newClientForTest(false)

	objectName := "posts/550e8400-e29b-41d4-a716-446655440000.jpg"
	got, err := m.ObjectNameFromURL(m.PublicURL(objectName))

	require.NoError(t, err)
	assert.Equal(t, objectName, got)
}
