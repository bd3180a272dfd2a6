package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewS3Storage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3Storage(nil)
		assert.ErrorContains(t, err, "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3Storage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewS3Storage(&config.StorageConfig{Bucket: "covers", AccessKey: "k"})
		assert.ErrorContains(t, err, "secret key are required")
	})

	t.Run("defaults", func(t *testing.T) {
		s, err := NewS3Storage(&config.StorageConfig{
			Bucket:       "covers",
			AccessKey:    "k",
			SecretKey:    "s",
			Endpoint:     "localhost:9000",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "covers", s.Bucket())
		assert.Equal(t, defaultPresignExpiration, s.presignExpiration)
	})

	t.Run("options", func(t *testing.T) {
		s, err := NewS3Storage(
			&config.StorageConfig{Bucket: "covers", AccessKey: "k", SecretKey: "s"},
			WithPresignExpiration(time.Hour),
			WithLogger(zap.NewNop()),
		)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"", false, defaultEndpoint},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.endpoint, tt.ssl)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3Storage_URL(t *testing.T) {
	s, err := NewS3Storage(&config.StorageConfig{
		Bucket:       "covers",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	u, err := s.URL(context.Background(), "products/1/cover.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/covers/products/1/cover.png?"), u)
	assert.Contains(t, u, "X-Amz-Signature=")

	_, err = s.URL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrEmptyKey)
	assert.ErrorIs(t, s.Upload(context.Background(), "", nil, ""), ErrEmptyKey)
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage("http://shop.test/storage/")

	data := []byte{0x89, 'P', 'N', 'G'}
	require.NoError(t, m.Upload(ctx, "products/1/cover.png", data, "image/png"))
	data[0] = 0

	got, contentType, ok := m.Get("products/1/cover.png")
	require.True(t, ok)
	assert.Equal(t, byte(0x89), got[0])
	assert.Equal(t, "image/png", contentType)

	u, err := m.URL(ctx, "products/1/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "http://shop.test/storage/products/1/cover.png", u)

	require.NoError(t, m.Delete(ctx, "products/1/cover.png"))
	_, _, ok = m.Get("products/1/cover.png")
	assert.False(t, ok)
}

func TestNew_Disabled(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{}, "http://shop.test", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)
}
