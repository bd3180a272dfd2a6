package catalog

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// MaxCoverSize is the largest accepted cover image
const MaxCoverSize = 5 << 20

// CoverStorage stores product cover images in object storage
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Cover content types. SVG is refused since it can carry scripts.
var allowedCoverTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var (
	// ErrCoverTooLarge is returned for images above MaxCoverSize
	ErrCoverTooLarge = shared.NewDomainError("COVER_TOO_LARGE", "Cover image cannot exceed 5MB")
	// ErrCoverType is returned for anything but jpeg, png, gif and webp
	ErrCoverType = shared.NewDomainError("INVALID_COVER_TYPE", "Cover must be a JPEG, PNG, GIF or WebP image")
	// ErrCoverStorageDisabled is returned when no storage is configured
	ErrCoverStorageDisabled = shared.NewDomainError("STORAGE_UNAVAILABLE", "Cover storage is not configured")
)

// UploadCover stores data as the product's cover and replaces the previous one.
// The content type is sniffed from the bytes, not taken from the client.
func (s *ProductService) UploadCover(ctx context.Context, id int64, filename string, data []byte) (*ProductResponse, error) {
	if s.covers == nil {
		return nil, ErrCoverStorageDisabled
	}
	if len(data) == 0 || len(data) > MaxCoverSize {
		return nil, ErrCoverTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := allowedCoverTypes[contentType]
	if !ok {
		return nil, ErrCoverType
	}

	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := coverKey(p.ID, p.Slug, filename, ext)
	if err := s.covers.Upload(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	previous := p.Cover
	p.SetCover(key)
	ok, err = s.repo.UpdateProduct(ctx, p)
	if err != nil || !ok {
		// Keep storage consistent with the row
		_ = s.covers.Delete(ctx, key)
		if err == nil {
			err = shared.ErrNotFound
		}
		return nil, err
	}

	log := logger.Enrich(ctx, s.logger)
	if previous != "" && previous != key {
		if err := s.covers.Delete(ctx, previous); err != nil {
			log.Warn("Failed to delete previous cover", zap.String("key", previous), zap.Error(err))
		}
	}
	log.Info("Product cover uploaded", zap.Int64("product_id", id), zap.String("key", key), zap.Int("size", len(data)))

	return s.toResponse(ctx, p), nil
}

func coverKey(productID int64, slug, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." || base == "/" {
		base = slug
	}
	return fmt.Sprintf("products/%d/%d-%s%s", productID, time.Now().UnixNano(), sanitizeKeyPart(base), ext)
}

func sanitizeKeyPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "cover"
	}
	return out
}
