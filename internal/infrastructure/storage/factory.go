package storage

import (
	"context"
	"fmt"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns S3 storage when enabled, otherwise in-memory storage serving
// URLs under baseURL
func New(ctx context.Context, cfg config.StorageConfig, baseURL string, logger *zap.Logger) (catalogapp.CoverStorage, error) {
	if !cfg.Enabled {
		logger.Info("Object storage disabled, keeping covers in memory")
		return NewMemoryStorage(baseURL + "/storage"), nil
	}

	s, err := NewS3Storage(&cfg, WithLogger(logger.Named("storage")))
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("storage bucket %s: %w", s.Bucket(), err)
	}
	logger.Info("Object storage ready", zap.String("bucket", s.Bucket()))
	return s, nil
}
