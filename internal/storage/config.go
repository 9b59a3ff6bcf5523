package storage

import (
	"context"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/pkg/logger"
)

// FromConfig selects MinIO when an endpoint is configured and the local
// upload directory otherwise.
func FromConfig(ctx context.Context, cfg *config.Config) (Storage, error) {
	if cfg.MinIO.Endpoint != "" {
		s, err := NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Infof("uploads stored in MinIO bucket %q at %s", cfg.MinIO.Bucket, cfg.MinIO.Endpoint)
		return s, nil
	}
	s, err := NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		return nil, err
	}
	logger.Infof("uploads stored on disk under %s", s.root)
	return s, nil
}
