// Package storage selects the object store contract files live in.
package storage

import (
	"context"

	"github.com/rotisserie/eris"

	"matterdesk/internal/config"
	"matterdesk/internal/port"
	"matterdesk/internal/storage/local"
	s3storage "matterdesk/internal/storage/s3"
)

// New returns the configured ObjectStorage and the bucket to use with it.
func New(ctx context.Context, cfg *config.Config) (port.ObjectStorage, string, error) {
	switch cfg.Storage.Provider {
	case "local", "":
		s, err := local.NewStorage(cfg.Storage.LocalDir)
		if err != nil {
			return nil, "", eris.Wrap(err, "storage: local")
		}
		return s, "", nil
	case "s3":
		s, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return nil, "", eris.Wrap(err, "storage: s3")
		}
		return s, cfg.S3.Bucket, nil
	default:
		return nil, "", eris.Errorf("storage: unknown provider %q", cfg.Storage.Provider)
	}
}
