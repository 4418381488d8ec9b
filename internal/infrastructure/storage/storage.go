// Package storage provides listing image storage on local disk or S3-compatible object stores.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	catalogapp "github.com/campusmarket/backend/internal/application/catalog"
	"github.com/campusmarket/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// nameTokenBytes is the number of random bytes in a stored image name
const nameTokenBytes = 8

// NewImageName returns a random hex file name carrying ext
func NewImageName(ext string) (string, error) {
	token := make([]byte, nameTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("failed to generate image name: %w", err)
	}
	return hex.EncodeToString(token) + ext, nil
}

// New builds the image storage selected by cfg.Driver.
// For S3 the bucket is created when it does not exist yet.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (catalogapp.ImageStorage, error) {
	switch cfg.Driver {
	case config.StorageS3:
		s3Storage, err := NewS3ImageStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3Storage, nil
	case config.StorageLocal, "":
		local, err := NewLocalImageStorage(cfg.LocalDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// joinURL joins a base URL and an image reference with exactly one slash
func joinURL(base, ref string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
