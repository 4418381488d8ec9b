package catalog

import (
	"context"
	"io"
)

// ImageStorage stores listing images.
// It is implemented by the infrastructure layer (local disk, S3).
type ImageStorage interface {
	// Save stores the image under a new random name with the given extension
	// and returns the reference to keep on the listing
	Save(ctx context.Context, ext string, r io.Reader, size int64) (string, error)

	// Delete removes a stored image. Deleting a missing image is not an error.
	Delete(ctx context.Context, ref string) error

	// URL returns the public address of an image reference
	URL(ref string) string
}
