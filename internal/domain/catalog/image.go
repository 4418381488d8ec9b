package catalog

import (
	"path/filepath"
	"strings"

	"github.com/campusmarket/backend/internal/domain/shared"
)

// allowedImageExtensions maps accepted upload extensions to their stored form
var allowedImageExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
}

// ImageExtension returns the normalized extension of an uploaded image file name.
// Only JPEG and PNG images are accepted.
func ImageExtension(filename string) (string, error) {
	ext, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", shared.NewValidationError("Only jpg and png images are supported")
	}
	return ext, nil
}

// ImageContentType returns the MIME type for a normalized image extension
func ImageContentType(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}
