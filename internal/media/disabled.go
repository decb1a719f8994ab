package media

import (
	"context"
	"errors"

	"motoshop-be/internal/taxonomy"
)

// ErrUploadsDisabled is returned when no asset storage is configured.
var ErrUploadsDisabled = errors.New("icon uploads are not configured")

type disabled struct{}

// Disabled is the uploader used when Cloudinary credentials are absent.
// Categories can still be created, they just cannot be published.
func Disabled() taxonomy.IconUploader {
	return disabled{}
}

// UploadIcon refuses every asset. The error is also a ValidationError on the
// icon field so editors report it next to the upload.
func (disabled) UploadIcon(context.Context, *taxonomy.IconAsset) (*taxonomy.IconRef, error) {
	return nil, errors.Join(ErrUploadsDisabled, &taxonomy.ValidationError{Field: "icon", Message: "uploads are not available"})
}

func (disabled) DestroyIcon(context.Context, string) error {
	return nil
}
