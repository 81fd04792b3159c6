package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported image content type")
	ErrUploadsDisabled        = errors.New("file uploads are not configured")
)

// imageExtensions lists the logo formats that are accepted, by content type.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// LogoObjectKey builds a fresh object key such as "logos/teams/<id>/<uuid>.png".
// Every upload gets a new key so cached public URLs never serve a replaced image.
func LogoObjectKey(scope, ownerID, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[ct]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return fmt.Sprintf("logos/%s/%s/%s%s", scope, ownerID, uuid.NewString(), ext), nil
}
