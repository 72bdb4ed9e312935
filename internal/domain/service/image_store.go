package service

import (
	"context"
)

// ImageStore defines the interface for persisting profile images to
// the object store. Small images stay inline as data URIs; anything
// over the inline cap goes through here instead.
type ImageStore interface {
	// SaveProfileImage writes the raw image and returns its public URL.
	SaveProfileImage(ctx context.Context, userID string, contentType string, data []byte) (string, error)

	// DeleteProfileImage removes a previously stored image.
	DeleteProfileImage(ctx context.Context, userID string) error
}
