// Package storage implements profile image persistence on a blob
// bucket via the portable gocloud driver layer.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers: GCS in production, the local filesystem in dev.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"parcel/config"
	"parcel/internal/domain/service"
)

// blobStore implements service.ImageStore on a gocloud bucket.
type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStore opens the configured bucket. The caller owns closing it
// through the returned close function.
func NewBlobStore(ctx context.Context, cfg *config.Config) (service.ImageStore, func() error, error) {
	if cfg.Storage == nil || cfg.Storage.BucketURL == "" {
		return nil, nil, errors.New("storage bucket configuration is required")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Storage.BucketURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open image bucket")
	}

	store := &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}

	return store, bucket.Close, nil
}

// SaveProfileImage writes the raw image and returns its public URL.
func (s *blobStore) SaveProfileImage(ctx context.Context, userID string, contentType string, data []byte) (string, error) {
	key := profileKey(userID, contentType)

	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "write profile image")
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}

// DeleteProfileImage removes a previously stored image. Deleting an
// image that was never uploaded is not an error.
func (s *blobStore) DeleteProfileImage(ctx context.Context, userID string) error {
	for _, ext := range []string{"jpg", "png", "webp"} {
		key := fmt.Sprintf("profiles/%s.%s", userID, ext)
		if err := s.bucket.Delete(ctx, key); err != nil {
			if gcerrors.Code(err) == gcerrors.NotFound {
				continue
			}

			return errors.Wrap(err, "delete profile image")
		}
	}

	return nil
}

// profileKey derives a stable object key per user so re-uploads
// replace the old image instead of leaking objects.
func profileKey(userID, contentType string) string {
	ext := "jpg"
	switch contentType {
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	}

	return fmt.Sprintf("profiles/%s.%s", userID, ext)
}
