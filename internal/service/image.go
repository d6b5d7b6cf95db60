package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pawhub/pawhub/internal/storage"
)

// ImageUpload is a decoded image payload handed in by a handler.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// attachImage uploads best-effort: the caller's primary operation has
// already been persisted, so a storage failure is logged and swallowed
// and the caller proceeds without an image URL. The upload gets its
// own bounded timeout so a hung storage endpoint degrades to "no
// image" instead of stalling the request.
func attachImage(ctx context.Context, images storage.ImageStore, timeout time.Duration, prefix string, img *ImageUpload) *string {
	if img == nil || images == nil || len(img.Data) == 0 {
		return nil
	}

	uctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	key := storage.ObjectKey(prefix)
	url, err := images.Upload(uctx, key, img.ContentType, img.Data)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("image upload failed, continuing without image")
		return nil
	}
	return &url
}

// uploadImage is the non-optional variant for endpoints whose whole
// point is the upload. Failures surface to the caller.
func uploadImage(ctx context.Context, images storage.ImageStore, timeout time.Duration, prefix string, img *ImageUpload) (string, error) {
	uctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return images.Upload(uctx, storage.ObjectKey(prefix), img.ContentType, img.Data)
}
