package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageStore is the object-storage collaborator. Implementations
// return a publicly resolvable URL for the stored object.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ObjectKey builds a date-partitioned key so buckets stay browsable:
// e.g. "pets/2026/09/01/<uuid>".
func ObjectKey(prefix string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}
