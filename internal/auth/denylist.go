package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs in redis. Entries carry a TTL
// aligned with the token's own expiry, so the list cleans itself up
// and never grows past the set of still-live revoked tokens.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

func (d *Denylist) Revoke(ctx context.Context, tokenID uuid.UUID, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Already expired, nothing to deny.
		return nil
	}
	return d.client.Set(ctx, denyKey(tokenID), "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := d.client.Exists(ctx, denyKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func denyKey(id uuid.UUID) string {
	return "revoked:" + id.String()
}
