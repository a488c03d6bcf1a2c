package contract

import (
	"context"
	"time"
)

// TokenDenylist remembers revoked session token ids (jti) until the token would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
