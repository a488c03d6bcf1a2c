package memory

import (
	"context"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// TokenDenylist keeps revoked token ids in process memory. Used when no redis is configured;
// revocations are lost on restart and not shared between instances.
type TokenDenylist struct {
	cache *cache.Cache
}

func NewTokenDenylist() contract.TokenDenylist {
	// Entries carry their own TTL; expired ones are purged every 10 minutes.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &TokenDenylist{
		cache: c,
	}
}

func (r *TokenDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (r *TokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := r.cache.Get(jti)
	return found, nil
}
