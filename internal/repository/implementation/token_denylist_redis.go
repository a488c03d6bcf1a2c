package implementation

import (
	"context"
	"errors"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "auth:revoked:"

type RedisTokenDenylist struct {
	rdb *redis.Client
}

func NewRedisTokenDenylist(rdb *redis.Client) contract.TokenDenylist {
	return &RedisTokenDenylist{rdb: rdb}
}

func (r *RedisTokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedTokenKeyPrefix+jti, 1, ttl).Err()
}

func (r *RedisTokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.rdb.Get(ctx, revokedTokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
