package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/pkg/errors"
)

// TokenRepository is the logout denylist. A signed-out token's jti is
// parked in Redis until the token would have expired anyway.
type TokenRepository struct{}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{}
}

func tokenKey(jti string) string {
	return fmt.Sprintf("auth:denylist:%s", jti)
}

func (r *TokenRepository) Denylist(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	err := config.RedisClient.Set(ctx, tokenKey(jti), "1", ttl).Err()
	return errors.Wrap(err, "denylist token")
}

func (r *TokenRepository) IsDenylisted(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}

	n, err := config.RedisClient.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		// Redis errors do not block authentication.
		return false
	}
	return n > 0
}
