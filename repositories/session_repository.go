package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("no active checkout session")

const sessionTTL = 2 * time.Hour

// SessionRepository keeps the per-user checkout wizard state in Redis.
// One session per user; it expires on its own if the checkout is
// abandoned.
type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("checkout:session:%d", userID)
}

func (r *SessionRepository) Get(ctx context.Context, userID int) (*models.CheckoutSession, error) {
	raw, err := config.RedisClient.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load checkout session")
	}

	session := &models.CheckoutSession{}
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		return nil, errors.Wrap(err, "decode checkout session")
	}

	return session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *models.CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "encode checkout session")
	}

	err = config.RedisClient.Set(ctx, sessionKey(session.UserID), payload, sessionTTL).Err()
	return errors.Wrap(err, "save checkout session")
}

func (r *SessionRepository) Delete(ctx context.Context, userID int) error {
	err := config.RedisClient.Del(ctx, sessionKey(userID)).Err()
	return errors.Wrap(err, "delete checkout session")
}
