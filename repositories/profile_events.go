package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/sirupsen/logrus"
)

// ProfileEvents fans profile snapshots out over a per-user Redis
// channel. The profile watch endpoint subscribes; every successful
// profile or points write publishes.
type ProfileEvents struct{}

func NewProfileEvents() *ProfileEvents {
	return &ProfileEvents{}
}

func profileChannel(userID int) string {
	return fmt.Sprintf("profile:updates:%d", userID)
}

// Publish is best effort: a dropped notification only delays the next
// snapshot, it never fails the write that triggered it.
func (e *ProfileEvents) Publish(ctx context.Context, profile *models.Profile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		logrus.WithError(err).Warn("encode profile event")
		return
	}

	if err := config.RedisClient.Publish(ctx, profileChannel(profile.ID), payload).Err(); err != nil {
		logrus.WithError(err).WithField("user_id", profile.ID).Warn("publish profile event")
	}
}

// Subscribe delivers profile snapshots until ctx is cancelled. The
// returned channel closes when the subscription is torn down.
func (e *ProfileEvents) Subscribe(ctx context.Context, userID int) <-chan models.Profile {
	sub := config.RedisClient.Subscribe(ctx, profileChannel(userID))
	out := make(chan models.Profile)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var profile models.Profile
				if err := json.Unmarshal([]byte(msg.Payload), &profile); err != nil {
					logrus.WithError(err).Warn("decode profile event")
					continue
				}
				select {
				case out <- profile:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
