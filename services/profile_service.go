package services

import (
	"context"

	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
)

var ErrAmountTooSmall = errors.New("purchase amount below minimum")

type ProfileStore interface {
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest, photoURL, photoPublicID string) (*models.Profile, error)
	AddPoints(ctx context.Context, userID int, points int64) (int64, error)
	RedeemPoints(ctx context.Context, userID int, amount int64) (int64, error)
}

type ProfileSubscriber interface {
	ProfilePublisher
	Subscribe(ctx context.Context, userID int) <-chan models.Profile
}

// ProfileService mirrors the profile screen: read, merged save, points
// purchase/redeem and the live watch stream.
type ProfileService struct {
	users        ProfileStore
	events       ProfileSubscriber
	earnRate     int64
	redeemAmount int64
}

func NewProfileService(users ProfileStore, events ProfileSubscriber, earnRate, redeemAmount int64) *ProfileService {
	return &ProfileService{
		users:        users,
		events:       events,
		earnRate:     earnRate,
		redeemAmount: redeemAmount,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID int) (*models.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

// Update writes the merged field set and notifies watchers. Photo
// upload happens before this call; only the resulting URL lands here.
func (s *ProfileService) Update(ctx context.Context, userID int, req models.UpdateProfileRequest, photoURL, photoPublicID string) (*models.Profile, error) {
	profile, err := s.users.UpdateProfile(ctx, userID, req, photoURL, photoPublicID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(ctx, profile)
	}
	return profile, nil
}

// PurchasePoints converts a purchase amount into points at
// floor(amount / earnRate). Amounts below one rate unit are rejected
// outright instead of silently earning zero.
func (s *ProfileService) PurchasePoints(ctx context.Context, userID int, amount int64) (earned, balance int64, err error) {
	if amount < s.earnRate {
		return 0, 0, ErrAmountTooSmall
	}

	earned = amount / s.earnRate
	balance, err = s.users.AddPoints(ctx, userID, earned)
	if err != nil {
		return 0, 0, err
	}

	s.publishSnapshot(ctx, userID)
	return earned, balance, nil
}

// RedeemPoints spends a fixed block of points. Balances below the
// block size are rejected with no mutation.
func (s *ProfileService) RedeemPoints(ctx context.Context, userID int) (int64, error) {
	balance, err := s.users.RedeemPoints(ctx, userID, s.redeemAmount)
	if err != nil {
		return 0, err
	}

	s.publishSnapshot(ctx, userID)
	return balance, nil
}

func (s *ProfileService) RedeemAmount() int64 {
	return s.redeemAmount
}

// Watch streams profile snapshots until ctx is cancelled.
func (s *ProfileService) Watch(ctx context.Context, userID int) <-chan models.Profile {
	return s.events.Subscribe(ctx, userID)
}

func (s *ProfileService) publishSnapshot(ctx context.Context, userID int) {
	if s.events == nil {
		return
	}
	if profile, err := s.users.GetProfile(ctx, userID); err == nil {
		s.events.Publish(ctx, profile)
	}
}
