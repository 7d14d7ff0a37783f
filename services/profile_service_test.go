package services

import (
	"context"
	"testing"

	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	profile models.Profile
}

func (f *fakeProfileStore) GetProfile(_ context.Context, _ int) (*models.Profile, error) {
	copied := f.profile
	return &copied, nil
}

func (f *fakeProfileStore) UpdateProfile(_ context.Context, _ int, req models.UpdateProfileRequest, photoURL, _ string) (*models.Profile, error) {
	if req.Version != 0 && req.Version != f.profile.Version {
		return nil, repositories.ErrVersionConflict
	}
	if req.FullName != "" {
		f.profile.FullName = req.FullName
	}
	if req.Phone != "" {
		f.profile.Phone = req.Phone
	}
	if req.Address != "" {
		f.profile.Address = req.Address
	}
	if photoURL != "" {
		f.profile.PhotoURL = photoURL
	}
	f.profile.Version++
	copied := f.profile
	return &copied, nil
}

func (f *fakeProfileStore) AddPoints(_ context.Context, _ int, points int64) (int64, error) {
	f.profile.Points += points
	return f.profile.Points, nil
}

func (f *fakeProfileStore) RedeemPoints(_ context.Context, _ int, amount int64) (int64, error) {
	if f.profile.Points < amount {
		return 0, repositories.ErrNotEnoughPoints
	}
	f.profile.Points -= amount
	return f.profile.Points, nil
}

type fakeSubscriber struct {
	fakePublisher
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ int) <-chan models.Profile {
	ch := make(chan models.Profile)
	close(ch)
	return ch
}

func newProfileFixture(points int64) (*ProfileService, *fakeProfileStore, *fakeSubscriber) {
	store := &fakeProfileStore{profile: models.Profile{
		ID:       1,
		Email:    "juan@example.com",
		FullName: "Juan Dela Cruz",
		Points:   points,
		Version:  1,
	}}
	events := &fakeSubscriber{}
	return NewProfileService(store, events, 5000, 5), store, events
}

func TestRedeemPointsSuccess(t *testing.T) {
	svc, store, events := newProfileFixture(12)

	balance, err := svc.RedeemPoints(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(7), balance)
	assert.Equal(t, int64(7), store.profile.Points)
	assert.NotEmpty(t, events.published)
}

func TestRedeemPointsRejectedBelowFloor(t *testing.T) {
	svc, store, events := newProfileFixture(3)

	_, err := svc.RedeemPoints(context.Background(), 1)
	assert.ErrorIs(t, err, repositories.ErrNotEnoughPoints)

	assert.Equal(t, int64(3), store.profile.Points)
	assert.Empty(t, events.published)
}

func TestRedeemPointsExactFloor(t *testing.T) {
	svc, store, _ := newProfileFixture(5)

	balance, err := svc.RedeemPoints(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, int64(0), store.profile.Points)
}

func TestPurchasePoints(t *testing.T) {
	svc, store, _ := newProfileFixture(1)

	earned, balance, err := svc.PurchasePoints(context.Background(), 1, 12500)
	require.NoError(t, err)

	assert.Equal(t, int64(2), earned)
	assert.Equal(t, int64(3), balance)
	assert.Equal(t, int64(3), store.profile.Points)
}

func TestPurchasePointsBelowThreshold(t *testing.T) {
	svc, store, _ := newProfileFixture(1)

	_, _, err := svc.PurchasePoints(context.Background(), 1, 4999)
	assert.ErrorIs(t, err, ErrAmountTooSmall)
	assert.Equal(t, int64(1), store.profile.Points)
}

func TestUpdateMergesFieldsAndPublishes(t *testing.T) {
	svc, store, events := newProfileFixture(0)

	profile, err := svc.Update(context.Background(), 1, models.UpdateProfileRequest{
		FullName: "Juana Dela Cruz",
		Version:  1,
	}, "https://img.example.com/u1.jpg", "profiles/user_1")
	require.NoError(t, err)

	assert.Equal(t, "Juana Dela Cruz", profile.FullName)
	assert.Equal(t, "juan@example.com", profile.Email)
	assert.Equal(t, "https://img.example.com/u1.jpg", profile.PhotoURL)
	assert.Equal(t, 2, profile.Version)
	assert.Len(t, events.published, 1)

	assert.Equal(t, "Juana Dela Cruz", store.profile.FullName)
}

func TestUpdateStaleVersionRejected(t *testing.T) {
	svc, store, events := newProfileFixture(0)
	store.profile.Version = 4

	_, err := svc.Update(context.Background(), 1, models.UpdateProfileRequest{
		FullName: "Stale Edit",
		Version:  2,
	}, "", "")
	assert.ErrorIs(t, err, repositories.ErrVersionConflict)

	assert.Equal(t, "Juan Dela Cruz", store.profile.FullName)
	assert.Empty(t, events.published)
}
