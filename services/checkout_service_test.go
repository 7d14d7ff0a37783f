package services

import (
	"context"
	"testing"

	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[int]*models.CheckoutSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[int]*models.CheckoutSession{}}
}

func (f *fakeSessionStore) Get(_ context.Context, userID int) (*models.CheckoutSession, error) {
	s, ok := f.sessions[userID]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) Save(_ context.Context, session *models.CheckoutSession) error {
	copied := *session
	f.sessions[session.UserID] = &copied
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, userID int) error {
	delete(f.sessions, userID)
	return nil
}

type fakeAddressReader struct {
	addresses map[string]*models.Address
}

func (f *fakeAddressReader) Get(_ context.Context, userID int, id string) (*models.Address, error) {
	a, ok := f.addresses[id]
	if !ok || a.UserID != userID {
		return nil, repositories.ErrAddressNotFound
	}
	return a, nil
}

type fakeCartReader struct {
	items []models.CartItem
}

func (f *fakeCartReader) List(_ context.Context, _ int) ([]models.CartItem, error) {
	return f.items, nil
}

type fakeOrderWriter struct {
	placed      []*models.Order
	points      []int64
	checkoutURL string
}

func (f *fakeOrderWriter) Place(_ context.Context, order *models.Order, pointsToAdd int64) error {
	order.ID = len(f.placed) + 1
	f.placed = append(f.placed, order)
	f.points = append(f.points, pointsToAdd)
	return nil
}

func (f *fakeOrderWriter) SetCheckoutURL(_ context.Context, _ int, url string) error {
	f.checkoutURL = url
	return nil
}

type fakeProfileReader struct {
	profile models.Profile
}

func (f *fakeProfileReader) GetProfile(_ context.Context, _ int) (*models.Profile, error) {
	copied := f.profile
	return &copied, nil
}

type fakePaymentLinker struct {
	enabled bool
	url     string
	amounts []decimal.Decimal
}

func (f *fakePaymentLinker) Enabled() bool { return f.enabled }

func (f *fakePaymentLinker) CreateLink(_ context.Context, total decimal.Decimal, _ string) (string, error) {
	f.amounts = append(f.amounts, total)
	return f.url, nil
}

type fakePublisher struct {
	published []models.Profile
}

func (f *fakePublisher) Publish(_ context.Context, profile *models.Profile) {
	f.published = append(f.published, *profile)
}

type checkoutFixture struct {
	svc      *CheckoutService
	sessions *fakeSessionStore
	cart     *fakeCartReader
	orders   *fakeOrderWriter
	payments *fakePaymentLinker
	events   *fakePublisher
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		sessions: newFakeSessionStore(),
		cart: &fakeCartReader{items: []models.CartItem{
			{ProductID: 1, Quantity: 2, Product: &models.Product{ID: 1, Name: "Rice Cooker", Description: "1.8L", Price: "Php100.00"}},
		}},
		orders:   &fakeOrderWriter{},
		payments: &fakePaymentLinker{enabled: true, url: "https://pay.example.com/link/abc"},
		events:   &fakePublisher{},
	}

	addresses := &fakeAddressReader{addresses: map[string]*models.Address{
		"addr-1": {ID: "addr-1", UserID: 1, Address: "123 Mabini St, Manila"},
	}}
	users := &fakeProfileReader{profile: models.Profile{ID: 1, Email: "juan@example.com", FullName: "Juan Dela Cruz", Points: 10}}

	f.svc = NewCheckoutService(f.sessions, addresses, f.cart, f.orders, users, f.payments, f.events, nil, 5000)
	return f
}

func (f *checkoutFixture) toReview(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.SelectAddress(ctx, 1, "addr-1")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, 1)
	require.NoError(t, err)
}

func TestPlaceBuildsOrderFromCart(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)

	resp, err := f.svc.Place(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, f.orders.placed, 1)
	order := f.orders.placed[0]
	assert.Equal(t, "200.00", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Juan Dela Cruz", order.CustomerName)
	assert.Equal(t, "123 Mabini St, Manila", order.DeliveryAddress)
	assert.Equal(t, models.DeliveryCashOnDelivery, order.DeliveryMethod)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Rice Cooker", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Php100.00", order.Items[0].Price)

	// Total below the earn rate, no points awarded.
	assert.Equal(t, int64(0), resp.PointsAdded)
	assert.Equal(t, []int64{0}, f.orders.points)

	// Session is gone after placement.
	_, err = f.svc.Review(context.Background(), 1)
	assert.ErrorIs(t, err, repositories.ErrSessionNotFound)
}

func TestPlaceAwardsPoints(t *testing.T) {
	f := newCheckoutFixture()
	f.cart.items = []models.CartItem{
		{ProductID: 2, Quantity: 1, Product: &models.Product{ID: 2, Name: "Fridge", Price: "Php12,500.00"}},
	}
	f.toReview(t)

	resp, err := f.svc.Place(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.PointsAdded)
	assert.Equal(t, []int64{2}, f.orders.points)
	// Watchers hear about the new balance.
	assert.NotEmpty(t, f.events.published)
}

func TestPlaceEwalletCreatesPaymentLink(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.SelectAddress(ctx, 1, "addr-1")
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.SelectDelivery(ctx, 1, models.DeliveryEwallet)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, 1)
	require.NoError(t, err)

	resp, err := f.svc.Place(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/link/abc", resp.CheckoutURL)
	require.Len(t, f.payments.amounts, 1)
	assert.Equal(t, "200", f.payments.amounts[0].String())
	assert.Equal(t, "https://pay.example.com/link/abc", f.orders.checkoutURL)
}

func TestPlaceCashOnDeliverySkipsPaymentLink(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)

	_, err := f.svc.Place(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, f.payments.amounts)
}

func TestPlaceRejectsEmptyCartBeforeAnyWrite(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)
	f.cart.items = nil

	_, err := f.svc.Place(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Empty(t, f.orders.placed)
}

func TestPlaceRejectsMissingName(t *testing.T) {
	f := newCheckoutFixture()
	users := &fakeProfileReader{profile: models.Profile{ID: 1, Email: "juan@example.com"}}
	f.svc.users = users
	f.toReview(t)

	_, err := f.svc.Place(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNameMissing)
	assert.Empty(t, f.orders.placed)
}

func TestPlaceRequiresReviewStep(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = f.svc.Place(ctx, 1)
	assert.ErrorIs(t, err, ErrNotInReview)
	assert.Empty(t, f.orders.placed)
}

func TestPlaceRejectsClearedAddress(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)

	// The selected address is deleted mid-checkout.
	require.NoError(t, f.svc.HandleAddressDeleted(context.Background(), 1, "addr-1"))

	_, err := f.svc.Place(context.Background(), 1)
	assert.ErrorIs(t, err, models.ErrNoAddressSelected)
	assert.Empty(t, f.orders.placed)
}

func TestSelectAddressRejectsForeignAddress(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = f.svc.SelectAddress(ctx, 1, "someone-elses")
	assert.ErrorIs(t, err, repositories.ErrAddressNotFound)
}

func TestHandleAddressDeletedIgnoresOtherSelections(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)

	require.NoError(t, f.svc.HandleAddressDeleted(context.Background(), 1, "addr-other"))

	session, err := f.sessions.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "addr-1", session.AddressID)
}

func TestReviewResolvesAddressAndTotal(t *testing.T) {
	f := newCheckoutFixture()
	f.toReview(t)

	review, err := f.svc.Review(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.StepReview, review.Step)
	assert.Equal(t, "123 Mabini St, Manila", review.Address)
	assert.Equal(t, "200.00", review.Total)
	assert.Equal(t, models.DeliveryCashOnDelivery, review.DeliveryMethod)
	require.Len(t, review.Items, 1)
}
