package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrCartEmpty      = errors.New("cart is empty")
	ErrNameMissing    = errors.New("user has no display name")
	ErrNotInReview    = errors.New("checkout is not on the review step")
	ErrAddressMissing = errors.New("selected address no longer exists")
)

type SessionStore interface {
	Get(ctx context.Context, userID int) (*models.CheckoutSession, error)
	Save(ctx context.Context, session *models.CheckoutSession) error
	Delete(ctx context.Context, userID int) error
}

type AddressReader interface {
	Get(ctx context.Context, userID int, id string) (*models.Address, error)
}

type CartReader interface {
	List(ctx context.Context, userID int) ([]models.CartItem, error)
}

type OrderWriter interface {
	Place(ctx context.Context, order *models.Order, pointsToAdd int64) error
	SetCheckoutURL(ctx context.Context, orderID int, url string) error
}

type ProfileReader interface {
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
}

type PaymentLinker interface {
	Enabled() bool
	CreateLink(ctx context.Context, total decimal.Decimal, description string) (string, error)
}

type ProfilePublisher interface {
	Publish(ctx context.Context, profile *models.Profile)
}

type ReceiptMailer interface {
	SendOrderReceipt(toEmail string, order *models.Order) error
}

// CheckoutService drives the three-step wizard and the placement
// pipeline. All collaborators arrive as narrow interfaces; nothing here
// reaches into shared globals.
type CheckoutService struct {
	sessions  SessionStore
	addresses AddressReader
	cart      CartReader
	orders    OrderWriter
	users     ProfileReader
	payments  PaymentLinker
	events    ProfilePublisher
	mailer    ReceiptMailer
	earnRate  int64
}

func NewCheckoutService(
	sessions SessionStore,
	addresses AddressReader,
	cart CartReader,
	orders OrderWriter,
	users ProfileReader,
	payments PaymentLinker,
	events ProfilePublisher,
	mailer ReceiptMailer,
	earnRate int64,
) *CheckoutService {
	return &CheckoutService{
		sessions:  sessions,
		addresses: addresses,
		cart:      cart,
		orders:    orders,
		users:     users,
		payments:  payments,
		events:    events,
		mailer:    mailer,
		earnRate:  earnRate,
	}
}

// Start opens a fresh wizard session, replacing any abandoned one.
func (s *CheckoutService) Start(ctx context.Context, userID int) (*models.CheckoutSession, error) {
	session := models.NewCheckoutSession(userID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Review resolves the session into what the review screen shows:
// current step, resolved address text, itemized cart and the live
// total.
func (s *CheckoutService) Review(ctx context.Context, userID int) (*models.CheckoutReview, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cart.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := CartTotal(items)
	if err != nil {
		return nil, err
	}

	review := &models.CheckoutReview{
		Step:           session.Step,
		AddressID:      session.AddressID,
		DeliveryMethod: session.DeliveryMethod,
		Items:          items,
		Total:          FormatAmount(total),
	}

	if session.AddressID != "" {
		addr, err := s.addresses.Get(ctx, userID, session.AddressID)
		if err == nil {
			review.Address = addr.Address
		}
	}

	return review, nil
}

func (s *CheckoutService) SelectAddress(ctx context.Context, userID int, addressID string) (*models.CheckoutSession, error) {
	if _, err := s.addresses.Get(ctx, userID, addressID); err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	session.SelectAddress(addressID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) SelectDelivery(ctx context.Context, userID int, method string) (*models.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectDeliveryMethod(method); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) Advance(ctx context.Context, userID int) (*models.CheckoutSession, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Advance(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// HandleAddressDeleted clears the wizard's selection when the address
// it points at is removed from the address book.
func (s *CheckoutService) HandleAddressDeleted(ctx context.Context, userID int, addressID string) error {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		// No session, nothing to clear.
		return nil
	}

	if session.AddressID != addressID {
		return nil
	}

	session.ClearAddress()
	return s.sessions.Save(ctx, session)
}

// Place runs the placement pipeline. All preconditions are checked
// before the first write; the order, its items, the point increment and
// the cart wipe commit as one transaction. The payment link (e-wallet
// only) and the receipt mail come after the commit and never undo it.
func (s *CheckoutService) Place(ctx context.Context, userID int) (*models.PlaceOrderResponse, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepReview {
		return nil, ErrNotInReview
	}
	if session.AddressID == "" {
		return nil, models.ErrNoAddressSelected
	}

	items, err := s.cart.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.FullName == "" {
		return nil, ErrNameMissing
	}

	address, err := s.addresses.Get(ctx, userID, session.AddressID)
	if err != nil {
		return nil, ErrAddressMissing
	}

	total, err := CartTotal(items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d", time.Now().Unix()),
		UserID:          userID,
		CustomerName:    profile.FullName,
		DeliveryAddress: address.Address,
		DeliveryMethod:  session.DeliveryMethod,
		PaymentMethod:   session.DeliveryMethod,
		Total:           FormatAmount(total),
		Status:          models.OrderStatusPending,
		Items:           buildOrderItems(items),
	}

	pointsToAdd := PointsEarned(total, s.earnRate)

	if err := s.orders.Place(ctx, order, pointsToAdd); err != nil {
		return nil, err
	}

	resp := &models.PlaceOrderResponse{
		Order:       *order,
		PointsAdded: pointsToAdd,
	}

	if session.DeliveryMethod == models.DeliveryEwallet && s.payments != nil && s.payments.Enabled() {
		url, err := s.payments.CreateLink(ctx, total, "Order "+order.OrderNumber)
		if err != nil {
			logrus.WithError(err).WithField("order", order.OrderNumber).
				Warn("payment link creation failed, order stays pending")
		} else {
			resp.CheckoutURL = url
			if err := s.orders.SetCheckoutURL(ctx, order.ID, url); err != nil {
				logrus.WithError(err).Warn("store checkout url")
			}
		}
	}

	if err := s.sessions.Delete(ctx, userID); err != nil {
		logrus.WithError(err).Warn("delete checkout session")
	}

	if pointsToAdd > 0 && s.events != nil {
		if updated, err := s.users.GetProfile(ctx, userID); err == nil {
			s.events.Publish(ctx, updated)
		}
	}

	if s.mailer != nil && profile.Email != "" {
		if err := s.mailer.SendOrderReceipt(profile.Email, order); err != nil {
			logrus.WithError(err).WithField("order", order.OrderNumber).Warn("send receipt")
		}
	}

	return resp, nil
}

func buildOrderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		oi := models.OrderItem{
			ProductID:   item.ProductID,
			Name:        "Unknown Product",
			Description: "N/A",
			Price:       "0.00",
			Quantity:    item.Quantity,
		}
		if item.Product != nil {
			oi.Name = item.Product.Name
			if item.Product.Description != "" {
				oi.Description = item.Product.Description
			}
			oi.Price = item.Product.Price
		}
		out = append(out, oi)
	}
	return out
}
