package models

import (
	"errors"
	"time"
)

const (
	StepAddress  = "address"
	StepDelivery = "delivery"
	StepReview   = "review"
)

var (
	ErrNoAddressSelected   = errors.New("no address selected")
	ErrInvalidStep         = errors.New("invalid checkout step")
	ErrInvalidMethod       = errors.New("invalid delivery method")
	ErrMethodNotSelectable = errors.New("delivery method can only be chosen on the delivery step")
)

// CheckoutSession is the server-side state of the three-step wizard
// (address -> delivery -> review). It is keyed by user id and stored in
// Redis between requests, so the HTTP layer stays stateless.
type CheckoutSession struct {
	UserID         int       `json:"user_id"`
	Step           string    `json:"step"`
	AddressID      string    `json:"address_id"`
	DeliveryMethod string    `json:"delivery_method"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCheckoutSession(userID int) *CheckoutSession {
	return &CheckoutSession{
		UserID:         userID,
		Step:           StepAddress,
		DeliveryMethod: DeliveryCashOnDelivery,
		UpdatedAt:      time.Now(),
	}
}

// SelectAddress records the chosen address. Unlike the step transitions
// this is allowed at any step: the wizard lets the user go back and
// re-pick an address without losing delivery progress.
func (s *CheckoutSession) SelectAddress(addressID string) {
	s.AddressID = addressID
	s.UpdatedAt = time.Now()
}

// ClearAddress drops the selection, used when the selected address is
// deleted from the address book mid-checkout.
func (s *CheckoutSession) ClearAddress() {
	s.AddressID = ""
	s.UpdatedAt = time.Now()
}

func (s *CheckoutSession) SelectDeliveryMethod(method string) error {
	if s.Step != StepDelivery {
		return ErrMethodNotSelectable
	}
	if !ValidDeliveryMethod(method) {
		return ErrInvalidMethod
	}
	s.DeliveryMethod = method
	s.UpdatedAt = time.Now()
	return nil
}

// Advance moves the wizard one step forward. Leaving the address step
// requires a selected address; leaving the delivery step is
// unconditional because a method is always set (cash on delivery is the
// default). The review step is terminal, placement ends the session.
func (s *CheckoutSession) Advance() error {
	switch s.Step {
	case StepAddress:
		if s.AddressID == "" {
			return ErrNoAddressSelected
		}
		s.Step = StepDelivery
	case StepDelivery:
		s.Step = StepReview
	case StepReview:
		return ErrInvalidStep
	default:
		return ErrInvalidStep
	}
	s.UpdatedAt = time.Now()
	return nil
}
