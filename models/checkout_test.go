package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutSessionDefaults(t *testing.T) {
	s := NewCheckoutSession(7)

	assert.Equal(t, 7, s.UserID)
	assert.Equal(t, StepAddress, s.Step)
	assert.Equal(t, DeliveryCashOnDelivery, s.DeliveryMethod)
	assert.Empty(t, s.AddressID)
}

func TestAdvanceRequiresAddress(t *testing.T) {
	s := NewCheckoutSession(1)

	err := s.Advance()
	assert.ErrorIs(t, err, ErrNoAddressSelected)
	assert.Equal(t, StepAddress, s.Step)

	s.SelectAddress("addr-1")
	require.NoError(t, s.Advance())
	assert.Equal(t, StepDelivery, s.Step)
}

func TestAdvanceStopsAtReview(t *testing.T) {
	s := NewCheckoutSession(1)
	s.SelectAddress("addr-1")

	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	assert.Equal(t, StepReview, s.Step)

	err := s.Advance()
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.Equal(t, StepReview, s.Step)
}

func TestSelectDeliveryMethodOnlyOnDeliveryStep(t *testing.T) {
	s := NewCheckoutSession(1)

	err := s.SelectDeliveryMethod(DeliveryEwallet)
	assert.ErrorIs(t, err, ErrMethodNotSelectable)

	s.SelectAddress("addr-1")
	require.NoError(t, s.Advance())

	require.NoError(t, s.SelectDeliveryMethod(DeliveryEwallet))
	assert.Equal(t, DeliveryEwallet, s.DeliveryMethod)

	err = s.SelectDeliveryMethod("carrier_pigeon")
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Equal(t, DeliveryEwallet, s.DeliveryMethod)
}

func TestSelectAddressAllowedAtAnyStep(t *testing.T) {
	s := NewCheckoutSession(1)
	s.SelectAddress("addr-1")
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())

	s.SelectAddress("addr-2")
	assert.Equal(t, "addr-2", s.AddressID)
	assert.Equal(t, StepReview, s.Step)
}

func TestClearAddress(t *testing.T) {
	s := NewCheckoutSession(1)
	s.SelectAddress("addr-1")
	s.ClearAddress()
	assert.Empty(t, s.AddressID)
}
