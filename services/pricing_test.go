package services

import (
	"testing"

	"github.com/Nerfise/bossing/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		want    string
		wantErr bool
	}{
		{name: "currency prefix", price: "Php100.00", want: "100"},
		{name: "symbol prefix", price: "₱1,250.50", want: "1250.5"},
		{name: "no prefix", price: "42.75", want: "42.75"},
		{name: "surrounding spaces", price: "  Php55.00 ", want: "55"},
		{name: "no digits", price: "free", wantErr: true},
		{name: "empty", price: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.price)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCartTotal(t *testing.T) {
	cart := []models.CartItem{
		{
			ProductID: 1,
			Quantity:  2,
			Product:   &models.Product{ID: 1, Price: "Php100.00"},
		},
	}

	total, err := CartTotal(cart)
	require.NoError(t, err)
	assert.Equal(t, "200.00", FormatAmount(total))
}

func TestCartTotalMultipleItems(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: 1, Quantity: 3, Product: &models.Product{Price: "Php49.99"}},
		{ProductID: 2, Quantity: 1, Product: &models.Product{Price: "Php1,000.00"}},
	}

	total, err := CartTotal(cart)
	require.NoError(t, err)
	assert.Equal(t, "1149.97", FormatAmount(total))
}

func TestCartTotalEmpty(t *testing.T) {
	total, err := CartTotal(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00", FormatAmount(total))
}

func TestCartTotalBadPrice(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: 1, Quantity: 1, Product: &models.Product{Price: "N/A"}},
	}

	_, err := CartTotal(cart)
	assert.Error(t, err)
}

func TestPointsEarned(t *testing.T) {
	tests := []struct {
		total string
		rate  int64
		want  int64
	}{
		{total: "12500", rate: 5000, want: 2},
		{total: "5000", rate: 5000, want: 1},
		{total: "4999.99", rate: 5000, want: 0},
		{total: "200.00", rate: 5000, want: 0},
		{total: "0", rate: 5000, want: 0},
		{total: "10000", rate: 0, want: 0},
	}

	for _, tt := range tests {
		total, err := decimal.NewFromString(tt.total)
		require.NoError(t, err)
		assert.Equal(t, tt.want, PointsEarned(total, tt.rate), "total=%s rate=%d", tt.total, tt.rate)
	}
}
