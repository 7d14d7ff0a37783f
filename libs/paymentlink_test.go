package libs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLinkSuccess(t *testing.T) {
	var gotBody map[string]interface{}
	var gotUser string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"checkout_url": "https://pay.example.com/link/xyz",
		})
	}))
	defer server.Close()

	client := NewPaymentLinkClientWith(server.URL, "sk_test_123", "PHP")

	url, err := client.CreateLink(context.Background(), decimal.RequireFromString("200.00"), "Order ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/link/xyz", url)

	assert.Equal(t, "sk_test_123", gotUser)
	// Amount travels in centavos.
	assert.Equal(t, float64(20000), gotBody["amount"])
	assert.Equal(t, "PHP", gotBody["currency"])
	assert.Equal(t, "Order ORD-1", gotBody["description"])
}

func TestCreateLinkProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{
				{"code": "parameter_below_minimum", "detail": "amount must be at least 100"},
			},
		})
	}))
	defer server.Close()

	client := NewPaymentLinkClientWith(server.URL, "sk_test_123", "PHP")

	_, err := client.CreateLink(context.Background(), decimal.NewFromInt(0), "Order ORD-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be at least 100")
}

func TestCreateLinkEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewPaymentLinkClientWith(server.URL, "sk_test_123", "PHP")

	_, err := client.CreateLink(context.Background(), decimal.NewFromInt(100), "Order ORD-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checkout url")
}

func TestCreateLinkDisabledWithoutKey(t *testing.T) {
	client := NewPaymentLinkClientWith("http://localhost:0", "", "PHP")

	assert.False(t, client.Enabled())
	_, err := client.CreateLink(context.Background(), decimal.NewFromInt(100), "Order ORD-4")
	assert.Error(t, err)
}
