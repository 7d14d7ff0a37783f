package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PaymentLinkClient talks to the hosted payment-link provider. The
// secret key is Basic-auth material and comes from config, never from
// source.
type PaymentLinkClient struct {
	baseURL    string
	secretKey  string
	currency   string
	successURL string
	failedURL  string
	httpClient *http.Client
}

type paymentLinkRequest struct {
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Redirect    paymentRedirect `json:"redirect"`
}

type paymentRedirect struct {
	Success string `json:"success"`
	Failed  string `json:"failed"`
}

type paymentLinkResponse struct {
	CheckoutURL string         `json:"checkout_url"`
	Errors      []paymentError `json:"errors"`
}

type paymentError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func NewPaymentLinkClient() *PaymentLinkClient {
	return &PaymentLinkClient{
		baseURL:    config.AppConfig.PaymentAPIURL,
		secretKey:  config.AppConfig.PaymentSecretKey,
		currency:   config.AppConfig.PaymentCurrency,
		successURL: config.AppConfig.PaymentSuccessURL,
		failedURL:  config.AppConfig.PaymentFailedURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewPaymentLinkClientWith is used by tests to point the client at a
// stub server.
func NewPaymentLinkClientWith(baseURL, secretKey, currency string) *PaymentLinkClient {
	return &PaymentLinkClient{
		baseURL:    baseURL,
		secretKey:  secretKey,
		currency:   currency,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *PaymentLinkClient) Enabled() bool {
	return c.secretKey != ""
}

// CreateLink requests a hosted checkout page for the given total and
// returns its URL. The amount is sent in centavos.
func (c *PaymentLinkClient) CreateLink(ctx context.Context, total decimal.Decimal, description string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("payment provider not configured")
	}

	body := paymentLinkRequest{
		Amount:      total.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency:    c.currency,
		Description: description,
		Redirect: paymentRedirect{
			Success: c.successURL,
			Failed:  c.failedURL,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "marshal payment link request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build payment link request")
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "payment link request failed")
	}
	defer resp.Body.Close()

	var parsed paymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decode payment link response")
	}

	if len(parsed.Errors) > 0 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   parsed.Errors[0].Code,
		}).Warn("payment link rejected")
		return "", fmt.Errorf("payment provider error: %s", parsed.Errors[0].Detail)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	if parsed.CheckoutURL == "" {
		return "", errors.New("payment provider returned no checkout url")
	}

	logrus.WithField("amount", body.Amount).Info("payment link created")
	return parsed.CheckoutURL, nil
}
