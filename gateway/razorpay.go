package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"courseapi/config"

	"github.com/go-resty/resty/v2"
)

// Client talks to the Razorpay Orders API.
type Client struct {
	http      *resty.Client
	keyID     string
	keySecret string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.RazorpayBaseURL).
			SetBasicAuth(cfg.RazorpayKeyID, cfg.RazorpayKeySecret).
			SetTimeout(10 * time.Second),
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
	}
}

// KeyID is the publishable key the browser checkout needs.
func (c *Client) KeyID() string {
	return c.keyID
}

// ProviderOrder mirrors the provider's order-creation response.
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
}

// ProviderError carries the provider's HTTP status and raw error payload.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider returned %d: %s", e.StatusCode, e.Body)
}

// CreateOrder creates an order with the provider. It never retries; the
// caller owns retry policy and keys retries by receipt.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*ProviderOrder, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, &ProviderError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var order ProviderOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("invalid provider response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("invalid provider response: missing order id")
	}

	return &order, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 of
// "<orderID>|<paymentID>" under the key secret, hex encoded.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
