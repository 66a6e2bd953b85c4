package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"courseapi/config"
	"courseapi/gateway"
	"courseapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}))
	return db
}

// fakeProvider counts order-creation calls and echoes the request back as a
// provider order.
func fakeProvider(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++

		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       fmt.Sprintf("order_test%d", *calls),
			"amount":   body.Amount,
			"currency": body.Currency,
			"status":   "created",
			"receipt":  body.Receipt,
		})
	}))
}

func newService(t *testing.T, baseURL string) (*Service, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "rzp_test_secret",
		RazorpayBaseURL:   baseURL,
	}
	db := setupDB(t)
	return NewService(db, gateway.NewClient(cfg)), db
}

func TestCreateOrderValidationSkipsNetwork(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, _ := newService(t, provider.URL)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 0, Currency: "INR"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{Amount: -500, Currency: "INR"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 99900, Currency: "EUR"})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	assert.Equal(t, 0, calls, "invalid input must never reach the provider")
}

func TestCreateOrderAmountAndCurrencyPreserved(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, _ := newService(t, provider.URL)

	// Rs 999 expressed in paise
	result, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 99900, Currency: "INR"})
	require.NoError(t, err)

	assert.Equal(t, int64(99900), result.Amount)
	assert.Equal(t, "INR", result.Currency)
	assert.Equal(t, "rzp_test_key", result.KeyID)
	assert.NotEmpty(t, result.OrderID)
	assert.NotEmpty(t, result.Receipt, "a receipt is synthesized when the caller supplies none")
}

func TestCreateOrderIdempotentByReceipt(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, _ := newService(t, provider.URL)

	input := CreateOrderInput{Amount: 99900, Currency: "INR", Receipt: "rcpt_checkout_42"}

	first, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID, "same receipt must return the same order")
	assert.Equal(t, 1, calls, "the retry must not create a second provider order")
}

func TestCreateOrderExpiredReceiptGetsFreshOrder(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, db := newService(t, provider.URL)

	input := CreateOrderInput{Amount: 99900, Currency: "INR", Receipt: "rcpt_old"}

	first, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	// The sweeper expired the checkout attempt in the meantime
	require.NoError(t, db.Model(&models.Order{}).
		Where("receipt = ?", "rcpt_old").
		Update("status", models.OrderStatusExpired).Error)

	second, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID, "an expired receipt must not resurrect the old order")
	assert.Equal(t, 2, calls)

	// The expired row was replaced in place, not duplicated
	var count int64
	db.Model(&models.Order{}).Where("receipt = ?", "rcpt_old").Count(&count)
	assert.Equal(t, int64(1), count)

	var mirror models.Order
	require.NoError(t, db.Where("receipt = ?", "rcpt_old").First(&mirror).Error)
	assert.Equal(t, second.OrderID, mirror.ProviderOrderID)
	assert.Equal(t, models.OrderStatusCreated, mirror.Status)
}

func TestCreateOrderReceiptPinsAmountAndCurrency(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, _ := newService(t, provider.URL)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Amount: 99900, Currency: "INR", Receipt: "rcpt_pinned",
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), CreateOrderInput{
		Amount: 49900, Currency: "USD", Receipt: "rcpt_pinned",
	})
	assert.ErrorIs(t, err, ErrReceiptConflict, "a reused receipt must never succeed with a different amount or currency")
	assert.Equal(t, 1, calls)
}

func TestCreateOrderMirrorsProviderRow(t *testing.T) {
	calls := 0
	provider := fakeProvider(t, &calls)
	defer provider.Close()

	svc, db := newService(t, provider.URL)

	result, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Amount:     49900,
		Currency:   "USD",
		CouponCode: "LAUNCH50",
	})
	require.NoError(t, err)

	var mirror models.Order
	require.NoError(t, db.Where("provider_order_id = ?", result.OrderID).First(&mirror).Error)
	assert.Equal(t, int64(49900), mirror.Amount)
	assert.Equal(t, "USD", mirror.Currency)
	assert.Equal(t, models.OrderStatusCreated, mirror.Status)
	assert.Equal(t, "LAUNCH50", mirror.CouponCode)
}

func TestCreateOrderProviderFailureSurfaced(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error":{"description":"upstream down"}}`)
	}))
	defer provider.Close()

	svc, db := newService(t, provider.URL)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 99900, Currency: "INR"})
	require.Error(t, err)

	var provErr *gateway.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
	assert.Contains(t, provErr.Body, "upstream down")

	// No synthetic success: nothing was mirrored
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}
