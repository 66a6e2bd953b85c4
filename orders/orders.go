package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"courseapi/gateway"
	"courseapi/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidAmount       = errors.New("Amount must be a positive integer in the smallest currency unit")
	ErrUnsupportedCurrency = errors.New("Currency must be one of INR, USD")
	ErrReceiptConflict     = errors.New("Receipt was already used with a different amount or currency")
	ErrPersistence         = errors.New("persistence failed")
)

var supportedCurrencies = map[string]bool{
	"INR": true,
	"USD": true,
}

// Service creates payment-provider orders. Creation is keyed by receipt:
// submitting the same receipt twice returns the order created the first time
// instead of creating a duplicate at the provider.
type Service struct {
	db      *gorm.DB
	gateway *gateway.Client
}

func NewService(db *gorm.DB, gw *gateway.Client) *Service {
	return &Service{db: db, gateway: gw}
}

type CreateOrderInput struct {
	Amount     int64
	Currency   string
	CouponCode string
	Receipt    string
}

type CreatedOrder struct {
	OrderID  string
	KeyID    string
	Amount   int64
	Currency string
	Receipt  string
}

// CreateOrder validates the input, then performs a get-or-create by receipt
// against the local order mirror and the provider. No network call is made
// for invalid input or for a receipt that already has an order.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreatedOrder, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !supportedCurrencies[input.Currency] {
		return nil, ErrUnsupportedCurrency
	}

	receipt := input.Receipt
	var stale *models.Order
	if receipt == "" {
		receipt = synthesizeReceipt()
	} else {
		// Caller-supplied receipt is the idempotency key: return the
		// already-created order if this checkout attempt was submitted before.
		var existing models.Order
		err := s.db.Where("receipt = ?", receipt).First(&existing).Error
		switch {
		case err == nil && existing.Status == models.OrderStatusExpired:
			// The sweeper expired this checkout attempt; create a fresh
			// provider order and replace the expired row under its receipt.
			stale = &existing
		case err == nil:
			// The receipt pins amount and currency; the same key with a
			// different price is a conflicting checkout, not a retry.
			if existing.Amount != input.Amount || existing.Currency != input.Currency {
				return nil, ErrReceiptConflict
			}
			return s.fromMirror(&existing), nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("[ORDERS] receipt lookup failed: %v", err)
			return nil, ErrPersistence
		}
	}

	notes := map[string]string{}
	if input.CouponCode != "" {
		// Attached as provider-side metadata only; pricing happens upstream.
		notes["coupon_code"] = input.CouponCode
	}

	provOrder, err := s.gateway.CreateOrder(ctx, input.Amount, input.Currency, receipt, notes)
	if err != nil {
		return nil, err
	}

	if stale != nil {
		err := s.db.Model(stale).Updates(map[string]interface{}{
			"provider_order_id": provOrder.ID,
			"amount":            provOrder.Amount,
			"currency":          provOrder.Currency,
			"status":            models.OrderStatusCreated,
			"coupon_code":       input.CouponCode,
			"payment_id":        "",
		}).Error
		if err != nil {
			log.Printf("[ORDERS] failed to replace expired order for receipt %s: %v", receipt, err)
			return nil, ErrPersistence
		}
		return &CreatedOrder{
			OrderID:  provOrder.ID,
			KeyID:    s.gateway.KeyID(),
			Amount:   provOrder.Amount,
			Currency: provOrder.Currency,
			Receipt:  receipt,
		}, nil
	}

	mirror := models.Order{
		ProviderOrderID: provOrder.ID,
		Receipt:         receipt,
		Amount:          provOrder.Amount,
		Currency:        provOrder.Currency,
		Status:          models.OrderStatusCreated,
		CouponCode:      input.CouponCode,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "receipt"}},
		DoNothing: true,
	}).Create(&mirror)
	if res.Error != nil {
		log.Printf("[ORDERS] failed to mirror order %s: %v", provOrder.ID, res.Error)
		return nil, ErrPersistence
	}
	if res.RowsAffected == 0 {
		// Lost a race on the receipt key; the winner's order is the order.
		var existing models.Order
		if err := s.db.Where("receipt = ?", receipt).First(&existing).Error; err != nil {
			log.Printf("[ORDERS] failed to read winning order for receipt %s: %v", receipt, err)
			return nil, ErrPersistence
		}
		if existing.Amount != input.Amount || existing.Currency != input.Currency {
			return nil, ErrReceiptConflict
		}
		return s.fromMirror(&existing), nil
	}

	return s.fromMirror(&mirror), nil
}

func (s *Service) fromMirror(order *models.Order) *CreatedOrder {
	return &CreatedOrder{
		OrderID:  order.ProviderOrderID,
		KeyID:    s.gateway.KeyID(),
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	}
}

func synthesizeReceipt() string {
	return fmt.Sprintf("rcpt_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
}
