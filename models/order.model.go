package models

import "gorm.io/gorm"

const (
	OrderStatusCreated = "CREATED"
	OrderStatusPaid    = "PAID"
	OrderStatusExpired = "EXPIRED"
)

// Order is a read-only mirror of a payment-provider order. The provider owns
// the order; this row exists so that repeated submissions of the same checkout
// attempt (same receipt) return the already-created order instead of creating
// a duplicate, and so the payment callback can be correlated server-side.
type Order struct {
	gorm.Model
	ProviderOrderID string `json:"provider_order_id" gorm:"uniqueIndex;not null"`
	Receipt         string `json:"receipt" gorm:"uniqueIndex;not null"`
	Amount          int64  `json:"amount"` // smallest currency unit (paise, cents)
	Currency        string `json:"currency"`
	Status          string `json:"status" gorm:"default:'CREATED'"`
	CouponCode      string `json:"coupon_code,omitempty"`
	PaymentID       string `json:"payment_id,omitempty"`
}
