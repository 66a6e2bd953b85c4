package orderValidator

import (
	"encoding/json"

	"courseapi/middleware"
	"courseapi/orders"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder validates the checkout request before any provider call.
// Amount arrives as raw JSON so that fractional values (a rupees-vs-paise
// mistake) are rejected with a field-level message instead of being truncated.
func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount     json.RawMessage `json:"amount"`
			Currency   string          `json:"currency"`
			CouponCode string          `json:"couponCode"`
			Receipt    string          `json:"receipt"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		var amount int64
		if len(reqData.Amount) == 0 {
			errors["amount"] = "Amount is required"
		} else if err := json.Unmarshal(reqData.Amount, &amount); err != nil {
			errors["amount"] = "Amount must be an integer"
		} else if amount <= 0 {
			errors["amount"] = "Amount must be a positive integer in the smallest currency unit"
		}

		if reqData.Currency != "INR" && reqData.Currency != "USD" {
			errors["currency"] = "Currency must be one of INR, USD"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrder", &orders.CreateOrderInput{
			Amount:     amount,
			Currency:   reqData.Currency,
			CouponCode: reqData.CouponCode,
			Receipt:    reqData.Receipt,
		})
		return c.Next()
	}
}
