package checkoutValidator

import (
	"courseapi/middleware"

	"github.com/gofiber/fiber/v2"
)

// SuccessRequest is the validated payment-provider success callback body.
type SuccessRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Email     string `json:"email"`
}

// PaymentSuccess validates the success callback payload.
func PaymentSuccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SuccessRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		if reqData.OrderID == "" {
			errors["order_id"] = "Order ID is required"
		}
		if reqData.PaymentID == "" {
			errors["payment_id"] = "Payment ID is required"
		}
		if reqData.Signature == "" {
			errors["signature"] = "Payment signature is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}
