package orderController

import (
	"errors"
	"log"

	"courseapi/gateway"
	"courseapi/middleware"
	"courseapi/orders"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	service *orders.Service
}

func NewController(service *orders.Service) *Controller {
	return &Controller{service: service}
}

// CreateOrder creates a payment-provider order for the checkout flow.
func (ct *Controller) CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("validatedOrder").(*orders.CreateOrderInput)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	result, err := ct.service.CreateOrder(c.UserContext(), *input)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidAmount):
			return middleware.ValidationErrorResponse(c, map[string]string{"amount": err.Error()})
		case errors.Is(err, orders.ErrUnsupportedCurrency):
			return middleware.ValidationErrorResponse(c, map[string]string{"currency": err.Error()})
		case errors.Is(err, orders.ErrReceiptConflict):
			return middleware.ErrorResponse(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, orders.ErrPersistence):
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order")
		}

		// Provider-side failures mirror the provider's status and carry its
		// raw error payload; everything else is an internal failure.
		var provErr *gateway.ProviderError
		if errors.As(err, &provErr) {
			return c.Status(provErr.StatusCode).JSON(fiber.Map{
				"success": false,
				"error":   "Order creation failed at payment provider",
				"details": provErr.Body,
			})
		}

		log.Printf("[ORDERS] order creation failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"order_id": result.OrderID,
		"key_id":   result.KeyID,
		"amount":   result.Amount,
		"currency": result.Currency,
		"receipt":  result.Receipt,
	})
}
