package checkoutController

import (
	"log"

	"courseapi/gateway"
	"courseapi/middleware"
	"courseapi/models"
	"courseapi/session"
	"courseapi/utils"
	checkoutValidator "courseapi/validators/checkout"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	db      *gorm.DB
	gateway *gateway.Client
	gate    *session.Gate
	mailer  *utils.Mailer
}

func NewController(db *gorm.DB, gw *gateway.Client, gate *session.Gate, mailer *utils.Mailer) *Controller {
	return &Controller{db: db, gateway: gw, gate: gate, mailer: mailer}
}

// PaymentSuccess is the provider success-callback path. The session marker is
// set only after the callback signature verifies and the order is one we
// created; a bare flag from the client proves nothing.
func (ct *Controller) PaymentSuccess(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPayment").(*checkoutValidator.SuccessRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	var order models.Order
	if err := ct.db.Where("provider_order_id = ?", reqData.OrderID).First(&order).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Unknown order")
	}

	if !ct.gateway.VerifySignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid payment signature")
	}

	if err := ct.db.Model(&order).Updates(map[string]interface{}{
		"status":     models.OrderStatusPaid,
		"payment_id": reqData.PaymentID,
	}).Error; err != nil {
		log.Printf("[CHECKOUT] failed to mark order %s paid: %v", order.ProviderOrderID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record payment")
	}

	ct.gate.MarkPaid(c, order.ProviderOrderID)

	if ct.mailer != nil && reqData.Email != "" {
		go ct.mailer.SendPaymentReceipt(reqData.Email, order.ProviderOrderID, order.Amount, order.Currency)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ThankYou serves the one-time confirmation view data. Without a fresh
// marker it redirects home silently; with one it consumes the marker so a
// reload or shared URL never shows the confirmation again.
func (ct *Controller) ThankYou(c *fiber.Ctx) error {
	orderID, ok := ct.gate.ConsumeIfPaid(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	payload := fiber.Map{"success": true}

	var order models.Order
	if err := ct.db.Where("provider_order_id = ?", orderID).First(&order).Error; err == nil {
		payload["order"] = fiber.Map{
			"order_id": order.ProviderOrderID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"status":   order.Status,
		}
	}

	return c.JSON(payload)
}
