package checkoutRoutes

import (
	checkoutController "courseapi/controllers/checkout"
	"courseapi/gateway"
	"courseapi/session"
	"courseapi/utils"
	checkoutValidator "courseapi/validators/checkout"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCheckoutRoutes sets up the payment callback and confirmation routes
func SetupCheckoutRoutes(app *fiber.App, db *gorm.DB, gw *gateway.Client, gate *session.Gate, mailer *utils.Mailer) {
	controller := checkoutController.NewController(db, gw, gate, mailer)

	app.Post("/payment-success", checkoutValidator.PaymentSuccess(), controller.PaymentSuccess)
	app.Get("/thank-you", controller.ThankYou)
}
