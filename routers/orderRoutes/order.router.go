package orderRoutes

import (
	orderController "courseapi/controllers/order"
	"courseapi/orders"
	orderValidator "courseapi/validators/order"

	"github.com/gofiber/fiber/v2"
)

// SetupOrderRoutes sets up the payment-order routes
func SetupOrderRoutes(app *fiber.App, service *orders.Service) {
	controller := orderController.NewController(service)

	app.Post("/create-order", orderValidator.CreateOrder(), controller.CreateOrder)
}
