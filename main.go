package main

import (
	"log"

	"courseapi/config"
	"courseapi/database"
	"courseapi/gateway"
	"courseapi/identity"
	"courseapi/orders"
	"courseapi/progress"
	adminRoutes "courseapi/routers/adminRoutes"
	checkoutRoutes "courseapi/routers/checkoutRoutes"
	contentRoutes "courseapi/routers/contentRoutes"
	orderRoutes "courseapi/routers/orderRoutes"
	progressRoutes "courseapi/routers/progressRoutes"
	"courseapi/session"
	"courseapi/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	paymentGateway := gateway.NewClient(cfg)
	verifier := identity.NewVerifier(cfg)
	orderService := orders.NewService(db, paymentGateway)
	progressStore := progress.NewStore(db)
	gate := session.NewGate()
	mailer := utils.NewMailer(cfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	orderRoutes.SetupOrderRoutes(app, orderService)
	checkoutRoutes.SetupCheckoutRoutes(app, db, paymentGateway, gate, mailer)
	progressRoutes.SetupProgressRoutes(app, verifier, progressStore)
	contentRoutes.SetupContentRoutes(app, db)
	adminRoutes.SetupAdminRoutes(app, cfg, db)

	utils.InitializeOrderSweeper(db)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
