package adminRoutes

import (
	"courseapi/config"
	adminController "courseapi/controllers/admin"
	"courseapi/middleware"
	adminValidator "courseapi/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminRoutes sets up the admin catalog-management routes
func SetupAdminRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	controller := adminController.NewController(cfg, db)
	adminGroup := app.Group("/admin")

	adminGroup.Post("/login", adminValidator.Login(), controller.Login)

	adminGroup.Post("/course", middleware.AdminJWT(cfg), adminValidator.CreateCourse(), controller.CreateCourse)
	adminGroup.Post("/module", middleware.AdminJWT(cfg), adminValidator.CreateModule(), controller.CreateModule)
	adminGroup.Post("/lesson", middleware.AdminJWT(cfg), adminValidator.CreateLesson(), controller.CreateLesson)
	adminGroup.Post("/resource", middleware.AdminJWT(cfg), adminValidator.CreateResource(), controller.CreateResource)
}
