package contentRoutes

import (
	contentController "courseapi/controllers/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupContentRoutes sets up the course catalog routes
func SetupContentRoutes(app *fiber.App, db *gorm.DB) {
	controller := contentController.NewController(db)

	app.Get("/course-data", controller.GetCourseData)
}
