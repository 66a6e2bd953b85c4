package progressRoutes

import (
	progressController "courseapi/controllers/progress"
	"courseapi/identity"
	"courseapi/middleware"
	"courseapi/progress"
	progressValidator "courseapi/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up the lesson-progress routes
func SetupProgressRoutes(app *fiber.App, verifier *identity.Verifier, store *progress.Store) {
	controller := progressController.NewController(store)
	requireIdentity := middleware.RequireIdentity(verifier)

	app.Get("/progress", requireIdentity, controller.GetProgress)
	app.Post("/progress", requireIdentity, progressValidator.SaveProgress(), controller.SaveProgress)
}
