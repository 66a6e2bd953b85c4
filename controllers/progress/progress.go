package progressController

import (
	"errors"

	"courseapi/identity"
	"courseapi/middleware"
	"courseapi/models"
	"courseapi/progress"
	progressValidator "courseapi/validators/progress"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	store *progress.Store
}

func NewController(store *progress.Store) *Controller {
	return &Controller{store: store}
}

// GetProgress returns the caller's progress record, or the default empty
// record if they have never saved.
func (ct *Controller) GetProgress(c *fiber.Ctx) error {
	ident, ok := c.Locals("identity").(*identity.Identity)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	record, err := ct.store.Get(ident)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load progress")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progressPayload(record),
	})
}

// SaveProgress replaces the caller's progress record with the submitted
// snapshot.
func (ct *Controller) SaveProgress(c *fiber.Ctx) error {
	ident, ok := c.Locals("identity").(*identity.Identity)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	reqData, ok := c.Locals("validatedProgress").(*progressValidator.SaveRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	record, err := ct.store.Save(ident, reqData.CompletedLessons, reqData.CurrentLesson)
	if err != nil {
		if errors.Is(err, progress.ErrInvalidLessons) {
			return middleware.ValidationErrorResponse(c, map[string]string{"completed_lessons": err.Error()})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save progress")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progressPayload(record),
	})
}

func progressPayload(record *models.ProgressRecord) fiber.Map {
	return fiber.Map{
		"completed_lessons": record.Completed(),
		"current_lesson":    record.CurrentLesson,
		"last_accessed":     record.LastAccessed,
	}
}
