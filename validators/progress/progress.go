package progressValidator

import (
	"encoding/json"

	"courseapi/middleware"

	"github.com/gofiber/fiber/v2"
)

// SaveRequest is the validated body of a progress save. CompletedLessons is
// the full snapshot of the user's completed lessons, never a delta.
type SaveRequest struct {
	CompletedLessons []string
	CurrentLesson    *string
}

// SaveProgress validates the progress payload before any storage call.
// completed_lessons arrives as raw JSON so a non-sequence value is reported
// as a field error rather than a generic parse failure.
func SaveProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CompletedLessons json.RawMessage `json:"completed_lessons"`
			CurrentLesson    *string         `json:"current_lesson"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		errors := make(map[string]string)

		var lessons []string
		if len(reqData.CompletedLessons) == 0 {
			errors["completed_lessons"] = "completed_lessons is required"
		} else if err := json.Unmarshal(reqData.CompletedLessons, &lessons); err != nil || lessons == nil {
			errors["completed_lessons"] = "completed_lessons must be an array of lesson ids"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", &SaveRequest{
			CompletedLessons: lessons,
			CurrentLesson:    reqData.CurrentLesson,
		})
		return c.Next()
	}
}
