package contentController

import (
	"errors"

	"courseapi/middleware"
	"courseapi/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	db *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// GetCourseData serves the published course catalog. With no published
// course the site falls back to its statically bundled content.
func (ct *Controller) GetCourseData(c *fiber.Ctx) error {
	var course models.Course
	err := ct.db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("id asc").First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"useStatic": true})
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course data")
	}

	var modules []models.Module
	if err := ct.db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course data")
	}

	type moduleWithLessons struct {
		models.Module
		Lessons []models.Lesson `json:"lessons"`
	}

	result := make([]moduleWithLessons, len(modules))
	for i, module := range modules {
		result[i] = moduleWithLessons{Module: module}

		var lessons []models.Lesson
		if err := ct.db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course data")
		}
		result[i].Lessons = lessons
	}

	var globalResources []models.Resource
	if err := ct.db.Where("lesson_id IS NULL AND is_deleted = ?", false).
		Find(&globalResources).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course data")
	}

	return c.JSON(fiber.Map{
		"useStatic": false,
		"courseData": fiber.Map{
			"course":  course,
			"modules": result,
		},
		"globalResources": globalResources,
	})
}
