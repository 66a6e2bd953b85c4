package adminController

import (
	"log"

	"courseapi/config"
	"courseapi/middleware"
	"courseapi/models"
	adminValidator "courseapi/validators/admin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Controller struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewController(cfg *config.Config, db *gorm.DB) *Controller {
	return &Controller{cfg: cfg, db: db}
}

// Login checks the configured admin credentials and issues a JWT.
func (ct *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*adminValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	if ct.cfg.AdminEmail == "" || reqData.Email != ct.cfg.AdminEmail {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ct.cfg.AdminPasswordHash), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.GenerateAdminJWT(ct.cfg, reqData.Email)
	if err != nil {
		log.Printf("[ADMIN] failed to sign token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to login")
	}

	return c.JSON(fiber.Map{"success": true, "token": token})
}

// CreateCourse adds a course to the catalog.
func (ct *Controller) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		IsPublished: reqData.IsPublished,
	}
	if err := ct.db.Create(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return c.JSON(fiber.Map{"success": true, "course": course})
}

// CreateModule adds a module to a course.
func (ct *Controller) CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*adminValidator.ModuleRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	var course models.Course
	if err := ct.db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
	}

	module := models.Module{
		CourseID:   reqData.CourseID,
		Title:      reqData.Title,
		OrderIndex: reqData.OrderIndex,
	}
	if err := ct.db.Create(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create module")
	}

	return c.JSON(fiber.Map{"success": true, "module": module})
}

// CreateLesson upserts a lesson by its public lesson id.
func (ct *Controller) CreateLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLesson").(*adminValidator.LessonRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	var module models.Module
	if err := ct.db.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found")
	}

	lesson := models.Lesson{
		ModuleID:   reqData.ModuleID,
		LessonID:   reqData.LessonID,
		Title:      reqData.Title,
		VideoURL:   reqData.VideoURL,
		Duration:   reqData.Duration,
		OrderIndex: reqData.OrderIndex,
	}
	err := ct.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"module_id", "title", "video_url", "duration", "order_index", "updated_at",
		}),
	}).Create(&lesson).Error
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save lesson")
	}

	return c.JSON(fiber.Map{"success": true, "lesson": lesson})
}

// CreateResource adds a downloadable resource, lesson-scoped or global.
func (ct *Controller) CreateResource(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResource").(*adminValidator.ResourceRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data")
	}

	resource := models.Resource{
		LessonID: reqData.LessonID,
		Title:    reqData.Title,
		URL:      reqData.URL,
	}
	if err := ct.db.Create(&resource).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create resource")
	}

	return c.JSON(fiber.Map{"success": true, "resource": resource})
}
