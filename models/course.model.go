package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Lesson id values are what the progress subsystem stores in
// completed_lessons; it treats them as opaque strings and never checks them
// against this table.
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	LessonID   string `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   string `json:"duration"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Resource is a downloadable attachment, either lesson-scoped or global.
type Resource struct {
	gorm.Model
	LessonID  *uint  `json:"lesson_id,omitempty" gorm:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
