package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressRecord is the per-user course progress state. One row per user,
// keyed by the identity service's user id. CompletedLessons holds the full
// authoritative set of completed lesson ids as a JSON array; every save
// replaces it wholesale.
type ProgressRecord struct {
	gorm.Model
	UserID           string         `json:"user_id" gorm:"uniqueIndex;not null"`
	CompletedLessons datatypes.JSON `json:"completed_lessons"`
	CurrentLesson    *string        `json:"current_lesson"`
	LastAccessed     time.Time      `json:"last_accessed"`
}

// Completed decodes the stored lesson-id set. A missing or corrupt column
// decodes to the empty set rather than an error.
func (p *ProgressRecord) Completed() []string {
	lessons := []string{}
	if len(p.CompletedLessons) > 0 {
		_ = json.Unmarshal(p.CompletedLessons, &lessons)
	}
	return lessons
}
