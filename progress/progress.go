package progress

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"courseapi/identity"
	"courseapi/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidLessons = errors.New("completed_lessons must be an array of lesson ids")
	ErrPersistence    = errors.New("persistence failed")
)

// Store persists per-user lesson progress, keyed by verified identity.
// Saves are whole-set replacements: the incoming completed_lessons value is
// the full authoritative snapshot, not a delta, and the later of two
// concurrent saves for the same user wins.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored record for the identity. A user with no record yet
// gets a default empty record; absence is not an error.
func (s *Store) Get(ident *identity.Identity) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := s.db.Where("user_id = ?", ident.UserID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ProgressRecord{
			UserID:           ident.UserID,
			CompletedLessons: datatypes.JSON([]byte("[]")),
		}, nil
	}
	if err != nil {
		log.Printf("[PROGRESS] fetch failed for user %s: %v", ident.UserID, err)
		return nil, ErrPersistence
	}
	return &record, nil
}

// Save upserts the user's record: insert if absent, otherwise replace
// completed_lessons, current_lesson and last_accessed. The replace is atomic
// on the user_id key; serialization of concurrent saves is the store's
// on-conflict primitive, not application locking.
func (s *Store) Save(ident *identity.Identity, completedLessons []string, currentLesson *string) (*models.ProgressRecord, error) {
	if completedLessons == nil {
		return nil, ErrInvalidLessons
	}

	encoded, err := json.Marshal(completedLessons)
	if err != nil {
		return nil, ErrInvalidLessons
	}

	record := models.ProgressRecord{
		UserID:           ident.UserID,
		CompletedLessons: datatypes.JSON(encoded),
		CurrentLesson:    currentLesson,
		LastAccessed:     time.Now(),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed_lessons", "current_lesson", "last_accessed", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		log.Printf("[PROGRESS] save failed for user %s: %v", ident.UserID, err)
		return nil, ErrPersistence
	}

	return &record, nil
}
