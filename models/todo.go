package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single task owned by a user. Cover holds the stored cover
// image filename, empty when no cover has been uploaded.
type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsFinished  bool      `gorm:"not null;default:false" json:"isFinished"`
	Cover       string    `gorm:"size:255" json:"cover"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
