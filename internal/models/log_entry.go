package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogEntry records one consumption event. RefID points into food_items or
// recipe_portions depending on Kind; the reference is trusted, not enforced
// by a foreign key.
type LogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	Kind       RefKind   `gorm:"size:20;not null" json:"kind"`
	RefID      uuid.UUID `gorm:"type:uuid;not null" json:"ref_id"`
	Servings   float64   `gorm:"type:float;not null" json:"servings"`
	Meal       string    `gorm:"size:50" json:"meal"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func (l *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
