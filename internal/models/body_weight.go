package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BodyWeight struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MeasuredAt time.Time `gorm:"not null;index" json:"measured_at"`
	WeightKg   float64   `gorm:"type:float;not null" json:"weight_kg"`
	Source     string    `gorm:"size:50;not null;default:'manual'" json:"source"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b *BodyWeight) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
