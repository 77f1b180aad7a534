package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefKind tags a polymorphic reference: the kind decides which table the
// referenced ID lives in.
type RefKind string

const (
	RefFood          RefKind = "food"
	RefRecipePortion RefKind = "recipe_portion"
)

// Valid reports whether the kind is one of the known tags.
func (k RefKind) Valid() bool {
	switch k {
	case RefFood, RefRecipePortion:
		return true
	}
	return false
}

// Preset is a pinned group of items logged together with one tap.
type Preset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Pinned    bool      `gorm:"not null;default:false" json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Preset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PresetItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PresetID  uuid.UUID `gorm:"type:uuid;not null;index" json:"preset_id"`
	Kind      RefKind   `gorm:"size:20;not null" json:"kind"`
	RefID     uuid.UUID `gorm:"type:uuid;not null" json:"ref_id"`
	Servings  float64   `gorm:"type:float;not null" json:"servings"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *PresetItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
