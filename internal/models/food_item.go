package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItem is one loggable item with per-serving macros. A food item with an
// attached Recipe row shares its ID with that row, which is how a recipe is
// represented as something that can be logged.
type FoodItem struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Name               string     `gorm:"size:255;not null" json:"name"`
	Brand              string     `gorm:"size:255" json:"brand"`
	ServingLabel       string     `gorm:"size:255;not null" json:"serving_label"`
	Source             string     `gorm:"size:50;not null;default:'custom'" json:"source"`
	CaloriesPerServing float64    `gorm:"type:float;not null" json:"calories_per_serving"`
	ProteinPerServing  float64    `gorm:"column:protein_g_per_serving;type:float;not null" json:"protein_g_per_serving"`
	CarbsPerServing    float64    `gorm:"column:carbs_g_per_serving;type:float;not null" json:"carbs_g_per_serving"`
	FatPerServing      float64    `gorm:"column:fat_g_per_serving;type:float;not null" json:"fat_g_per_serving"`
	FiberPerServing    float64    `gorm:"column:fiber_g_per_serving;type:float;not null" json:"fiber_g_per_serving"`
	CreatedAt          time.Time  `json:"created_at"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
