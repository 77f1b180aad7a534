package models

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem tracks how many servings of a food item are on hand, keyed by
// (user, food item).
type PantryItem struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FoodItemID uuid.UUID `gorm:"type:uuid;primaryKey" json:"food_item_id"`
	Quantity   float64   `gorm:"type:float;not null;default:0" json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}
