package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe carries the cooking metadata for a food item. It deliberately reuses
// the food item's ID as its own primary key, so the two rows describe one
// logical item.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	YieldCount   int       `gorm:"not null;default:1" json:"yield_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecipeIngredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	FoodItemID uuid.UUID `gorm:"type:uuid;not null" json:"food_item_id"`
	AmountG    float64   `gorm:"type:float;not null" json:"amount_g"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipePortion is a named fraction of a recipe's yield ("half tray", "one
// muffin") that can be referenced from log entries and preset items.
type RecipePortion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PortionCount float64   `gorm:"type:float;not null" json:"portion_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *RecipePortion) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipePhoto stores the photo inline as a base64 data URL, one per recipe.
type RecipePhoto struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	PhotoData string    `gorm:"type:text;not null" json:"photo"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShoppingItem is a free-form shopping line attached to a recipe, independent
// of the structured ingredient rows.
type ShoppingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Amount    float64   `gorm:"type:float" json:"amount"`
	Unit      string    `gorm:"size:50" json:"unit"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
