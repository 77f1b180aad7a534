package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intakelog/backend/internal/models"
)

// PantryService tracks servings on hand per food item.
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// PantryEntry is a pantry row joined with its food item for list views.
type PantryEntry struct {
	Item models.PantryItem
	Food models.FoodItem
}

func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]PantryEntry, error) {
	var rows []models.PantryItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]PantryEntry, 0, len(rows))
	for _, row := range rows {
		var food models.FoodItem
		if err := s.db.WithContext(ctx).First(&food, "id = ?", row.FoodItemID).Error; err != nil {
			continue
		}
		out = append(out, PantryEntry{Item: row, Food: food})
	}
	return out, nil
}

func (s *PantryService) Upsert(ctx context.Context, userID, foodItemID uuid.UUID, quantity float64) error {
	row := models.PantryItem{UserID: userID, FoodItemID: foodItemID, Quantity: quantity}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "food_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&row).Error
}

func (s *PantryService) Delete(ctx context.Context, userID, foodItemID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND food_item_id = ?", userID, foodItemID).
		Delete(&models.PantryItem{}).Error
}

// Deduct subtracts logged servings from the pantry row, flooring at zero.
// Items without a pantry row are ignored.
func (s *PantryService) Deduct(ctx context.Context, userID, foodItemID uuid.UUID, servings float64) error {
	var row models.PantryItem
	err := s.db.WithContext(ctx).
		First(&row, "user_id = ? AND food_item_id = ?", userID, foodItemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	quantity := row.Quantity - servings
	if quantity < 0 {
		quantity = 0
	}
	return s.db.WithContext(ctx).Model(&models.PantryItem{}).
		Where("user_id = ? AND food_item_id = ?", userID, foodItemID).
		Update("quantity", quantity).Error
}
