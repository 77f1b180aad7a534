package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/models"
)

// FoodItemService handles food item CRUD. Creating or updating a food item
// with recipe metadata keeps the shared-id recipe row in sync.
type FoodItemService struct {
	db *gorm.DB
}

func NewFoodItemService(db *gorm.DB) *FoodItemService {
	return &FoodItemService{db: db}
}

// CreateInput carries the food item fields plus the optional recipe metadata
// created alongside it under the same id.
type CreateFoodItemInput struct {
	UserID             uuid.UUID
	Name               string
	Brand              string
	ServingLabel       string
	CaloriesPerServing float64
	ProteinPerServing  float64
	CarbsPerServing    float64
	FatPerServing      float64
	FiberPerServing    float64
	RecipeInstructions string
	RecipeYieldCount   int
	RecipeIngredients  []IngredientInput
}

type IngredientInput struct {
	FoodItemID uuid.UUID
	AmountG    float64
}

// Create inserts the food item and its shared-id recipe row in one
// transaction, plus any initial ingredient rows.
func (s *FoodItemService) Create(ctx context.Context, in CreateFoodItemInput) (*models.FoodItem, error) {
	if in.ServingLabel == "" {
		in.ServingLabel = "1 serving"
	}
	if in.RecipeYieldCount <= 0 {
		in.RecipeYieldCount = 1
	}
	owner := in.UserID
	item := models.FoodItem{
		UserID:             &owner,
		Name:               in.Name,
		Brand:              in.Brand,
		ServingLabel:       in.ServingLabel,
		Source:             "custom",
		CaloriesPerServing: in.CaloriesPerServing,
		ProteinPerServing:  in.ProteinPerServing,
		CarbsPerServing:    in.CarbsPerServing,
		FatPerServing:      in.FatPerServing,
		FiberPerServing:    in.FiberPerServing,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		recipe := models.Recipe{
			ID:           item.ID,
			UserID:       in.UserID,
			Name:         in.Name,
			Instructions: in.RecipeInstructions,
			YieldCount:   in.RecipeYieldCount,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for _, ing := range in.RecipeIngredients {
			if ing.FoodItemID == uuid.Nil || ing.AmountG <= 0 {
				continue
			}
			row := models.RecipeIngredient{
				RecipeID:   item.ID,
				FoodItemID: ing.FoodItemID,
				AmountG:    ing.AmountG,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *FoodItemService) List(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := s.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FoodItemService) Get(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

type UpdateFoodItemInput struct {
	Name               string
	Brand              string
	ServingLabel       string
	CaloriesPerServing float64
	ProteinPerServing  float64
	CarbsPerServing    float64
	FatPerServing      float64
	FiberPerServing    float64
	RecipeInstructions string
	RecipeYieldCount   int
}

// Update overwrites the food item fields and carries name changes over to
// the shared-id recipe row. Empty recipe fields leave the recipe untouched.
func (s *FoodItemService) Update(ctx context.Context, id uuid.UUID, in UpdateFoodItemInput) error {
	if in.ServingLabel == "" {
		in.ServingLabel = "1 serving"
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FoodItem{}).Where("id = ?", id).Updates(map[string]any{
			"name":                  in.Name,
			"brand":                 in.Brand,
			"serving_label":         in.ServingLabel,
			"calories_per_serving":  in.CaloriesPerServing,
			"protein_g_per_serving": in.ProteinPerServing,
			"carbs_g_per_serving":   in.CarbsPerServing,
			"fat_g_per_serving":     in.FatPerServing,
			"fiber_g_per_serving":   in.FiberPerServing,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		updates := map[string]any{"name": in.Name}
		if in.RecipeInstructions != "" {
			updates["instructions"] = in.RecipeInstructions
		}
		if in.RecipeYieldCount > 0 {
			updates["yield_count"] = in.RecipeYieldCount
		}
		return tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error
	})
}

func (s *FoodItemService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
