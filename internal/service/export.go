package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/bundle"
	"github.com/intakelog/backend/internal/models"
)

// ExportService assembles a user's full data graph into one bundle document.
// The whole read runs inside a single transaction so the bundle is a
// consistent snapshot; a failure on any collection aborts the export.
type ExportService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewExportService(db *gorm.DB, logger *logrus.Logger) *ExportService {
	return &ExportService{db: db, logger: logger}
}

// Export reads every collection in dependency order and returns the
// assembled bundle. Food items are read globally, not user-filtered, because
// they may be shared or unowned; every other collection is scoped to userID.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) (*bundle.Bundle, error) {
	out := &bundle.Bundle{
		Version:    bundle.Version,
		ExportedAt: time.Now().UTC(),
		UserID:     userID.String(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var foods []models.FoodItem
		if err := tx.Order("created_at, id").Find(&foods).Error; err != nil {
			return fmt.Errorf("export food_items: %w", err)
		}
		for _, it := range foods {
			out.FoodItems = append(out.FoodItems, toBundleFoodItem(it))
		}

		var recipes []models.Recipe
		if err := tx.Where("user_id = ?", userID).Order("created_at, id").Find(&recipes).Error; err != nil {
			return fmt.Errorf("export recipes: %w", err)
		}
		for _, it := range recipes {
			out.Recipes = append(out.Recipes, bundle.Recipe{
				ID:           it.ID.String(),
				UserID:       it.UserID.String(),
				Name:         it.Name,
				Instructions: it.Instructions,
				YieldCount:   it.YieldCount,
				CreatedAt:    it.CreatedAt,
			})
		}

		var ingredients []models.RecipeIngredient
		if err := tx.
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID).
			Order("recipe_ingredients.created_at, recipe_ingredients.id").
			Find(&ingredients).Error; err != nil {
			return fmt.Errorf("export recipe_ingredients: %w", err)
		}
		for _, it := range ingredients {
			out.RecipeIngredients = append(out.RecipeIngredients, bundle.RecipeIngredient{
				ID:         it.ID.String(),
				RecipeID:   it.RecipeID.String(),
				FoodItemID: it.FoodItemID.String(),
				AmountG:    it.AmountG,
				CreatedAt:  it.CreatedAt,
			})
		}

		var portions []models.RecipePortion
		if err := tx.
			Joins("JOIN recipes ON recipes.id = recipe_portions.recipe_id").
			Where("recipes.user_id = ?", userID).
			Order("recipe_portions.created_at, recipe_portions.id").
			Find(&portions).Error; err != nil {
			return fmt.Errorf("export recipe_portions: %w", err)
		}
		for _, it := range portions {
			out.RecipePortions = append(out.RecipePortions, bundle.RecipePortion{
				ID:           it.ID.String(),
				RecipeID:     it.RecipeID.String(),
				Name:         it.Name,
				PortionCount: it.PortionCount,
				CreatedAt:    it.CreatedAt,
			})
		}

		var presets []models.Preset
		if err := tx.Where("user_id = ?", userID).Order("created_at, id").Find(&presets).Error; err != nil {
			return fmt.Errorf("export presets: %w", err)
		}
		for _, it := range presets {
			out.Presets = append(out.Presets, bundle.Preset{
				ID:        it.ID.String(),
				UserID:    it.UserID.String(),
				Name:      it.Name,
				Pinned:    it.Pinned,
				CreatedAt: it.CreatedAt,
			})
		}

		var presetItems []models.PresetItem
		if err := tx.
			Joins("JOIN presets ON presets.id = preset_items.preset_id").
			Where("presets.user_id = ?", userID).
			Order("preset_items.created_at, preset_items.id").
			Find(&presetItems).Error; err != nil {
			return fmt.Errorf("export preset_items: %w", err)
		}
		for _, it := range presetItems {
			out.PresetItems = append(out.PresetItems, bundle.PresetItem{
				ID:        it.ID.String(),
				PresetID:  it.PresetID.String(),
				Kind:      string(it.Kind),
				RefID:     it.RefID.String(),
				Servings:  it.Servings,
				CreatedAt: it.CreatedAt,
			})
		}

		var entries []models.LogEntry
		if err := tx.Where("user_id = ?", userID).Order("occurred_at, id").Find(&entries).Error; err != nil {
			return fmt.Errorf("export log_entries: %w", err)
		}
		for _, it := range entries {
			out.LogEntries = append(out.LogEntries, bundle.LogEntry{
				ID:         it.ID.String(),
				UserID:     it.UserID.String(),
				OccurredAt: it.OccurredAt,
				Kind:       string(it.Kind),
				RefID:      it.RefID.String(),
				Servings:   it.Servings,
				Meal:       it.Meal,
				Note:       it.Note,
				CreatedAt:  it.CreatedAt,
			})
		}

		var weights []models.BodyWeight
		if err := tx.Where("user_id = ?", userID).Order("measured_at, id").Find(&weights).Error; err != nil {
			return fmt.Errorf("export body_weights: %w", err)
		}
		for _, it := range weights {
			out.BodyWeights = append(out.BodyWeights, bundle.BodyWeight{
				ID:         it.ID.String(),
				UserID:     it.UserID.String(),
				MeasuredAt: it.MeasuredAt,
				WeightKg:   it.WeightKg,
				Source:     it.Source,
				Note:       it.Note,
				CreatedAt:  it.CreatedAt,
			})
		}

		var activity []models.DailyActivity
		if err := tx.Where("user_id = ?", userID).Order("date").Find(&activity).Error; err != nil {
			return fmt.Errorf("export daily_activity: %w", err)
		}
		for _, it := range activity {
			out.DailyActivity = append(out.DailyActivity, bundle.DailyActivity{
				UserID:        it.UserID.String(),
				Date:          it.Date,
				Steps:         it.Steps,
				ActiveKcalEst: it.ActiveKcalEst,
				Source:        it.Source,
				CreatedAt:     it.CreatedAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":            userID,
		"food_items":         len(out.FoodItems),
		"recipes":            len(out.Recipes),
		"recipe_ingredients": len(out.RecipeIngredients),
		"recipe_portions":    len(out.RecipePortions),
		"presets":            len(out.Presets),
		"preset_items":       len(out.PresetItems),
		"log_entries":        len(out.LogEntries),
		"body_weights":       len(out.BodyWeights),
		"daily_activity":     len(out.DailyActivity),
	}).Debug("export assembled")
	return out, nil
}

func toBundleFoodItem(it models.FoodItem) bundle.FoodItem {
	b := bundle.FoodItem{
		ID:                 it.ID.String(),
		Name:               it.Name,
		Brand:              it.Brand,
		ServingLabel:       it.ServingLabel,
		Source:             it.Source,
		CaloriesPerServing: it.CaloriesPerServing,
		ProteinPerServing:  it.ProteinPerServing,
		CarbsPerServing:    it.CarbsPerServing,
		FatPerServing:      it.FatPerServing,
		FiberPerServing:    it.FiberPerServing,
		CreatedAt:          it.CreatedAt,
	}
	if it.UserID != nil {
		b.UserID = it.UserID.String()
	}
	return b
}
