package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/intakelog/backend/internal/models"
)

// RecipeService handles recipe reads/updates, ingredient rows, portions,
// photos, and the free-form shopping items attached to recipes. Recipe
// creation lives on FoodItemService, since a recipe always rides on a
// food item with the same id.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeSummary is a recipe joined with its food item macros for list views.
type RecipeSummary struct {
	Recipe          models.Recipe
	Food            models.FoodItem
	IngredientCount int
}

func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]RecipeSummary, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	out := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		var food models.FoodItem
		if err := s.db.WithContext(ctx).First(&food, "id = ?", r.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
			Where("recipe_id = ?", r.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		out = append(out, RecipeSummary{Recipe: r, Food: food, IngredientCount: int(count)})
	}
	return out, nil
}

type RecipeDetail struct {
	Recipe      models.Recipe
	Ingredients []IngredientDetail
}

type IngredientDetail struct {
	Ingredient models.RecipeIngredient
	FoodName   string
	Brand      string
}

func (s *RecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rows []models.RecipeIngredient
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", id).Find(&rows).Error; err != nil {
		return nil, err
	}
	detail := &RecipeDetail{Recipe: recipe}
	for _, row := range rows {
		var food models.FoodItem
		name, brand := "", ""
		if err := s.db.WithContext(ctx).First(&food, "id = ?", row.FoodItemID).Error; err == nil {
			name, brand = food.Name, food.Brand
		}
		detail.Ingredients = append(detail.Ingredients, IngredientDetail{
			Ingredient: row, FoodName: name, Brand: brand,
		})
	}
	return detail, nil
}

func (s *RecipeService) Update(ctx context.Context, userID, id uuid.UUID, name, instructions string, yieldCount int) error {
	if yieldCount <= 0 {
		yieldCount = 1
	}
	res := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": name, "instructions": instructions, "yield_count": yieldCount})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RecipeService) exists(ctx context.Context, userID, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RecipeService) AddIngredient(ctx context.Context, userID, recipeID uuid.UUID, in IngredientInput) (*models.RecipeIngredient, error) {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	row := models.RecipeIngredient{RecipeID: recipeID, FoodItemID: in.FoodItemID, AmountG: in.AmountG}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *RecipeService) UpdateIngredient(ctx context.Context, userID, recipeID, ingredientID uuid.UUID, amountG float64) error {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("id = ? AND recipe_id = ?", ingredientID, recipeID).
		Update("amount_g", amountG)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient rows for the given set in
// one transaction and returns how many were written.
func (s *RecipeService) ReplaceIngredients(ctx context.Context, userID, recipeID uuid.UUID, ingredients []IngredientInput) (int, error) {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return 0, err
	}
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, in := range ingredients {
			if in.FoodItemID == uuid.Nil || in.AmountG <= 0 {
				continue
			}
			row := models.RecipeIngredient{RecipeID: recipeID, FoodItemID: in.FoodItemID, AmountG: in.AmountG}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *RecipeService) DeleteIngredient(ctx context.Context, userID, recipeID, ingredientID uuid.UUID) error {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND recipe_id = ?", ingredientID, recipeID).
		Delete(&models.RecipeIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CombinedIngredient is one food item's total grams across a set of recipes.
type CombinedIngredient struct {
	FoodItemID uuid.UUID `json:"food_item_id"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	TotalG     float64   `json:"total_g"`
}

// CombinedIngredients aggregates ingredient amounts per food item across the
// given recipes, for building a combined shopping view.
func (s *RecipeService) CombinedIngredients(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) ([]CombinedIngredient, error) {
	var out []CombinedIngredient
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Select("food_items.id AS food_item_id, food_items.name AS name, food_items.brand AS brand, SUM(recipe_ingredients.amount_g) AS total_g").
		Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
		Joins("JOIN food_items ON food_items.id = recipe_ingredients.food_item_id").
		Where("recipes.user_id = ? AND recipes.id IN ?", userID, recipeIDs).
		Group("food_items.id, food_items.name, food_items.brand").
		Order("food_items.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureRecipePages backfills a recipe row for every food item that lacks
// one, so each item has a page to hang instructions and photos on. Run at
// startup.
func (s *RecipeService) EnsureRecipePages(ctx context.Context, defaultUserID uuid.UUID) error {
	var foods []models.FoodItem
	if err := s.db.WithContext(ctx).
		Where("id NOT IN (?)", s.db.Model(&models.Recipe{}).Select("id")).
		Find(&foods).Error; err != nil {
		return err
	}
	for _, f := range foods {
		owner := defaultUserID
		if f.UserID != nil {
			owner = *f.UserID
		}
		recipe := models.Recipe{
			ID:         f.ID,
			UserID:     owner,
			Name:       f.Name,
			YieldCount: 1,
			CreatedAt:  f.CreatedAt,
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&recipe).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) Portions(ctx context.Context, recipeID uuid.UUID) ([]models.RecipePortion, error) {
	var rows []models.RecipePortion
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).
		Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddPortion creates a named fraction of the recipe's yield that log entries
// and preset items can reference.
func (s *RecipeService) AddPortion(ctx context.Context, userID, recipeID uuid.UUID, name string, portionCount float64) (*models.RecipePortion, error) {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	row := models.RecipePortion{RecipeID: recipeID, Name: name, PortionCount: portionCount}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *RecipeService) DeletePortion(ctx context.Context, userID, recipeID, portionID uuid.UUID) error {
	if err := s.exists(ctx, userID, recipeID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND recipe_id = ?", portionID, recipeID).
		Delete(&models.RecipePortion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RecipeService) GetPhoto(ctx context.Context, recipeID uuid.UUID) (string, error) {
	var photo models.RecipePhoto
	if err := s.db.WithContext(ctx).First(&photo, "recipe_id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return photo.PhotoData, nil
}

func (s *RecipeService) PutPhoto(ctx context.Context, recipeID uuid.UUID, data string) error {
	photo := models.RecipePhoto{RecipeID: recipeID, PhotoData: data}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"photo_data", "updated_at"}),
	}).Create(&photo).Error
}

func (s *RecipeService) DeletePhoto(ctx context.Context, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.RecipePhoto{}, "recipe_id = ?", recipeID).Error
}

func (s *RecipeService) ShoppingItems(ctx context.Context, recipeID uuid.UUID) ([]models.ShoppingItem, error) {
	var items []models.ShoppingItem
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).
		Order("sort_order, created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type ShoppingItemInput struct {
	Name      string
	Amount    float64
	Unit      string
	SortOrder int
}

// ReplaceShoppingItems swaps the recipe's shopping lines for the given set.
// Blank names are skipped; a zero sort order falls back to list position.
func (s *RecipeService) ReplaceShoppingItems(ctx context.Context, recipeID uuid.UUID, items []ShoppingItemInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingItem{}).Error; err != nil {
			return err
		}
		for i, in := range items {
			name := strings.TrimSpace(in.Name)
			if name == "" {
				continue
			}
			order := in.SortOrder
			if order == 0 {
				order = i
			}
			row := models.ShoppingItem{
				RecipeID: recipeID, Name: name, Amount: in.Amount, Unit: in.Unit, SortOrder: order,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ShoppingListLine is one shopping item with the recipe it came from.
type ShoppingListLine struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	RecipeName string  `json:"recipe_name"`
}

func (s *RecipeService) ShoppingList(ctx context.Context, recipeIDs []uuid.UUID) ([]ShoppingListLine, error) {
	var out []ShoppingListLine
	err := s.db.WithContext(ctx).Model(&models.ShoppingItem{}).
		Select("shopping_items.name AS name, shopping_items.amount AS amount, shopping_items.unit AS unit, recipes.name AS recipe_name").
		Joins("JOIN recipes ON recipes.id = shopping_items.recipe_id").
		Where("shopping_items.recipe_id IN ?", recipeIDs).
		Order("shopping_items.name, shopping_items.unit").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
