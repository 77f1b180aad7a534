package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/intakelog/backend/internal/models"
	"github.com/intakelog/backend/internal/testdb"
)

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{DisplayName: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedFood(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, kcal float64) *models.FoodItem {
	t.Helper()
	item, err := NewFoodItemService(db).Create(context.Background(), CreateFoodItemInput{
		UserID:             userID,
		Name:               name,
		CaloriesPerServing: kcal,
		ProteinPerServing:  kcal / 20,
	})
	require.NoError(t, err)
	return item
}

func TestFoodItemCreateMakesSharedRecipe(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)

	item, err := NewFoodItemService(db).Create(context.Background(), CreateFoodItemInput{
		UserID:             userID,
		Name:               "Overnight Oats",
		CaloriesPerServing: 320,
		RecipeInstructions: "Soak overnight.",
		RecipeYieldCount:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "1 serving", item.ServingLabel)
	assert.Equal(t, "custom", item.Source)

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", item.ID).Error)
	assert.Equal(t, "Overnight Oats", recipe.Name)
	assert.Equal(t, "Soak overnight.", recipe.Instructions)
	assert.Equal(t, 2, recipe.YieldCount)
}

func TestFoodItemUpdateSyncsRecipeName(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewFoodItemService(db)
	item := seedFood(t, db, userID, "Oats", 150)

	err := svc.Update(context.Background(), item.ID, UpdateFoodItemInput{
		Name:               "Rolled Oats",
		CaloriesPerServing: 155,
	})
	require.NoError(t, err)

	var got models.FoodItem
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, "Rolled Oats", got.Name)
	assert.Equal(t, 155.0, got.CaloriesPerServing)

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", item.ID).Error)
	assert.Equal(t, "Rolled Oats", recipe.Name)
}

func TestFoodItemUpdateMissing(t *testing.T) {
	db := testdb.New(t)
	err := NewFoodItemService(db).Update(context.Background(), uuid.New(), UpdateFoodItemInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoodItemGetAndDelete(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewFoodItemService(db)
	item := seedFood(t, db, userID, "Eggs", 220)

	got, err := svc.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eggs", got.Name)

	require.NoError(t, svc.Delete(context.Background(), item.ID))
	_, err = svc.Get(context.Background(), item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), item.ID), ErrNotFound)
}

func TestEnsureRecipePagesBackfills(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)

	// A food item written without its recipe row, as older data had.
	owner := userID
	orphan := models.FoodItem{UserID: &owner, Name: "Banana", ServingLabel: "1 medium"}
	require.NoError(t, db.Create(&orphan).Error)

	require.NoError(t, NewRecipeService(db).EnsureRecipePages(context.Background(), defaultUser))

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", orphan.ID).Error)
	assert.Equal(t, "Banana", recipe.Name)
	assert.Equal(t, userID, recipe.UserID)
	assert.Equal(t, 1, recipe.YieldCount)

	// Running again is a no-op.
	require.NoError(t, NewRecipeService(db).EnsureRecipePages(context.Background(), defaultUser))
	var n int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", orphan.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRecipeReplaceIngredients(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewRecipeService(db)

	dish := seedFood(t, db, userID, "Granola", 400)
	oats := seedFood(t, db, userID, "Oats", 150)
	honey := seedFood(t, db, userID, "Honey", 60)

	written, err := svc.ReplaceIngredients(context.Background(), userID, dish.ID, []IngredientInput{
		{FoodItemID: oats.ID, AmountG: 300},
		{FoodItemID: honey.ID, AmountG: 50},
		{FoodItemID: uuid.Nil, AmountG: 10}, // skipped
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	detail, err := svc.Get(context.Background(), userID, dish.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Ingredients, 2)

	// Replacing again swaps the whole set.
	written, err = svc.ReplaceIngredients(context.Background(), userID, dish.ID, []IngredientInput{
		{FoodItemID: oats.ID, AmountG: 250},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	detail, err = svc.Get(context.Background(), userID, dish.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, 250.0, detail.Ingredients[0].Ingredient.AmountG)
}

func TestRecipePhotoRoundTrip(t *testing.T) {
	db := testdb.New(t)
	userID := seedUser(t, db)
	svc := NewRecipeService(db)
	dish := seedFood(t, db, userID, "Curry", 500)

	_, err := svc.GetPhoto(context.Background(), dish.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.PutPhoto(context.Background(), dish.ID, "data:image/png;base64,AAAA"))
	got, err := svc.GetPhoto(context.Background(), dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got)

	// Overwrite in place.
	require.NoError(t, svc.PutPhoto(context.Background(), dish.ID, "data:image/png;base64,BBBB"))
	got, err = svc.GetPhoto(context.Background(), dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,BBBB", got)

	require.NoError(t, svc.DeletePhoto(context.Background(), dish.ID))
	_, err = svc.GetPhoto(context.Background(), dish.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
