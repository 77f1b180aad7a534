package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/service"
)

// FoodItemHandler serves food item CRUD.
type FoodItemHandler struct {
	foods       *service.FoodItemService
	defaultUser uuid.UUID
}

func NewFoodItemHandler(foods *service.FoodItemService, defaultUser uuid.UUID) *FoodItemHandler {
	return &FoodItemHandler{foods: foods, defaultUser: defaultUser}
}

func (h *FoodItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/food-items", h.Create)
	r.GET("/food-items", h.List)
	r.GET("/food-items/:id", h.Get)
	r.PUT("/food-items/:id", h.Update)
	r.DELETE("/food-items/:id", h.Delete)
}

type ingredientRequest struct {
	FoodItemID string  `json:"food_item_id"`
	AmountG    float64 `json:"amount_g"`
}

type foodItemRequest struct {
	Name               string              `json:"name" binding:"required"`
	Brand              string              `json:"brand"`
	ServingLabel       string              `json:"serving_label"`
	CaloriesPerServing float64             `json:"calories_per_serving"`
	ProteinPerServing  float64             `json:"protein_g_per_serving"`
	CarbsPerServing    float64             `json:"carbs_g_per_serving"`
	FatPerServing      float64             `json:"fat_g_per_serving"`
	FiberPerServing    float64             `json:"fiber_g_per_serving"`
	RecipeInstructions string              `json:"recipe_instructions"`
	RecipeYieldCount   int                 `json:"recipe_yield_count"`
	RecipeIngredients  []ingredientRequest `json:"recipe_ingredients"`
}

func (h *FoodItemHandler) Create(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.CreateFoodItemInput{
		UserID:             userID,
		Name:               req.Name,
		Brand:              req.Brand,
		ServingLabel:       req.ServingLabel,
		CaloriesPerServing: req.CaloriesPerServing,
		ProteinPerServing:  req.ProteinPerServing,
		CarbsPerServing:    req.CarbsPerServing,
		FatPerServing:      req.FatPerServing,
		FiberPerServing:    req.FiberPerServing,
		RecipeInstructions: req.RecipeInstructions,
		RecipeYieldCount:   req.RecipeYieldCount,
	}
	for _, ing := range req.RecipeIngredients {
		id, err := uuid.Parse(ing.FoodItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient food_item_id"})
			return
		}
		in.RecipeIngredients = append(in.RecipeIngredients, service.IngredientInput{
			FoodItemID: id, AmountG: ing.AmountG,
		})
	}
	item, err := h.foods.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *FoodItemHandler) List(c *gin.Context) {
	items, err := h.foods.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_items": items})
}

func (h *FoodItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.foods.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FoodItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.foods.Update(c.Request.Context(), id, service.UpdateFoodItemInput{
		Name:               req.Name,
		Brand:              req.Brand,
		ServingLabel:       req.ServingLabel,
		CaloriesPerServing: req.CaloriesPerServing,
		ProteinPerServing:  req.ProteinPerServing,
		CarbsPerServing:    req.CarbsPerServing,
		FatPerServing:      req.FatPerServing,
		FiberPerServing:    req.FiberPerServing,
		RecipeInstructions: req.RecipeInstructions,
		RecipeYieldCount:   req.RecipeYieldCount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *FoodItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.foods.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
