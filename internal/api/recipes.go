package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/service"
)

// RecipeHandler serves recipe reads/updates, ingredients, photos, and
// shopping items.
type RecipeHandler struct {
	recipes     *service.RecipeService
	defaultUser uuid.UUID
}

func NewRecipeHandler(recipes *service.RecipeService, defaultUser uuid.UUID) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, defaultUser: defaultUser}
}

func (h *RecipeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/recipes", h.List)
	r.GET("/recipes/combined-ingredients", h.CombinedIngredients)
	r.GET("/recipes/shopping-list", h.ShoppingList)
	r.GET("/recipes/:id", h.Get)
	r.PUT("/recipes/:id", h.Update)
	r.POST("/recipes/:id/ingredients", h.AddIngredient)
	r.PUT("/recipes/:id/ingredients", h.ReplaceIngredients)
	r.PUT("/recipes/:id/ingredients/:ingredientID", h.UpdateIngredient)
	r.DELETE("/recipes/:id/ingredients/:ingredientID", h.DeleteIngredient)
	r.GET("/recipes/:id/portions", h.Portions)
	r.POST("/recipes/:id/portions", h.AddPortion)
	r.DELETE("/recipes/:id/portions/:portionID", h.DeletePortion)
	r.GET("/recipes/:id/photo", h.GetPhoto)
	r.PUT("/recipes/:id/photo", h.PutPhoto)
	r.DELETE("/recipes/:id/photo", h.DeletePhoto)
	r.GET("/recipes/:id/shopping-items", h.ShoppingItems)
	r.PUT("/recipes/:id/shopping-items", h.ReplaceShoppingItems)
}

func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	recipes, err := h.recipes.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type recipeUpdateRequest struct {
	Name         string `json:"name" binding:"required"`
	Instructions string `json:"instructions"`
	YieldCount   int    `json:"yield_count"`
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req recipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.recipes.Update(c.Request.Context(), userID, id, req.Name, req.Instructions, req.YieldCount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	foodID, err := uuid.Parse(req.FoodItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food_item_id"})
		return
	}
	row, err := h.recipes.AddIngredient(c.Request.Context(), userID, id, service.IngredientInput{
		FoodItemID: foodID, AmountG: req.AmountG,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *RecipeHandler) ReplaceIngredients(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Ingredients []ingredientRequest `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ingredients := make([]service.IngredientInput, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		foodID, err := uuid.Parse(ing.FoodItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food_item_id"})
			return
		}
		ingredients = append(ingredients, service.IngredientInput{FoodItemID: foodID, AmountG: ing.AmountG})
	}
	written, err := h.recipes.ReplaceIngredients(c.Request.Context(), userID, id, ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ingredients": written})
}

func (h *RecipeHandler) UpdateIngredient(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(c, "ingredientID")
	if !ok {
		return
	}
	var req struct {
		AmountG float64 `json:"amount_g"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.recipes.UpdateIngredient(c.Request.Context(), userID, id, ingredientID, req.AmountG); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) DeleteIngredient(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathID(c, "ingredientID")
	if !ok {
		return
	}
	if err := h.recipes.DeleteIngredient(c.Request.Context(), userID, id, ingredientID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CombinedIngredients aggregates ingredient totals across the recipes named
// in the ids query parameter (comma separated).
func (h *RecipeHandler) CombinedIngredients(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	ids, ok := parseIDList(c)
	if !ok {
		return
	}
	out, err := h.recipes.CombinedIngredients(c.Request.Context(), userID, ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": out})
}

func (h *RecipeHandler) Portions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.recipes.Portions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portions": rows})
}

func (h *RecipeHandler) AddPortion(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name         string  `json:"name" binding:"required"`
		PortionCount float64 `json:"portion_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.recipes.AddPortion(c.Request.Context(), userID, id, req.Name, req.PortionCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *RecipeHandler) DeletePortion(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	portionID, ok := pathID(c, "portionID")
	if !ok {
		return
	}
	if err := h.recipes.DeletePortion(c.Request.Context(), userID, id, portionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) GetPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	data, err := h.recipes.GetPhoto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": data})
}

func (h *RecipeHandler) PutPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Photo string `json:"photo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.recipes.PutPhoto(c.Request.Context(), id, req.Photo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) DeletePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeletePhoto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) ShoppingItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.recipes.ShoppingItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_items": items})
}

type shoppingItemRequest struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	SortOrder int     `json:"sort_order"`
}

func (h *RecipeHandler) ReplaceShoppingItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Items []shoppingItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items := make([]service.ShoppingItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.ShoppingItemInput{
			Name: it.Name, Amount: it.Amount, Unit: it.Unit, SortOrder: it.SortOrder,
		})
	}
	if err := h.recipes.ReplaceShoppingItems(c.Request.Context(), id, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RecipeHandler) ShoppingList(c *gin.Context) {
	ids, ok := parseIDList(c)
	if !ok {
		return
	}
	lines, err := h.recipes.ShoppingList(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": lines})
}

// parseIDList reads the ids query parameter as comma-separated UUIDs.
func parseIDList(c *gin.Context) ([]uuid.UUID, bool) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids query parameter is required"})
		return nil, false
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id " + part})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
