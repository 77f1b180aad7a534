package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/service"
)

// PantryHandler serves the servings-on-hand tracker.
type PantryHandler struct {
	pantry      *service.PantryService
	defaultUser uuid.UUID
}

func NewPantryHandler(pantry *service.PantryService, defaultUser uuid.UUID) *PantryHandler {
	return &PantryHandler{pantry: pantry, defaultUser: defaultUser}
}

func (h *PantryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/pantry", h.List)
	r.PUT("/pantry/:foodItemID", h.Upsert)
	r.DELETE("/pantry/:foodItemID", h.Delete)
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	entries, err := h.pantry.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pantry": entries})
}

func (h *PantryHandler) Upsert(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	foodID, ok := pathID(c, "foodItemID")
	if !ok {
		return
	}
	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity < 0 {
		req.Quantity = 0
	}
	if err := h.pantry.Upsert(c.Request.Context(), userID, foodID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PantryHandler) Delete(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	foodID, ok := pathID(c, "foodItemID")
	if !ok {
		return
	}
	if err := h.pantry.Delete(c.Request.Context(), userID, foodID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
