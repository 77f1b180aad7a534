package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/service"
)

// LogHandler serves the consumption log and its day rollups.
type LogHandler struct {
	logs        *service.LogService
	pantry      *service.PantryService
	defaultUser uuid.UUID
}

func NewLogHandler(logs *service.LogService, pantry *service.PantryService, defaultUser uuid.UUID) *LogHandler {
	return &LogHandler{logs: logs, pantry: pantry, defaultUser: defaultUser}
}

func (h *LogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/logs", h.Create)
	r.DELETE("/logs/:id", h.Delete)
	r.GET("/days/:date", h.Day)
	r.GET("/days/:date/totals", h.DayTotals)
	r.GET("/days", h.Range)
}

type logRequest struct {
	FoodItemID string    `json:"food_item_id" binding:"required"`
	OccurredAt time.Time `json:"occurred_at"`
	Servings   float64   `json:"servings"`
	Meal       string    `json:"meal"`
	Note       string    `json:"note"`
}

func (h *LogHandler) Create(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	foodID, err := uuid.Parse(req.FoodItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food_item_id"})
		return
	}
	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}
	entry, err := h.logs.LogFood(c.Request.Context(), service.LogFoodInput{
		UserID:     userID,
		OccurredAt: req.OccurredAt,
		FoodItemID: foodID,
		Servings:   servings,
		Meal:       req.Meal,
		Note:       req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	// Logging consumption draws the servings down from the pantry when a
	// pantry row exists.
	if err := h.pantry.Deduct(c.Request.Context(), userID, foodID, servings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *LogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.logs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LogHandler) Day(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	entries, err := h.logs.Day(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *LogHandler) DayTotals(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	totals, err := h.logs.DayTotals(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *LogHandler) Range(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}
	days, err := h.logs.Range(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
