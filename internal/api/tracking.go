package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/service"
)

// TrackingHandler serves body weight and daily activity recording.
type TrackingHandler struct {
	tracking    *service.TrackingService
	defaultUser uuid.UUID
}

func NewTrackingHandler(tracking *service.TrackingService, defaultUser uuid.UUID) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, defaultUser: defaultUser}
}

func (h *TrackingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/weights", h.RecordWeight)
	r.GET("/weights", h.Weights)
	r.POST("/activity", h.RecordActivity)
	r.GET("/activity/:date", h.Activity)
}

type weightRequest struct {
	MeasuredAt time.Time `json:"measured_at"`
	WeightKg   float64   `json:"weight_kg" binding:"required"`
	Note       string    `json:"note"`
}

func (h *TrackingHandler) RecordWeight(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.tracking.RecordWeight(c.Request.Context(), service.BodyWeightInput{
		UserID:     userID,
		MeasuredAt: req.MeasuredAt,
		WeightKg:   req.WeightKg,
		Note:       req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *TrackingHandler) Weights(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
		return
	}
	rows, err := h.tracking.WeightsInRange(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": rows})
}

type activityRequest struct {
	Date          string  `json:"date" binding:"required"`
	Steps         int     `json:"steps"`
	ActiveKcalEst float64 `json:"active_calories_kcal_est"`
}

func (h *TrackingHandler) RecordActivity(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.tracking.RecordActivity(c.Request.Context(), service.DailyActivityInput{
		UserID:        userID,
		Date:          req.Date,
		Steps:         req.Steps,
		ActiveKcalEst: req.ActiveKcalEst,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TrackingHandler) Activity(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	row, err := h.tracking.Activity(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
