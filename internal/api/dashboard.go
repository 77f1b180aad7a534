package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/models"
	"github.com/intakelog/backend/internal/service"
)

// DashboardHandler serves the combined day view: macro totals, activity, and
// the day's weight measurements in one response.
type DashboardHandler struct {
	logs        *service.LogService
	tracking    *service.TrackingService
	loc         *time.Location
	defaultUser uuid.UUID
}

func NewDashboardHandler(logs *service.LogService, tracking *service.TrackingService, loc *time.Location, defaultUser uuid.UUID) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{logs: logs, tracking: tracking, loc: loc, defaultUser: defaultUser}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Today)
	r.GET("/dashboard/:date", h.Day)
}

// Today serves the dashboard for the current day in the app timezone.
func (h *DashboardHandler) Today(c *gin.Context) {
	h.serve(c, time.Now().In(h.loc).Format(models.DateLayout))
}

func (h *DashboardHandler) Day(c *gin.Context) {
	h.serve(c, c.Param("date"))
}

func (h *DashboardHandler) serve(c *gin.Context, date string) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	totals, err := h.logs.DayTotals(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	activity, err := h.tracking.Activity(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	start, _ := time.ParseInLocation(models.DateLayout, date, h.loc)
	weights, err := h.tracking.WeightsInRange(c.Request.Context(), userID, start, start.Add(24*time.Hour))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"totals":   totals,
		"activity": activity,
		"weights":  weights,
	})
}
