package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/models"
	"github.com/intakelog/backend/internal/service"
)

// PresetHandler serves meal presets and applying them to the log.
type PresetHandler struct {
	presets     *service.PresetService
	defaultUser uuid.UUID
}

func NewPresetHandler(presets *service.PresetService, defaultUser uuid.UUID) *PresetHandler {
	return &PresetHandler{presets: presets, defaultUser: defaultUser}
}

func (h *PresetHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/presets", h.Create)
	r.GET("/presets", h.List)
	r.POST("/presets/:id/apply", h.Apply)
}

type presetItemRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	RefID    string  `json:"ref_id" binding:"required"`
	Servings float64 `json:"servings"`
}

type presetRequest struct {
	Name   string              `json:"name" binding:"required"`
	Pinned bool                `json:"pinned"`
	Items  []presetItemRequest `json:"items"`
}

func (h *PresetHandler) Create(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items := make([]service.PresetItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		refID, err := uuid.Parse(it.RefID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ref_id"})
			return
		}
		items = append(items, service.PresetItemInput{
			Kind:     models.RefKind(it.Kind),
			RefID:    refID,
			Servings: it.Servings,
		})
	}
	preset, err := h.presets.Create(c.Request.Context(), userID, req.Name, req.Pinned, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func (h *PresetHandler) List(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	presets, err := h.presets.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (h *PresetHandler) Apply(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	logged, err := h.presets.Apply(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "logged": logged})
}
