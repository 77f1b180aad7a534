package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/bundle"
	"github.com/intakelog/backend/internal/service"
)

// requestUser resolves the acting user for a request. The user_id query
// parameter wins when present; otherwise the configured default applies.
func requestUser(c *gin.Context, fallback uuid.UUID) (uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return fallback, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a UUID path parameter, responding 400 on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var rowErr *service.RowError
	switch {
	case errors.Is(err, bundle.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rowErr):
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidDate) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":        rowErr.Error(),
			"collection":   rowErr.Collection,
			"row_id":       rowErr.RowID,
			"rows_written": rowErr.Staged,
		})
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidPresetKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
