package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intakelog/backend/internal/bundle"
	"github.com/intakelog/backend/internal/service"
)

// DataHandler serves full-database export and import plus the markdown
// archive companion.
type DataHandler struct {
	export      *service.ExportService
	importer    *service.ImportService
	markdown    *service.MarkdownExportService
	defaultUser uuid.UUID
}

func NewDataHandler(export *service.ExportService, importer *service.ImportService, markdown *service.MarkdownExportService, defaultUser uuid.UUID) *DataHandler {
	return &DataHandler{export: export, importer: importer, markdown: markdown, defaultUser: defaultUser}
}

func (h *DataHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/export", h.Export)
	r.POST("/import", h.Import)
	r.GET("/export/markdown", h.ExportMarkdown)
}

// Export streams the full bundle as a JSON download.
func (h *DataHandler) Export(c *gin.Context) {
	userID, ok := requestUser(c, h.defaultUser)
	if !ok {
		return
	}
	b, err := h.export.Export(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := bundle.Encode(b)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := "intakelog-export-" + time.Now().UTC().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import replays an uploaded bundle. The optional user_id query parameter
// overrides both the bundle's recorded user and the configured default.
func (h *DataHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	b, err := bundle.Decode(data)
	if err != nil {
		respondError(c, err)
		return
	}
	written, err := h.importer.Import(c.Request.Context(), b, c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows_written": written})
}

// ExportMarkdown returns a zip of per-day markdown pages for [from, to].
func (h *DataHandler) ExportMarkdown(c *gin.Context) {
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
	archive, err := h.markdown.Export(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := "intakelog-" + from + "-" + to + ".zip"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
