package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/service"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/admin/export?collection=...&format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	ctx := c.Request.Context()

	collection := c.Query("collection")
	switch collection {
	case service.CollectionProjects, service.CollectionSkills, service.CollectionBlogs:
	case "":
		c.JSON(http.StatusBadRequest, gin.H{"message": "collection parameter is required (projects, skills, blogs)"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "collection must be one of: projects, skills, blogs"})
		return
	}

	format := c.Query("format")
	if format == "" {
		format = service.FormatNDJSON // Default to NDJSON for streaming
	}
	if format != service.FormatNDJSON && format != service.FormatJSON && format != service.FormatCSV {
		c.JSON(http.StatusBadRequest, gin.H{"message": "format must be one of: ndjson, json, csv"})
		return
	}

	// CSV only supported for skills
	if format == service.FormatCSV && collection != service.CollectionSkills {
		c.JSON(http.StatusBadRequest, gin.H{"message": "CSV format only supported for skills export"})
		return
	}

	h.log.Info().
		Str("collection", collection).
		Str("format", format).
		Msg("Starting streaming export")

	if err := h.services.Export.Stream(ctx, c.Writer, collection, format); err != nil {
		h.log.Error().Err(err).Str("collection", collection).Msg("Export failed")
		// Can't return error JSON after streaming has started
		return
	}
}
