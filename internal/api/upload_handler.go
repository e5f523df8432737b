package api

import (
	"errors"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/service"
)

// multipartOverhead leaves room for form boundaries and extra fields
const multipartOverhead = 1 << 20

// UploadHandler handles image uploads
type UploadHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload with a multipart "file" field and an
// optional "folder" field
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.cfg.Upload.MaxUploadSize
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": "File too large. Maximum size is " + humanize.Bytes(uint64(limit)),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No file uploaded",
		})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = c.Query("folder")
	}

	result, err := h.services.Upload.SaveImage(c.Request.Context(), folder, header)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("filename", header.Filename).
		Str("url", result.URL).
		Msg("File uploaded")

	c.JSON(http.StatusOK, result)
}
