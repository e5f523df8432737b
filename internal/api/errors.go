package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/domain"
)

// respondError maps a service error to its HTTP status and JSON body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
		return
	}

	var storageErr *domain.StorageFault
	if errors.As(err, &storageErr) {
		log.Error().Err(storageErr.Err).Str("op", storageErr.Op).Msg("Storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Server error",
			"error":   domain.ErrStorage.Error(),
		})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode(), gin.H{"message": httpErr.Error()})
		return
	}

	log.Error().Err(err).Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Server error",
		"error":   err.Error(),
	})
}

// badRequest answers malformed request bodies
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
