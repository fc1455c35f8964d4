package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/logger"
	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps service and engine errors onto HTTP responses.
// Parameter errors carry the offending field and value.
func respondError(c *gin.Context, err error) {
	var pe composer.ParamError
	switch {
	case errors.As(err, &pe):
		c.JSON(http.StatusBadRequest, gin.H{"error": pe.Error(), "field": pe.Field(), "value": pe.Value()})
	case errors.Is(err, composer.ErrEmptyProgression):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "chord_progression", "value": ""})
	case errors.Is(err, composer.ErrEmptyComposition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "tracks"})
	case errors.Is(err, services.ErrCompositionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrHistoryDisabled), errors.Is(err, services.ErrSharingDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInterpreterDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInterpreterFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "request_id": c.GetString("request_id")})
	}
}
