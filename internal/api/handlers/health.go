package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Features lists which optional integrations are configured
type Features struct {
	History     bool   `json:"history"`
	Storage     string `json:"storage"`
	Sharing     bool   `json:"sharing"`
	Interpreter bool   `json:"interpreter"`
	Metrics     bool   `json:"metrics"`
}

type HealthHandler struct {
	features Features
}

func NewHealthHandler(features Features) *HealthHandler {
	return &HealthHandler{features: features}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"features": h.features,
	})
}
