package handlers

import (
	"net/http"
	"strconv"

	"github.com/arnavshah/noc-rotation-go/pkg/database"
	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/gin-gonic/gin"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	raw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := raw.(*database.APIKey)

	usage, err := database.UsageHistory(h.DB, apiKey.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals":        database.Totals(usage),
	})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewValidationError("id", "must be a positive integer"))
		return
	}

	usage, err := database.UsageHistory(h.DB, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage, "totals": database.Totals(usage)})
}
