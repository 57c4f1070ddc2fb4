package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/auth"
	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	"github.com/arnavshah/noc-rotation-go/pkg/database"
	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB   *gorm.DB
	Auth *auth.Service

	// Roster, Start and Horizon define the default rotation served by GET endpoints
	Roster   []models.Worker
	Start    time.Time
	Horizon  int
	Calendar calendar.Navigator
	Cache    *rotation.Cache

	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// DefaultSchedule returns the cached schedule for the configured roster
func (h *Handler) DefaultSchedule() *models.Schedule {
	return h.Cache.Get(h.Roster, h.Start, h.Horizon)
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// respondError maps application errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.IsRateLimit(err):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key for rotation routes and tracks the key record
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		now := h.now()
		apiKey, err := database.TouchKey(h.DB, key, userID, now)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		// RateLimit caps the requests recorded per key per day
		used, err := database.RequestsOn(h.DB, apiKey.ID, now)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		if apiKey.RateLimit > 0 && used >= apiKey.RateLimit {
			respondError(c, &apperrors.RateLimitError{Limit: apiKey.RateLimit})
			c.Abort()
			return
		}

		c.Set("apiKey", apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// RecordUsage records API usage for the calling key. Failures are logged, not returned.
func (h *Handler) RecordUsage(c *gin.Context, days, workers int) {
	raw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := raw.(*database.APIKey)

	if err := database.RecordUsage(h.DB, apiKey.ID, days, workers, h.now()); err != nil {
		logger.FromContext(c).WithError(err).Warn("could not record usage")
	}
}

// Index serves the service banner
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "NOC Rotation API",
		"version": "1.0.0",
	})
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Auth.Login(h.DB, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RateLimit == 0 {
		req.RateLimit = database.DefaultRateLimit
	}

	key := h.Auth.GenerateHMACKey(req.Name)
	if _, err := database.FindKey(h.DB, key); !apperrors.IsNotFound(err) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "A key for this name already exists or was revoked"})
		return
	}
	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: database.Preview(key),
		RateLimit:  req.RateLimit,
	}
	if err := h.DB.Create(&apiKey).Error; err != nil {
		logger.FromContext(c).WithError(err).Error("could not create key record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Order("id").Find(&keys).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	res := h.DB.Delete(&database.APIKey{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, apperrors.ErrAPIKeyNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}
	if req.RateLimit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	res := h.DB.Model(&database.APIKey{}).Where("id = ?", c.Param("id")).Update("rate_limit", req.RateLimit)
	if res.Error != nil {
		respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(c, apperrors.ErrAPIKeyNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}
