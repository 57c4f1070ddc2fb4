package routes

import (
	"github.com/arnavshah/noc-rotation-go/pkg/handlers"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Setup registers every route on a new engine
func Setup(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery())

	r.GET("/", h.Index)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Rotation Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/rotation", h.DefaultRotation)
		api.GET("/rotation/:date", h.RotationDay)
		api.GET("/calendar/:month", h.CalendarMonth)
		api.POST("/rotation", h.ScheduleJSON)
		api.POST("/rotation/csv", h.ScheduleCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
