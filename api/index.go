package handler

import (
	"net/http"

	"github.com/arnavshah/noc-rotation-go/pkg/app"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/arnavshah/noc-rotation-go/pkg/routes"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var engine *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger.Setup(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	h, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not initialize service")
	}
	engine = routes.Setup(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r *http.Request) {
	engine.ServeHTTP(w, r)
}
