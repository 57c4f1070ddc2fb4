package main

import (
	"github.com/arnavshah/noc-rotation-go/pkg/app"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/arnavshah/noc-rotation-go/pkg/routes"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger.Setup(cfg.LogLevel)

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	h, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not initialize service")
	}

	r := routes.Setup(h)

	logrus.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("could not run server")
	}
}
