package app

import (
	"fmt"

	"github.com/arnavshah/noc-rotation-go/pkg/auth"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
	"github.com/arnavshah/noc-rotation-go/pkg/database"
	"github.com/arnavshah/noc-rotation-go/pkg/handlers"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/roster"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/sirupsen/logrus"
)

// LoadRoster returns the roster at path, or the embedded roster when path is empty
func LoadRoster(path string) ([]models.Worker, error) {
	if path == "" {
		return roster.Default()
	}
	return roster.Load(path)
}

// New opens the database, seeds the admin user and warms the default schedule
func New(cfg *config.Config) (*handlers.Handler, error) {
	workers, err := LoadRoster(cfg.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret, cfg.BcryptCost)
	if err := authSvc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}

	h := &handlers.Handler{
		DB:       db,
		Auth:     authSvc,
		Roster:   workers,
		Start:    cfg.Start(),
		Horizon:  cfg.HorizonDays,
		Calendar: cfg.Navigator(),
		Cache:    rotation.NewCache(),
	}

	s := h.DefaultSchedule()
	logrus.WithFields(logrus.Fields{
		"workers": len(workers),
		"start":   s.StartDate,
		"days":    len(s.Days),
		"gaps":    len(s.Gaps),
	}).Info("default rotation generated")

	return h, nil
}
