package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/noc-rotation-go/pkg/auth"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
)

func main() {
	config.LoadEnvFiles()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <userID>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not set")
		os.Exit(1)
	}

	userID := os.Args[1]
	svc := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret, cfg.BcryptCost)
	fmt.Printf("Generated Key for %s:\n%s\n", userID, svc.GenerateHMACKey(userID))
}
