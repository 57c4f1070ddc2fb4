package main

import (
	"os"

	"github.com/arnavshah/noc-rotation-go/cmd/rotation/commands"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
	"github.com/pterm/pterm"
)

func main() {
	config.LoadEnvFiles()

	if err := commands.NewRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
