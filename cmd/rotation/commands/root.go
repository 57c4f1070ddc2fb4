package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/app"
	"github.com/arnavshah/noc-rotation-go/pkg/config"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand
type options struct {
	rosterPath string
	start      string
	horizon    int
	jsonOutput bool
}

// NewRootCmd builds the rotation command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rotation",
		Short: "NOC on-call rotation tool",
		Long: `rotation generates the round-robin on-call schedule for the NOC roster.

Each day one available worker is picked per shift category (night, early,
day, evening), cycling through the workers in roster order.

Examples:
  rotation generate                          # Default roster, configured window
  rotation generate --start 2025-12-01 -n 14 # Two weeks from December 1st
  rotation day 2025-11-18                    # Who is on call that day
  rotation month 2025-12                     # Month grid
  rotation validate roster.csv               # Check a roster file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.SetupWithOutput(cfg.LogLevel, cmd.ErrOrStderr())
			if opts.rosterPath == "" {
				opts.rosterPath = cfg.RosterPath
			}
			if opts.start == "" {
				opts.start = cfg.RotationStart
			}
			if opts.horizon == 0 {
				opts.horizon = cfg.HorizonDays
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.rosterPath, "roster", "r", "", "Roster file (.yaml, .json or .csv); defaults to the built-in roster")
	flags.StringVarP(&opts.start, "start", "s", "", "First rotation date (YYYY-MM-DD)")
	flags.IntVarP(&opts.horizon, "horizon", "n", 0, "Number of days to generate")
	flags.BoolVarP(&opts.jsonOutput, "json", "j", false, "Output as JSON")

	root.AddCommand(
		newGenerateCmd(opts),
		newDayCmd(opts),
		newMonthCmd(opts),
		newValidateCmd(opts),
	)
	return root
}

// schedule loads the roster and generates the rotation for the current flags
func (o *options) schedule() (*models.Schedule, []models.Worker, error) {
	workers, err := app.LoadRoster(o.rosterPath)
	if err != nil {
		return nil, nil, err
	}
	start, err := models.ParseDate(o.start)
	if err != nil {
		return nil, nil, fmt.Errorf("--start: %w", err)
	}
	if o.horizon <= 0 {
		return nil, nil, fmt.Errorf("--horizon must be positive, got %d", o.horizon)
	}
	return rotation.Generate(workers, start, o.horizon), workers, nil
}

// today is the first day of the generated window, or zero when --start is invalid
func (o *options) today() time.Time {
	t, err := models.ParseDate(o.start)
	if err != nil {
		return time.Time{}
	}
	return t
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
