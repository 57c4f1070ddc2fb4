package commands

import (
	"fmt"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/roster"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// validateReport is the JSON form of a validate run
type validateReport struct {
	Valid       bool                              `json:"valid"`
	Error       string                            `json:"error,omitempty"`
	WorkerCount int                               `json:"worker_count"`
	PerCategory map[models.ShiftCategory]int      `json:"per_category,omitempty"`
	Uncovered   map[models.ShiftCategory][]string `json:"uncovered_weekdays,omitempty"`
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a roster file without generating a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			workers, err := roster.Load(args[0])
			if err != nil {
				if opts.jsonOutput {
					if werr := writeJSON(out, validateReport{Valid: false, Error: err.Error()}); werr != nil {
						return werr
					}
				}
				return err
			}

			report := validateReport{
				Valid:       true,
				WorkerCount: len(workers),
				PerCategory: roster.Summary(workers),
				Uncovered:   rotation.NewGenerator(workers).UncoveredWeekdays(),
			}
			if opts.jsonOutput {
				return writeJSON(out, report)
			}

			fmt.Fprintln(out, pterm.Success.Sprintf("%s: %d workers", args[0], report.WorkerCount))
			for _, c := range models.Categories {
				fmt.Fprintln(out, pterm.Info.Sprintf("%-8s %d workers", c.Label(), report.PerCategory[c]))
				if days := report.Uncovered[c]; len(days) > 0 {
					fmt.Fprintln(out, pterm.Warning.Sprintf("%s has nobody available on %v", c.Label(), days))
				}
			}
			return nil
		},
	}
}
