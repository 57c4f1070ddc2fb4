package commands

import (
	"fmt"

	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "day DATE",
		Short: "Show who is on call on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("expected YYYY-MM-DD, got %q", args[0])
			}
			s, _, err := opts.schedule()
			if err != nil {
				return err
			}
			detail, err := calendar.Detail(date, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, detail)
			}

			fmt.Fprintln(out, pterm.DefaultHeader.Sprint(detail.Title))
			data := pterm.TableData{{"Shift", "Coverage", "Name", "Email", "Hours"}}
			for _, slot := range detail.Slots {
				data = append(data, []string{slot.Label, slot.Coverage, slot.Name, slot.Email, slot.Hours})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)

			for _, c := range detail.Uncovered {
				fmt.Fprintln(out, pterm.Warning.Sprintf("No %s coverage", c.Label()))
			}
			return nil
		},
	}
}
