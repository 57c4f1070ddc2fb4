package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newMonthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month YYYY-MM",
		Short: "Show a month grid of the rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := calendar.ParseMonth(args[0])
			if err != nil {
				return err
			}
			s, _, err := opts.schedule()
			if err != nil {
				return err
			}
			view := calendar.Month(year, month, s, opts.today())

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, view)
			}

			fmt.Fprintln(out, pterm.DefaultHeader.Sprintf("%s %d", view.Name, view.Year))
			table, err := pterm.DefaultTable.WithHasHeader().WithData(monthGrid(view)).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			fmt.Fprintln(out, pterm.Info.Sprint("* today, ! missing coverage, blank outside the rotation window"))
			return nil
		},
	}
}

// monthGrid renders a Sunday-first grid of day numbers with the first
// names of whoever covers each category
func monthGrid(view calendar.MonthView) pterm.TableData {
	data := pterm.TableData{{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}}
	for _, week := range view.Weeks() {
		row := make([]string, 0, 7)
		for _, cell := range week {
			row = append(row, cellText(cell))
		}
		data = append(data, row)
	}
	return data
}

func cellText(cell *calendar.Cell) string {
	if cell == nil {
		return ""
	}
	label := strconv.Itoa(cell.Day)
	if cell.Today {
		label += "*"
	}
	if cell.Roster == nil {
		return label
	}
	if len(cell.Roster.Uncovered) > 0 {
		label += "!"
	}

	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		if a := cell.Roster.Covers(c); a != nil {
			names = append(names, firstName(a.Name))
		}
	}
	return label + " " + strings.Join(names, "/")
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
