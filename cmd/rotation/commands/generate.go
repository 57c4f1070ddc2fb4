package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the rotation for the configured window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, workers, err := opts.schedule()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, s)
			}

			fmt.Fprintln(out, pterm.DefaultHeader.WithFullWidth().Sprintf("NOC Rotation %s (%d days)", s.StartDate, s.Horizon))

			table, err := pterm.DefaultTable.WithHasHeader().WithData(scheduleTable(s)).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)

			stats, err := pterm.DefaultTable.WithHasHeader().WithData(statsTable(s, workers)).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, stats)

			if len(s.Gaps) > 0 {
				fmt.Fprintln(out, pterm.Warning.Sprintf("%d slots without coverage", len(s.Gaps)))
			} else {
				fmt.Fprintln(out, pterm.Success.Sprint("Every slot is covered"))
			}
			return nil
		},
	}
}

// scheduleTable renders one row per day with a column per category
func scheduleTable(s *models.Schedule) pterm.TableData {
	header := []string{"Date", "Weekday"}
	for _, c := range models.Categories {
		header = append(header, c.Label())
	}
	data := pterm.TableData{header}

	for _, d := range s.Days {
		row := []string{d.Date, d.Weekday}
		for _, c := range models.Categories {
			row = append(row, slotName(d, c))
		}
		data = append(data, row)
	}
	return data
}

func slotName(d models.DayRoster, c models.ShiftCategory) string {
	a := d.Covers(c)
	if a == nil {
		return "-"
	}
	return a.Name
}

// statsTable renders the fairness summary of each category
func statsTable(s *models.Schedule, workers []models.Worker) pterm.TableData {
	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.Email] = w.Name
	}

	data := pterm.TableData{{"Category", "Slots", "Gaps", "Spread", "Fairness", "Most assigned"}}
	for _, c := range models.Categories {
		st := s.Stats[c]
		data = append(data, []string{
			c.Label(),
			strconv.Itoa(st.Slots),
			strconv.Itoa(st.Gaps),
			strconv.Itoa(st.Spread),
			strconv.FormatFloat(st.FairnessScore, 'f', 3, 64),
			mostAssigned(st.PerWorker, names),
		})
	}
	return data
}

func mostAssigned(perWorker map[string]int, names map[string]string) string {
	emails := make([]string, 0, len(perWorker))
	for e := range perWorker {
		emails = append(emails, e)
	}
	if len(emails) == 0 {
		return "-"
	}
	sort.Slice(emails, func(i, j int) bool {
		if perWorker[emails[i]] != perWorker[emails[j]] {
			return perWorker[emails[i]] > perWorker[emails[j]]
		}
		return emails[i] < emails[j]
	})
	top := emails[0]
	name := names[top]
	if name == "" {
		name = top
	}
	return fmt.Sprintf("%s (%d)", name, perWorker[top])
}
