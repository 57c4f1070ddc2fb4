package calendar

import (
	"fmt"
	"time"

	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
)

// MonthLayout is the key format for a calendar month
const MonthLayout = "2006-01"

// Cell is one day of a month grid
type Cell struct {
	Day    int               `json:"day"`
	Date   string            `json:"date"`
	Today  bool              `json:"today,omitempty"`
	Roster *models.DayRoster `json:"roster,omitempty"`
}

// MonthView is a Sunday-first month grid
type MonthView struct {
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	DaysInMonth int    `json:"days_in_month"`
	Leading     int    `json:"leading_blanks"` // empty cells before the 1st
	Days        []Cell `json:"days"`
}

// Month lays out one month against a schedule. Days outside the schedule's
// horizon have no roster. today may be zero.
func Month(year int, month time.Month, s *models.Schedule, today time.Time) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	todayKey := ""
	if !today.IsZero() {
		todayKey = today.Format(models.DateLayout)
	}

	view := MonthView{
		Name:        first.Month().String(),
		Year:        first.Year(),
		Month:       int(first.Month()),
		DaysInMonth: days,
		Leading:     int(first.Weekday()),
		Days:        make([]Cell, 0, days),
	}

	for d := 1; d <= days; d++ {
		key := first.AddDate(0, 0, d-1).Format(models.DateLayout)
		cell := Cell{Day: d, Date: key, Today: key == todayKey}
		if s != nil {
			if r, ok := s.Lookup(key); ok {
				cell.Roster = &r
			}
		}
		view.Days = append(view.Days, cell)
	}
	return view
}

// Weeks splits the grid into rows of seven; nil entries are blank cells
func (v MonthView) Weeks() [][]*Cell {
	var weeks [][]*Cell
	row := make([]*Cell, 0, 7)
	for i := 0; i < v.Leading; i++ {
		row = append(row, nil)
	}
	for i := range v.Days {
		row = append(row, &v.Days[i])
		if len(row) == 7 {
			weeks = append(weeks, row)
			row = make([]*Cell, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// Navigator bounds month navigation to Count months starting at First
type Navigator struct {
	First time.Time
	Count int
}

// NewNavigator parses a YYYY-MM first month
func NewNavigator(first string, count int) (Navigator, error) {
	t, err := time.ParseInLocation(MonthLayout, first, time.UTC)
	if err != nil {
		return Navigator{}, apperrors.NewValidationError("first_month", "expected YYYY-MM: %v", err)
	}
	if count < 1 {
		return Navigator{}, apperrors.NewValidationError("months", "must be at least 1, got %d", count)
	}
	return Navigator{First: t, Count: count}, nil
}

// At returns the first day of the month at offset, clamped to the window
func (n Navigator) At(offset int) time.Time {
	return n.First.AddDate(0, n.clamp(offset), 0)
}

// Prev returns the offset before offset, never below zero
func (n Navigator) Prev(offset int) int {
	return n.clamp(offset - 1)
}

// Next returns the offset after offset, never past the last month
func (n Navigator) Next(offset int) int {
	return n.clamp(offset + 1)
}

// Offset returns the index of year/month inside the window
func (n Navigator) Offset(year int, month time.Month) (int, error) {
	off := (year-n.First.Year())*12 + int(month) - int(n.First.Month())
	if off < 0 || off >= n.Count {
		return 0, fmt.Errorf("%04d-%02d: %w", year, month, apperrors.ErrMonthOutOfRange)
	}
	return off, nil
}

// Months lists the YYYY-MM keys in the window
func (n Navigator) Months() []string {
	out := make([]string, 0, n.Count)
	for i := 0; i < n.Count; i++ {
		out = append(out, n.First.AddDate(0, i, 0).Format(MonthLayout))
	}
	return out
}

func (n Navigator) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > n.Count-1 {
		return n.Count - 1
	}
	return offset
}

// ParseMonth parses a YYYY-MM key
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.UTC)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("month", "expected YYYY-MM, got %q", s)
	}
	return t.Year(), t.Month(), nil
}
