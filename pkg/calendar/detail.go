package calendar

import (
	"fmt"
	"time"

	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
)

// SlotDetail describes who covers one category on a selected date
type SlotDetail struct {
	Category models.ShiftCategory `json:"category"`
	Label    string               `json:"label"`
	Coverage string               `json:"coverage"`
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	Hours    string               `json:"hours"`
}

// DateDetail is the full breakdown for a single date
type DateDetail struct {
	Date      string                 `json:"date"`
	Title     string                 `json:"title"`
	Slots     []SlotDetail           `json:"slots"`
	Uncovered []models.ShiftCategory `json:"uncovered,omitempty"`
}

// Detail returns the assignments for date in display order
func Detail(date time.Time, s *models.Schedule) (*DateDetail, error) {
	r, ok := s.On(date)
	if !ok {
		return nil, fmt.Errorf("%s: %w", date.Format(models.DateLayout), apperrors.ErrDateOutOfRange)
	}

	d := &DateDetail{
		Date:      r.Date,
		Title:     date.Format("Monday, January 2, 2006"),
		Slots:     make([]SlotDetail, 0, len(r.Assignments)),
		Uncovered: r.Uncovered,
	}
	for _, c := range models.Categories {
		a := r.Covers(c)
		if a == nil {
			continue
		}
		d.Slots = append(d.Slots, SlotDetail{
			Category: c,
			Label:    c.Label() + " Shift",
			Coverage: c.Coverage(),
			Name:     a.Name,
			Email:    a.Email,
			Hours:    a.Hours,
		})
	}
	return d, nil
}
