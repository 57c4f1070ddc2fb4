package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar key format used for every date in a schedule
const DateLayout = "2006-01-02"

// Off marks a weekday on which a worker is not available
const Off = "OFF"

// ShiftCategory is the coverage window a worker is permanently tagged with
type ShiftCategory string

const (
	ShiftNight   ShiftCategory = "night"
	ShiftEarly   ShiftCategory = "early"
	ShiftDay     ShiftCategory = "day"
	ShiftEvening ShiftCategory = "evening"
)

// Categories lists every shift category in display order
var Categories = []ShiftCategory{ShiftNight, ShiftEarly, ShiftDay, ShiftEvening}

// IsValid checks if the ShiftCategory is one of the four known categories
func (c ShiftCategory) IsValid() bool {
	switch c {
	case ShiftNight, ShiftEarly, ShiftDay, ShiftEvening:
		return true
	}
	return false
}

// Label returns the human readable name of the category
func (c ShiftCategory) Label() string {
	switch c {
	case ShiftNight:
		return "Night"
	case ShiftEarly:
		return "Early"
	case ShiftDay:
		return "Day"
	case ShiftEvening:
		return "Evening"
	}
	return string(c)
}

// Coverage returns the nominal window the category is responsible for
func (c ShiftCategory) Coverage() string {
	switch c {
	case ShiftNight:
		return "00:00-10:00"
	case ShiftEarly:
		return "05:00-09:00"
	case ShiftDay:
		return "08:00-18:00"
	case ShiftEvening:
		return "15:00-00:00"
	}
	return ""
}

// Window is a daily working interval. An End not after Start crosses midnight.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseWindow parses "HH:MM-HH:MM"
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("invalid window %q: expected HH:MM-HH:MM", s)
	}
	for _, p := range parts {
		if _, err := time.Parse("15:04", p); err != nil {
			return Window{}, fmt.Errorf("invalid window %q: %w", s, err)
		}
	}
	return Window{Start: parts[0], End: parts[1]}, nil
}

// CrossesMidnight reports whether the window ends on the following day
func (w Window) CrossesMidnight() bool {
	return w.End <= w.Start
}

// String formats the window the way it is written in a roster
func (w Window) String() string {
	return w.Start + "-" + w.End
}

// WeeklySchedule maps each weekday to OFF or an HH:MM-HH:MM window
type WeeklySchedule struct {
	Sun string `json:"sun" yaml:"sun"`
	Mon string `json:"mon" yaml:"mon"`
	Tue string `json:"tue" yaml:"tue"`
	Wed string `json:"wed" yaml:"wed"`
	Thu string `json:"thu" yaml:"thu"`
	Fri string `json:"fri" yaml:"fri"`
	Sat string `json:"sat" yaml:"sat"`
}

// WeekdayKeys are the roster keys for time.Sunday..time.Saturday
var WeekdayKeys = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// On returns the raw availability for a weekday. Empty values read as OFF.
func (s WeeklySchedule) On(day time.Weekday) string {
	var v string
	switch day {
	case time.Sunday:
		v = s.Sun
	case time.Monday:
		v = s.Mon
	case time.Tuesday:
		v = s.Tue
	case time.Wednesday:
		v = s.Wed
	case time.Thursday:
		v = s.Thu
	case time.Friday:
		v = s.Fri
	case time.Saturday:
		v = s.Sat
	}
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, Off) {
		return Off
	}
	return v
}

// Works reports whether the worker is available on the weekday
func (s WeeklySchedule) Works(day time.Weekday) bool {
	return s.On(day) != Off
}

// Set assigns the availability for a weekday
func (s *WeeklySchedule) Set(day time.Weekday, value string) {
	switch day {
	case time.Sunday:
		s.Sun = value
	case time.Monday:
		s.Mon = value
	case time.Tuesday:
		s.Tue = value
	case time.Wednesday:
		s.Wed = value
	case time.Thursday:
		s.Thu = value
	case time.Friday:
		s.Fri = value
	case time.Saturday:
		s.Sat = value
	}
}

// Worker represents an engineer in the rotation
type Worker struct {
	Name     string         `json:"name" yaml:"name" validate:"required,max=100"`
	Email    string         `json:"email" yaml:"email" validate:"required,email"`
	Shift    ShiftCategory  `json:"shift" yaml:"shift" validate:"required"`
	Schedule WeeklySchedule `json:"schedule" yaml:"schedule"`
}

// FirstName returns the leading word of the worker's name, used in compact views
func (w Worker) FirstName() string {
	if i := strings.IndexByte(w.Name, ' '); i > 0 {
		return w.Name[:i]
	}
	return w.Name
}

// Assignment represents the worker covering one category on one date
type Assignment struct {
	Date     string        `json:"date"`
	Category ShiftCategory `json:"category"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Hours    string        `json:"hours"`
}

// CoverageGap represents a (date, category) slot no worker could cover
type CoverageGap struct {
	Date     string        `json:"date"`
	Category ShiftCategory `json:"category"`
	Reason   string        `json:"reason"`
}

// DayRoster holds every assignment for a single date
type DayRoster struct {
	Date        string                        `json:"date"`
	Weekday     string                        `json:"weekday"`
	Assignments map[ShiftCategory]*Assignment `json:"assignments"`
	Uncovered   []ShiftCategory               `json:"uncovered,omitempty"`
}

// Covers returns the assignment for a category, or nil
func (d DayRoster) Covers(c ShiftCategory) *Assignment {
	return d.Assignments[c]
}

// CategoryStats summarises how slots in one category were shared
type CategoryStats struct {
	Slots         int            `json:"slots"`
	Gaps          int            `json:"gaps"`
	PerWorker     map[string]int `json:"per_worker"` // email -> assigned slots
	Spread        int            `json:"spread"`     // max - min over workers in the pool
	FairnessScore float64        `json:"fairness_score"`
}

// Schedule is the full rotation for a horizon starting on StartDate
type Schedule struct {
	StartDate  string                          `json:"start_date"`
	Horizon    int                             `json:"horizon_days"`
	Days       []DayRoster                     `json:"days"`
	Gaps       []CoverageGap                   `json:"gaps"`
	Stats      map[ShiftCategory]CategoryStats `json:"stats"`
	FinalState map[ShiftCategory]int           `json:"final_state"`

	index map[string]int
}

// Reindex rebuilds the date lookup table. Call it once after Days is filled;
// Lookup is read-only afterwards and safe to share between goroutines.
func (s *Schedule) Reindex() {
	s.index = make(map[string]int, len(s.Days))
	for i, d := range s.Days {
		s.index[d.Date] = i
	}
}

// Lookup returns the roster for a YYYY-MM-DD key
func (s *Schedule) Lookup(key string) (DayRoster, bool) {
	if s.index == nil {
		for _, d := range s.Days {
			if d.Date == key {
				return d, true
			}
		}
		return DayRoster{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return DayRoster{}, false
	}
	return s.Days[i], true
}

// On returns the roster for a calendar date
func (s *Schedule) On(date time.Time) (DayRoster, bool) {
	return s.Lookup(date.Format(DateLayout))
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ScheduleInput is the data structure for the rotation endpoint
type ScheduleInput struct {
	Roster      []Worker `json:"roster"`
	StartDate   string   `json:"start_date"`
	HorizonDays int      `json:"horizon_days"`
}
