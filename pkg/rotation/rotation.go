package rotation

import (
	"fmt"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
)

// DefaultHorizon is the number of days generated when no horizon is configured
const DefaultHorizon = 60

// State holds one rotation counter per shift category. A counter only
// advances when its category receives an assignment.
type State map[models.ShiftCategory]int

// NewState returns a state with every counter at zero
func NewState() State {
	s := make(State, len(models.Categories))
	for _, c := range models.Categories {
		s[c] = 0
	}
	return s
}

// Clone returns an independent copy of the state
func (s State) Clone() State {
	out := make(State, len(s))
	for c, n := range s {
		out[c] = n
	}
	return out
}

// Generator assigns one worker per shift category per day
type Generator struct {
	Roster []models.Worker
	Pools  map[models.ShiftCategory][]models.Worker
}

// NewGenerator creates a generator for a roster
func NewGenerator(roster []models.Worker) *Generator {
	return &Generator{
		Roster: roster,
		Pools:  GroupByCategory(roster),
	}
}

// GroupByCategory returns workers grouped by their shift category, preserving roster order
func GroupByCategory(roster []models.Worker) map[models.ShiftCategory][]models.Worker {
	pools := make(map[models.ShiftCategory][]models.Worker, len(models.Categories))
	for _, c := range models.Categories {
		pools[c] = nil
	}
	for _, w := range roster {
		if !w.Shift.IsValid() {
			continue
		}
		pools[w.Shift] = append(pools[w.Shift], w)
	}
	return pools
}

// Available returns the category's workers on duty for a weekday, in roster order
func (g *Generator) Available(c models.ShiftCategory, day time.Weekday) []models.Worker {
	var out []models.Worker
	for _, i := range g.availableIndex(c, day) {
		out = append(out, g.Pools[c][i])
	}
	return out
}

// availableIndex returns the pool positions of the workers on duty for a weekday
func (g *Generator) availableIndex(c models.ShiftCategory, day time.Weekday) []int {
	var out []int
	for i, w := range g.Pools[c] {
		if w.Schedule.Works(day) {
			out = append(out, i)
		}
	}
	return out
}

// UncoveredWeekdays lists, per category, the weekdays on which nobody is available
func (g *Generator) UncoveredWeekdays() map[models.ShiftCategory][]string {
	out := make(map[models.ShiftCategory][]string, len(models.Categories))
	for _, c := range models.Categories {
		days := []string{}
		for day := time.Sunday; day <= time.Saturday; day++ {
			if len(g.Available(c, day)) == 0 {
				days = append(days, day.String())
			}
		}
		out[c] = days
	}
	return out
}

// Step assigns every category for one date. The input state is left untouched;
// the returned state carries the advanced counters.
func (g *Generator) Step(date time.Time, state State) (models.DayRoster, []models.CoverageGap, State) {
	day, gaps, next, _ := g.step(date, state)
	return day, gaps, next
}

// step is Step that also reports the pool position picked for each covered category
func (g *Generator) step(date time.Time, state State) (models.DayRoster, []models.CoverageGap, State, map[models.ShiftCategory]int) {
	next := state.Clone()
	picked := make(map[models.ShiftCategory]int, len(models.Categories))
	key := date.Format(models.DateLayout)
	weekday := date.Weekday()

	day := models.DayRoster{
		Date:        key,
		Weekday:     weekday.String(),
		Assignments: make(map[models.ShiftCategory]*models.Assignment, len(models.Categories)),
	}
	var gaps []models.CoverageGap

	for _, c := range models.Categories {
		available := g.availableIndex(c, weekday)
		if len(available) == 0 {
			day.Uncovered = append(day.Uncovered, c)
			gaps = append(gaps, models.CoverageGap{
				Date:     key,
				Category: c,
				Reason:   g.gapReason(c, weekday),
			})
			continue
		}

		idx := available[next[c]%len(available)]
		w := g.Pools[c][idx]
		picked[c] = idx
		day.Assignments[c] = &models.Assignment{
			Date:     key,
			Category: c,
			Name:     w.Name,
			Email:    w.Email,
			Hours:    w.Schedule.On(weekday),
		}
		next[c]++
	}

	return day, gaps, next, picked
}

func (g *Generator) gapReason(c models.ShiftCategory, day time.Weekday) string {
	pool := len(g.Pools[c])
	if pool == 0 {
		return "no workers found in this category"
	}
	if pool == 1 {
		return fmt.Sprintf("the only worker is off on %s", day)
	}
	return fmt.Sprintf("all %d workers are off on %s", pool, day)
}

// Generate builds the schedule for horizon days starting at start. A horizon
// less than one yields an empty schedule.
func (g *Generator) Generate(start time.Time, horizon int) *models.Schedule {
	start = civilDate(start)
	if horizon < 0 {
		horizon = 0
	}

	sched := &models.Schedule{
		StartDate: start.Format(models.DateLayout),
		Horizon:   horizon,
		Days:      make([]models.DayRoster, 0, horizon),
		Gaps:      []models.CoverageGap{},
	}

	state := NewState()
	tally := make(map[models.ShiftCategory][]int, len(models.Categories))
	for _, c := range models.Categories {
		tally[c] = make([]int, len(g.Pools[c]))
	}
	for i := 0; i < horizon; i++ {
		day, gaps, next, picked := g.step(start.AddDate(0, 0, i), state)
		sched.Days = append(sched.Days, day)
		sched.Gaps = append(sched.Gaps, gaps...)
		for c, idx := range picked {
			tally[c][idx]++
		}
		state = next
	}

	sched.FinalState = state
	sched.Stats = g.stats(len(sched.Days), tally)
	sched.Reindex()
	return sched
}

// Generate is a shorthand for NewGenerator(roster).Generate(start, horizon)
func Generate(roster []models.Worker, start time.Time, horizon int) *models.Schedule {
	return NewGenerator(roster).Generate(start, horizon)
}

// civilDate drops the clock and zone, keeping the calendar date the caller sees
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
