package rotation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func everyDay(window string) models.WeeklySchedule {
	return models.WeeklySchedule{Sun: window, Mon: window, Tue: window, Wed: window, Thu: window, Fri: window, Sat: window}
}

func weekdaysOnly(window string) models.WeeklySchedule {
	return models.WeeklySchedule{Sun: "OFF", Mon: window, Tue: window, Wed: window, Thu: window, Fri: window, Sat: "OFF"}
}

func worker(name string, shift models.ShiftCategory, sched models.WeeklySchedule) models.Worker {
	return models.Worker{Name: name, Email: name + "@example.com", Shift: shift, Schedule: sched}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func assignedNames(s *models.Schedule, c models.ShiftCategory) []string {
	var out []string
	for _, d := range s.Days {
		if a := d.Covers(c); a != nil {
			out = append(out, a.Name)
		}
	}
	return out
}

func TestGenerate_AlternatesTwoWorkers(t *testing.T) {
	roster := []models.Worker{
		worker("alice", models.ShiftDay, everyDay("08:00-16:00")),
		worker("bob", models.ShiftDay, everyDay("08:00-16:00")),
	}
	monday := date(t, "2025-11-17")
	require.Equal(t, time.Monday, monday.Weekday())

	s := Generate(roster, monday, 4)

	require.Len(t, s.Days, 4)
	assert.Equal(t, []string{"alice", "bob", "alice", "bob"}, assignedNames(s, models.ShiftDay))
	assert.Equal(t, 4, s.FinalState[models.ShiftDay])
}

func TestGenerate_SoleWorkerOffWeekends(t *testing.T) {
	roster := []models.Worker{
		worker("carol", models.ShiftEarly, weekdaysOnly("05:00-14:00")),
	}
	sunday := date(t, "2025-11-16")
	require.Equal(t, time.Sunday, sunday.Weekday())

	s := Generate(roster, sunday, 7)

	names := assignedNames(s, models.ShiftEarly)
	assert.Len(t, names, 5)
	for _, n := range names {
		assert.Equal(t, "carol", n)
	}

	sun, ok := s.Lookup("2025-11-16")
	require.True(t, ok)
	assert.Nil(t, sun.Covers(models.ShiftEarly))
	assert.Contains(t, sun.Uncovered, models.ShiftEarly)

	sat, ok := s.Lookup("2025-11-22")
	require.True(t, ok)
	assert.Nil(t, sat.Covers(models.ShiftEarly))
}

func TestStep_EmptyDayLeavesCounterUnchanged(t *testing.T) {
	g := NewGenerator([]models.Worker{
		worker("dan", models.ShiftNight, weekdaysOnly("22:30-07:30")),
		worker("erin", models.ShiftNight, weekdaysOnly("22:30-07:30")),
	})
	state := NewState()
	state[models.ShiftNight] = 7

	day, gaps, next := g.Step(date(t, "2025-11-22"), state) // Saturday

	assert.Nil(t, day.Covers(models.ShiftNight))
	assert.Equal(t, 7, next[models.ShiftNight])
	assert.Equal(t, 7, state[models.ShiftNight])
	require.NotEmpty(t, gaps)
	assert.Equal(t, "all 2 workers are off on Saturday", gaps[0].Reason)
}

func TestStep_DoesNotMutateInputState(t *testing.T) {
	g := NewGenerator([]models.Worker{worker("fay", models.ShiftDay, everyDay("09:00-17:00"))})
	state := NewState()

	_, _, next := g.Step(date(t, "2025-11-18"), state)

	assert.Equal(t, 0, state[models.ShiftDay])
	assert.Equal(t, 1, next[models.ShiftDay])
}

func TestStep_IndexesIntoAvailableTodayList(t *testing.T) {
	// gus works Sun-Thu, hal works Tue-Sat
	gus := worker("gus", models.ShiftNight, models.WeeklySchedule{
		Sun: "01:00-10:00", Mon: "01:00-10:00", Tue: "01:00-10:00", Wed: "01:00-10:00", Thu: "01:00-10:00", Fri: "OFF", Sat: "OFF",
	})
	hal := worker("hal", models.ShiftNight, models.WeeklySchedule{
		Sun: "OFF", Mon: "OFF", Tue: "01:00-10:00", Wed: "01:00-10:00", Thu: "01:00-10:00", Fri: "01:00-10:00", Sat: "01:00-10:00",
	})
	g := NewGenerator([]models.Worker{gus, hal})

	state := NewState()
	state[models.ShiftNight] = 3

	// Friday: only hal, 3 % 1 == 0
	fri, _, next := g.Step(date(t, "2025-11-21"), state)
	require.NotNil(t, fri.Covers(models.ShiftNight))
	assert.Equal(t, "hal", fri.Covers(models.ShiftNight).Name)
	assert.Equal(t, 4, next[models.ShiftNight])

	// Tuesday: gus and hal, 4 % 2 == 0
	tue, _, _ := g.Step(date(t, "2025-11-18"), next)
	assert.Equal(t, "gus", tue.Covers(models.ShiftNight).Name)
	assert.Equal(t, "01:00-10:00", tue.Covers(models.ShiftNight).Hours)
}

func TestGenerate_ExactlyOnePerCoveredSlot(t *testing.T) {
	roster := []models.Worker{
		worker("ivy", models.ShiftNight, models.WeeklySchedule{Sun: "00:00-06:00", Mon: "00:00-06:00", Tue: "00:00-06:00", Wed: "00:00-06:00", Thu: "00:00-06:00", Fri: "OFF", Sat: "OFF"}),
		worker("jon", models.ShiftEarly, weekdaysOnly("06:00-14:30")),
		worker("kim", models.ShiftDay, everyDay("08:00-16:30")),
		worker("lee", models.ShiftEvening, models.WeeklySchedule{Sun: "15:00-00:00", Mon: "15:00-00:00", Tue: "15:00-00:00", Wed: "15:00-00:00", Thu: "OFF", Fri: "OFF", Sat: "15:00-00:00"}),
		worker("max", models.ShiftEvening, models.WeeklySchedule{Sun: "OFF", Mon: "15:00-00:00", Tue: "15:00-00:00", Wed: "15:00-00:00", Thu: "15:00-00:00", Fri: "15:00-00:00", Sat: "OFF"}),
	}
	g := NewGenerator(roster)
	s := g.Generate(date(t, "2025-11-18"), 60)

	require.Len(t, s.Days, 60)
	gapsByDay := make(map[string]int)
	for _, gap := range s.Gaps {
		gapsByDay[gap.Date]++
	}

	for _, d := range s.Days {
		day, err := models.ParseDate(d.Date)
		require.NoError(t, err)
		for _, c := range models.Categories {
			available := g.Available(c, day.Weekday())
			if len(available) > 0 {
				assert.NotNil(t, d.Covers(c), "%s %s should be covered", d.Date, c)
				assert.NotContains(t, d.Uncovered, c)
			} else {
				assert.Nil(t, d.Covers(c), "%s %s should be uncovered", d.Date, c)
				assert.Contains(t, d.Uncovered, c)
			}
		}
		assert.Len(t, d.Assignments, len(models.Categories)-len(d.Uncovered))
		assert.Equal(t, len(d.Uncovered), gapsByDay[d.Date])
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roster := []models.Worker{
		worker("nia", models.ShiftDay, weekdaysOnly("09:00-18:00")),
		worker("oli", models.ShiftDay, everyDay("08:00-15:30")),
		worker("pat", models.ShiftNight, weekdaysOnly("02:00-08:00")),
	}
	start := date(t, "2025-11-18")

	first, err := json.Marshal(Generate(roster, start, 60))
	require.NoError(t, err)
	second, err := json.Marshal(Generate(roster, start, 60))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerate_FairWhenAvailabilityConstant(t *testing.T) {
	roster := []models.Worker{
		worker("quinn", models.ShiftDay, everyDay("08:00-16:00")),
		worker("rae", models.ShiftDay, everyDay("08:00-16:00")),
		worker("sam", models.ShiftDay, everyDay("08:00-16:00")),
	}

	for _, horizon := range []int{1, 10, 59, 60, 61} {
		s := Generate(roster, date(t, "2025-11-18"), horizon)
		lo, hi := horizon/3, (horizon+2)/3
		for email, n := range s.Stats[models.ShiftDay].PerWorker {
			assert.GreaterOrEqual(t, n, lo, "horizon %d worker %s", horizon, email)
			assert.LessOrEqual(t, n, hi, "horizon %d worker %s", horizon, email)
		}
		assert.LessOrEqual(t, s.Stats[models.ShiftDay].Spread, 1)
	}
}

func TestGenerate_EmptyCategory(t *testing.T) {
	s := Generate([]models.Worker{worker("tom", models.ShiftDay, everyDay("08:00-16:00"))}, date(t, "2025-11-18"), 3)

	assert.Empty(t, assignedNames(s, models.ShiftEvening))
	assert.Equal(t, 0, s.FinalState[models.ShiftEvening])
	assert.Len(t, s.Gaps, 9)
	assert.Equal(t, "no workers found in this category", s.Gaps[0].Reason)
	assert.Equal(t, 3, s.Stats[models.ShiftEvening].Gaps)
	assert.Equal(t, 100.0, s.Stats[models.ShiftEvening].FairnessScore)
}

func TestGenerate_NonPositiveHorizon(t *testing.T) {
	roster := []models.Worker{worker("uma", models.ShiftDay, everyDay("08:00-16:00"))}

	assert.Empty(t, Generate(roster, date(t, "2025-11-18"), 0).Days)
	assert.Empty(t, Generate(roster, date(t, "2025-11-18"), -5).Days)
}

func TestGenerate_IgnoresClockAndZone(t *testing.T) {
	roster := []models.Worker{worker("val", models.ShiftDay, everyDay("08:00-16:00"))}
	pst := time.FixedZone("PST", -8*60*60)
	late := time.Date(2025, time.November, 18, 23, 30, 0, 0, pst)

	s := Generate(roster, late, 1)

	assert.Equal(t, "2025-11-18", s.StartDate)
	_, ok := s.On(date(t, "2025-11-18"))
	assert.True(t, ok)
}

func TestUncoveredWeekdays(t *testing.T) {
	g := NewGenerator([]models.Worker{
		worker("carol", models.ShiftEarly, weekdaysOnly("05:00-14:00")),
		worker("dave", models.ShiftDay, everyDay("08:00-16:00")),
	})

	uncovered := g.UncoveredWeekdays()

	assert.Equal(t, []string{"Sunday", "Saturday"}, uncovered[models.ShiftEarly])
	assert.Empty(t, uncovered[models.ShiftDay])
	assert.Len(t, uncovered[models.ShiftNight], 7)
	assert.Len(t, uncovered[models.ShiftEvening], 7)
}

func TestGenerate_StatsCountSharedEmailSeparately(t *testing.T) {
	roster := []models.Worker{
		{Name: "Ann", Email: "shared@example.com", Shift: models.ShiftDay, Schedule: everyDay("08:00-16:00")},
		{Name: "Ben", Email: "shared@example.com", Shift: models.ShiftDay, Schedule: everyDay("08:00-16:00")},
		worker("cy", models.ShiftDay, everyDay("08:00-16:00")),
	}

	s := Generate(roster, date(t, "2025-11-17"), 3)
	st := s.Stats[models.ShiftDay]

	assert.Equal(t, 3, st.Slots)
	assert.Equal(t, 0, st.Spread)
	assert.Equal(t, 100.0, st.FairnessScore)
	assert.Equal(t, 2, st.PerWorker["shared@example.com"])
	assert.Equal(t, 1, st.PerWorker["cy@example.com"])
}

func TestSpreadAndFairness(t *testing.T) {
	assert.Equal(t, 0, Spread(nil))
	assert.Equal(t, 2, Spread([]int{3, 1, 2}))
	assert.Equal(t, 100.0, CalculateFairnessScore([]int{5, 5, 5}))
	assert.Equal(t, 100.0, CalculateFairnessScore([]int{0, 0}))
	assert.InDelta(t, 0.0, CalculateFairnessScore([]int{10, 0}), 0.0001)
	assert.Less(t, CalculateFairnessScore([]int{4, 2}), 100.0)
}

func TestCache_ComputesOnce(t *testing.T) {
	roster := []models.Worker{worker("wes", models.ShiftDay, everyDay("08:00-16:00"))}
	c := NewCache()

	a := c.Get(roster, date(t, "2025-11-18"), 60)
	b := c.Get(roster, date(t, "2025-11-18"), 60)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	c.Get(roster, date(t, "2025-11-18"), 30)
	assert.Equal(t, 2, c.Len())

	other := append([]models.Worker{}, roster...)
	other[0].Name = "wes two"
	assert.NotSame(t, a, c.Get(other, date(t, "2025-11-18"), 60))
}

func TestFingerprint_OrderSensitive(t *testing.T) {
	a := worker("xan", models.ShiftDay, everyDay("08:00-16:00"))
	b := worker("yui", models.ShiftDay, everyDay("08:00-16:00"))

	assert.Equal(t, Fingerprint([]models.Worker{a, b}), Fingerprint([]models.Worker{a, b}))
	assert.NotEqual(t, Fingerprint([]models.Worker{a, b}), Fingerprint([]models.Worker{b, a}))
}
