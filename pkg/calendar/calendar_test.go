package calendar

import (
	"testing"
	"time"

	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule(t *testing.T) *models.Schedule {
	t.Helper()
	start, err := models.ParseDate("2025-11-18")
	require.NoError(t, err)
	roster := []models.Worker{
		{Name: "Ana Day", Email: "ana@example.com", Shift: models.ShiftDay, Schedule: models.WeeklySchedule{Mon: "08:00-16:30", Tue: "08:00-16:30", Wed: "08:00-16:30", Thu: "08:00-16:30", Fri: "08:00-16:30"}},
		{Name: "Ned Night", Email: "ned@example.com", Shift: models.ShiftNight, Schedule: models.WeeklySchedule{Sun: "22:30-07:30", Mon: "22:30-07:30", Tue: "22:30-07:30", Wed: "22:30-07:30", Thu: "22:30-07:30"}},
	}
	return rotation.Generate(roster, start, 60)
}

func TestMonth_November2025(t *testing.T) {
	s := testSchedule(t)
	today, _ := models.ParseDate("2025-11-18")

	v := Month(2025, time.November, s, today)

	assert.Equal(t, "November", v.Name)
	assert.Equal(t, 30, v.DaysInMonth)
	assert.Equal(t, 6, v.Leading)
	require.Len(t, v.Days, 30)

	assert.Nil(t, v.Days[16].Roster, "Nov 17 is before the horizon")
	require.NotNil(t, v.Days[17].Roster)
	assert.True(t, v.Days[17].Today)
	assert.Equal(t, "2025-11-18", v.Days[17].Date)
	assert.NotNil(t, v.Days[17].Roster.Covers(models.ShiftDay))

	weeks := v.Weeks()
	assert.Len(t, weeks, 6)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
	assert.Nil(t, weeks[0][5])
	assert.Equal(t, 1, weeks[0][6].Day)
}

func TestMonth_HorizonEnd(t *testing.T) {
	v := Month(2026, time.January, testSchedule(t), time.Time{})

	assert.Equal(t, 4, v.Leading)
	// 60 days from Nov 18 ends on Jan 16
	assert.NotNil(t, v.Days[15].Roster)
	assert.Nil(t, v.Days[16].Roster)
	assert.False(t, v.Days[0].Today)
}

func TestNavigator(t *testing.T) {
	n, err := NewNavigator("2025-11", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01"}, n.Months())
	assert.Equal(t, 0, n.Prev(0))
	assert.Equal(t, 2, n.Next(2))
	assert.Equal(t, 1, n.Next(0))
	assert.Equal(t, time.January, n.At(5).Month())

	off, err := n.Offset(2026, time.January)
	require.NoError(t, err)
	assert.Equal(t, 2, off)

	_, err = n.Offset(2026, time.February)
	assert.ErrorIs(t, err, apperrors.ErrMonthOutOfRange)
	_, err = n.Offset(2025, time.October)
	assert.ErrorIs(t, err, apperrors.ErrMonthOutOfRange)

	_, err = NewNavigator("Nov 2025", 3)
	assert.True(t, apperrors.IsValidation(err))
	_, err = NewNavigator("2025-11", 0)
	assert.True(t, apperrors.IsValidation(err))
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2025-12")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	_, _, err = ParseMonth("12/2025")
	assert.True(t, apperrors.IsValidation(err))
}

func TestDetail(t *testing.T) {
	s := testSchedule(t)

	sunday, _ := models.ParseDate("2025-11-23")
	d, err := Detail(sunday, s)
	require.NoError(t, err)
	assert.Equal(t, "Sunday, November 23, 2025", d.Title)
	require.Len(t, d.Slots, 1)
	assert.Equal(t, models.ShiftNight, d.Slots[0].Category)
	assert.Equal(t, "Night Shift", d.Slots[0].Label)
	assert.Equal(t, "22:30-07:30", d.Slots[0].Hours)
	assert.Contains(t, d.Uncovered, models.ShiftDay)

	tuesday, _ := models.ParseDate("2025-11-18")
	d, err = Detail(tuesday, s)
	require.NoError(t, err)
	require.Len(t, d.Slots, 2)
	assert.Equal(t, models.ShiftNight, d.Slots[0].Category)
	assert.Equal(t, models.ShiftDay, d.Slots[1].Category)

	outside, _ := models.ParseDate("2026-02-01")
	_, err = Detail(outside, s)
	assert.ErrorIs(t, err, apperrors.ErrDateOutOfRange)
}
