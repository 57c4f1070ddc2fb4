package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoWorkerRoster = `workers:
  - name: Alice Close
    email: alice@example.com
    shift: day
    schedule: {sun: "08:00-16:00", mon: "08:00-16:00", tue: "08:00-16:00", wed: "08:00-16:00", thu: "08:00-16:00", fri: "08:00-16:00", sat: "08:00-16:00"}
  - name: Bob Marsh
    email: bob@example.com
    shift: day
    schedule: {sun: "08:00-16:00", mon: "08:00-16:00", tue: "08:00-16:00", wed: "08:00-16:00", thu: "08:00-16:00", fri: "08:00-16:00", sat: "08:00-16:00"}
`

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func writeRoster(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_JSON(t *testing.T) {
	path := writeRoster(t, "roster.yaml", twoWorkerRoster)

	out, err := run(t, "generate", "--roster", path, "--start", "2025-11-17", "--horizon", "4", "--json")
	require.NoError(t, err)

	var s models.Schedule
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.Len(t, s.Days, 4)

	var names []string
	for _, d := range s.Days {
		names = append(names, d.Assignments[models.ShiftDay].Name)
	}
	assert.Equal(t, []string{"Alice Close", "Bob Marsh", "Alice Close", "Bob Marsh"}, names)
	assert.Len(t, s.Gaps, 4*3)
}

func TestGenerate_Table(t *testing.T) {
	path := writeRoster(t, "roster.yaml", twoWorkerRoster)

	out, err := run(t, "generate", "-r", path, "-s", "2025-11-17", "-n", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "NOC Rotation 2025-11-17 (2 days)")
	assert.Contains(t, out, "2025-11-18")
	assert.Contains(t, out, "Bob Marsh")
	assert.Contains(t, out, "slots without coverage")
}

func TestGenerate_InvalidStart(t *testing.T) {
	_, err := run(t, "generate", "--start", "18/11/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start")
}

func TestDay_DefaultRoster(t *testing.T) {
	out, err := run(t, "day", "2025-11-18", "--json")
	require.NoError(t, err)

	var detail calendar.DateDetail
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, "2025-11-18", detail.Date)
	assert.Equal(t, "Tuesday, November 18, 2025", detail.Title)
	assert.Equal(t, len(models.Categories), len(detail.Slots)+len(detail.Uncovered))
}

func TestDay_OutsideHorizon(t *testing.T) {
	_, err := run(t, "day", "2027-01-01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDateOutOfRange))
}

func TestMonth_Grid(t *testing.T) {
	path := writeRoster(t, "roster.yaml", twoWorkerRoster)

	out, err := run(t, "month", "2025-11", "-r", path)
	require.NoError(t, err)

	assert.Contains(t, out, "November 2025")
	assert.Contains(t, out, "18*! ")
	assert.Contains(t, out, "Alice")
}

func TestMonth_TodayFollowsStart(t *testing.T) {
	path := writeRoster(t, "roster.yaml", twoWorkerRoster)

	out, err := run(t, "month", "2025-12", "-r", path, "--start", "2025-12-05", "--json")
	require.NoError(t, err)

	var view calendar.MonthView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	for _, cell := range view.Days {
		assert.Equal(t, cell.Date == "2025-12-05", cell.Today, cell.Date)
	}
	assert.Nil(t, view.Days[3].Roster)
	require.NotNil(t, view.Days[4].Roster)
	assert.Equal(t, "Alice Close", view.Days[4].Roster.Assignments[models.ShiftDay].Name)
}

func TestValidate(t *testing.T) {
	path := writeRoster(t, "roster.yaml", twoWorkerRoster)

	out, err := run(t, "validate", path, "--json")
	require.NoError(t, err)

	var report validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.WorkerCount)
	assert.Equal(t, 2, report.PerCategory[models.ShiftDay])
	assert.Empty(t, report.Uncovered[models.ShiftDay])
	assert.Len(t, report.Uncovered[models.ShiftNight], 7)
}

func TestValidate_UnsupportedFormat(t *testing.T) {
	path := writeRoster(t, "roster.txt", "name,email\n")

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedRosterFormat))
}
