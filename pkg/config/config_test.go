package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "rotation.db", cfg.DataPath)
	assert.Equal(t, 60, cfg.HorizonDays)
	assert.Equal(t, "2025-11-18", cfg.Start().Format("2006-01-02"))
	assert.Equal(t, time.Tuesday, cfg.Start().Weekday())
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01"}, cfg.Navigator().Months())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("ROTATION_HORIZON_DAYS", "14")
	t.Setenv("ROTATION_START", "2026-02-01")
	t.Setenv("CALENDAR_MONTHS", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, time.February, cfg.Start().Month())
	assert.Len(t, cfg.Navigator().Months(), 1)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad start", env: map[string]string{"ROTATION_START": "18/11/2025"}},
		{name: "zero horizon", env: map[string]string{"ROTATION_HORIZON_DAYS": "0"}},
		{name: "bad month", env: map[string]string{"CALENDAR_FIRST_MONTH": "November"}},
		{name: "production default secret", env: map[string]string{"ENVIRONMENT": "production"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
