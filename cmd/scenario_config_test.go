package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadScenarioConfig(t *testing.T) {
	path := writeScenario(t, `
start: "2024-01-01"
days: 90
seed: 7
courtrooms: 5
capacity: 30
policy: readiness
percentile: p90
min_gap_days: 14
filing_rate: 1.5
holidays:
  - "2024-01-26"
  - "2024-08-15"
`)

	cfg, err := LoadScenarioConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "2024-01-01", cfg.Start)
	require.NotNil(t, cfg.Days)
	assert.Equal(t, 90, *cfg.Days)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, "readiness", cfg.Policy)
	require.NotNil(t, cfg.FilingRate)
	assert.Equal(t, 1.5, *cfg.FilingRate)

	holidays := cfg.ParsedHolidays()
	require.Len(t, holidays, 2)
	assert.Equal(t, time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC), holidays[0])
}

func TestLoadScenarioConfig_PartialLeavesUnsetFieldsNil(t *testing.T) {
	path := writeScenario(t, `
days: 30
policy: age
`)
	cfg, err := LoadScenarioConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.Days)
	assert.Equal(t, 30, *cfg.Days)
	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.Courtrooms)
	assert.Nil(t, cfg.MinGapDays)
	assert.Empty(t, cfg.Start)
	assert.Empty(t, cfg.Percentile)
}

func TestScenarioConfig_ValidateRejectsBadValues(t *testing.T) {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		cfg  ScenarioConfig
	}{
		{"bad start date", ScenarioConfig{Start: "01/01/2024"}},
		{"zero days", ScenarioConfig{Days: intp(0)}},
		{"zero courtrooms", ScenarioConfig{Courtrooms: intp(0)}},
		{"negative capacity", ScenarioConfig{Capacity: intp(-1)}},
		{"unknown policy", ScenarioConfig{Policy: "random"}},
		{"unknown percentile", ScenarioConfig{Percentile: "p99"}},
		{"negative gap", ScenarioConfig{MinGapDays: intp(-1)}},
		{"negative filing rate", ScenarioConfig{FilingRate: floatp(-0.5)}},
		{"bad holiday", ScenarioConfig{Holidays: []string{"26-01-2024"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}

	assert.NoError(t, (&ScenarioConfig{}).Validate(), "empty scenario is valid")
}

func TestLoadScenarioConfig_Errors(t *testing.T) {
	_, err := LoadScenarioConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeScenario(t, "days: [not an int")
	_, err = LoadScenarioConfig(path)
	assert.Error(t, err)
}
