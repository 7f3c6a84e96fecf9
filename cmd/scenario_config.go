package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/court-sim/court-sim/sim"
)

// dateLayout is the accepted date format in scenario files and CLI flags.
const dateLayout = "2006-01-02"

// ScenarioConfig is an optional YAML file that overrides CLI flags.
// Nil pointer fields mean "not set in YAML" — they do not override flags.
// String fields use empty string for "not set".
type ScenarioConfig struct {
	Start      string   `yaml:"start"`
	Days       *int     `yaml:"days"`
	Seed       *int64   `yaml:"seed"`
	Courtrooms *int     `yaml:"courtrooms"`
	Capacity   *int     `yaml:"capacity"`
	Policy     string   `yaml:"policy"`
	Percentile string   `yaml:"percentile"`
	MinGapDays *int     `yaml:"min_gap_days"`
	FilingRate *float64 `yaml:"filing_rate"`
	Holidays   []string `yaml:"holidays"`
}

// LoadScenarioConfig reads and parses a YAML scenario file.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all names, dates, and ranges in the scenario are
// valid. Runs before any simulation day executes.
func (c *ScenarioConfig) Validate() error {
	if c.Start != "" {
		if _, err := time.Parse(dateLayout, c.Start); err != nil {
			return fmt.Errorf("invalid start date %q: %w", c.Start, err)
		}
	}
	if c.Days != nil && *c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", *c.Days)
	}
	if c.Courtrooms != nil && *c.Courtrooms <= 0 {
		return fmt.Errorf("courtrooms must be positive, got %d", *c.Courtrooms)
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", *c.Capacity)
	}
	if c.Policy != "" && !sim.IsValidPolicy(c.Policy) {
		return fmt.Errorf("unknown scheduling policy %q", c.Policy)
	}
	if c.Percentile != "" && !sim.IsValidPercentile(c.Percentile) {
		return fmt.Errorf("unknown duration percentile %q", c.Percentile)
	}
	if c.MinGapDays != nil && *c.MinGapDays < 0 {
		return fmt.Errorf("min_gap_days must be >= 0, got %d", *c.MinGapDays)
	}
	if c.FilingRate != nil && *c.FilingRate < 0 {
		return fmt.Errorf("filing_rate must be >= 0, got %g", *c.FilingRate)
	}
	for _, h := range c.Holidays {
		if _, err := time.Parse(dateLayout, h); err != nil {
			return fmt.Errorf("invalid holiday date %q: %w", h, err)
		}
	}
	return nil
}

// ParsedHolidays returns the holiday dates as time values.
// Call Validate first; malformed entries are skipped here.
func (c *ScenarioConfig) ParsedHolidays() []time.Time {
	out := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		if d, err := time.Parse(dateLayout, h); err == nil {
			out = append(out, d)
		}
	}
	return out
}
