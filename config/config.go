// Package config loads the engine configuration and the project input
// catalog from JSON or YAML files, with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mbotelho/planforge/core/engine"
	"github.com/mbotelho/planforge/core/metrics"
)

// Config is the root engine configuration.
type Config struct {
	Engine   engine.Params  `json:"engine"`
	Calendar CalendarConfig `json:"calendar"`
	PlanLog  PlanLogConfig  `json:"planlog"`
	Metrics  metrics.Config `json:"metrics"`
	Output   OutputConfig   `json:"output"`
}

// CalendarConfig describes the working-day calendar.
type CalendarConfig struct {
	// Start is the project start date in 2006-01-02 form.
	Start string `json:"start"`
	// Holidays lists non-working dates in 2006-01-02 form.
	Holidays []string `json:"holidays"`
}

// Validate checks the date formats.
func (c CalendarConfig) Validate() error {
	if c.Start == "" {
		return fmt.Errorf("calendar start is required")
	}
	if _, err := time.Parse("2006-01-02", c.Start); err != nil {
		return fmt.Errorf("calendar start: %w", err)
	}
	for _, h := range c.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("calendar holiday %q: %w", h, err)
		}
	}
	return nil
}

// StartDate returns the parsed start date. Validate must have passed.
func (c CalendarConfig) StartDate() time.Time {
	t, _ := time.Parse("2006-01-02", c.Start)
	return t
}

// HolidayDates returns the parsed holiday list.
func (c CalendarConfig) HolidayDates() []time.Time {
	out := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		if t, err := time.Parse("2006-01-02", h); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// PlanLogConfig defines settings for plan run persistence.
type PlanLogConfig struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *PlanLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "plans.log"
	}
}

// Validate checks mandatory fields.
func (c PlanLogConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// OutputConfig names the result files written after a run.
type OutputConfig struct {
	// Format is "json" or "csv".
	Format string `json:"format"`
	// Dir is the directory result files are written into.
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Dir == "" {
		c.Dir = "."
	}
}

// Validate checks the format.
func (c OutputConfig) Validate() error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("unknown output format %s", c.Format)
	}
	return nil
}

// Load reads the configuration file at path. Environment variables with a
// PF_ prefix override file values, with __ as the nesting separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("PF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Engine.SetDefaults()
	cfg.PlanLog.SetDefaults()
	cfg.Output.SetDefaults()
	if err := cfg.Calendar.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.PlanLog.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Engine.Alloc.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}
