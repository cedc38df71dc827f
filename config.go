package leveling

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/leveling/internal/logging"
	"github.com/viant/leveling/internal/metrics"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/plan"
	"github.com/viant/leveling/policy"
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/meta"
)

// MaxPrecision bounds the decimal places of hour quantities.
const MaxPrecision = allocation.MaxPrecision

// Config is a serialisable representation of the engine configuration. The
// zero-value of any nested section inherits DefaultConfig values when loaded
// with LoadConfig.
type Config struct {
	Leveling LevelingConfig `json:"leveling" yaml:"leveling"`
	Overtime *policy.Config `json:"overtime,omitempty" yaml:"overtime,omitempty"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// LevelingConfig controls hour arithmetic and the system default calendar.
type LevelingConfig struct {
	Precision   int32    `json:"precision" yaml:"precision"`
	HoursPerDay float64  `json:"hoursPerDay" yaml:"hoursPerDay"`
	WorkingDays []string `json:"workingDays,omitempty" yaml:"workingDays,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns a Config populated with the engine defaults. Callers
// may modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Leveling: LevelingConfig{
			Precision:   2,
			HoursPerDay: calendar.DefaultHoursPerDay,
		},
		Overtime: &policy.Config{Mode: policy.ModeAllow},
		Tracing: TracingConfig{
			ServiceName:    "leveling",
			ServiceVersion: "0.1.0",
		},
		Metrics: MetricsConfig{Namespace: "leveling"},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Leveling.Precision < 0 || c.Leveling.Precision > MaxPrecision {
		return fmt.Errorf("leveling.precision must be within 0..%d, got %d", MaxPrecision, c.Leveling.Precision)
	}
	if c.Leveling.HoursPerDay <= 0 || c.Leveling.HoursPerDay > 24 {
		return fmt.Errorf("leveling.hoursPerDay must be within (0, 24], got %v", c.Leveling.HoursPerDay)
	}
	for _, day := range c.Leveling.WorkingDays {
		if _, err := plan.ParseWeekday(day); err != nil {
			return fmt.Errorf("leveling.workingDays: %w", err)
		}
	}
	if err := c.Overtime.Validate(); err != nil {
		return fmt.Errorf("overtime: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// DefaultCalendar builds the system calendar: HoursPerDay on every working
// day, or on every day when WorkingDays is empty.
func (c *Config) DefaultCalendar() calendar.Calendar {
	hours := decimal.NewFromFloat(c.Leveling.HoursPerDay)
	if len(c.Leveling.WorkingDays) == 0 {
		return calendar.NewSameWorkHoursEveryDay(hours)
	}
	weekdays := make([]time.Weekday, 0, len(c.Leveling.WorkingDays))
	for _, day := range c.Leveling.WorkingDays {
		if weekday, err := plan.ParseWeekday(day); err == nil {
			weekdays = append(weekdays, weekday)
		}
	}
	return calendar.NewWeekly(hours, weekdays...)
}

// LoadConfig reads a YAML configuration from URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	cfg := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromConfig creates a Service from cfg; options are applied after the
// configuration and take precedence.
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	configured := []Option{
		WithPrecision(cfg.Leveling.Precision),
		WithDefaultCalendar(cfg.DefaultCalendar()),
		WithOvertimePolicy(policy.FromConfig(cfg.Overtime)),
		WithLogger(logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)),
	}
	if cfg.Metrics.Enabled {
		configured = append(configured, WithMetrics(metrics.NewPrometheus(prometheus.DefaultRegisterer, cfg.Metrics.Namespace)))
	}
	if cfg.Tracing.Enabled {
		configured = append(configured, WithTracing(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.OutputFile))
	}
	return New(append(configured, options...)...), nil
}
