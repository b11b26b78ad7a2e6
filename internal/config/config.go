// Package config loads and validates storyteller configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Ranges    []RangeConfig   `mapstructure:"ranges"`
}

// EngineConfig mirrors storyteller.Config in configuration form.
type EngineConfig struct {
	Throttle        time.Duration `mapstructure:"throttle"`
	SmoothScroll    bool          `mapstructure:"smooth_scroll"`
	TopOffset       float64       `mapstructure:"top_offset"`
	BottomOffset    float64       `mapstructure:"bottom_offset"`
	RunStraightAway bool          `mapstructure:"run_straight_away"`
	ResizeDebounce  time.Duration `mapstructure:"resize_debounce"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// TelemetryConfig sizes the event hub.
type TelemetryConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BufferSize     int           `mapstructure:"buffer_size"`
	MaxBatchEvents int           `mapstructure:"max_batch_events"`
	MaxBatchWait   time.Duration `mapstructure:"max_batch_wait"`
}

// RangeConfig declares one named observer registered by the replay command.
// Once removes the observer after its first notification.
type RangeConfig struct {
	Name   string  `mapstructure:"name"`
	From   float64 `mapstructure:"from"`
	To     float64 `mapstructure:"to"`
	Kind   string  `mapstructure:"kind"`
	Easing string  `mapstructure:"easing"`
	Once   bool    `mapstructure:"once"`
}

// ObserverKind resolves the configured kind. Only bounded kinds are accepted.
func (r RangeConfig) ObserverKind() (storyteller.ObserverKind, error) {
	kind, err := storyteller.ParseObserverKind(strings.ToLower(strings.TrimSpace(r.Kind)))
	if err != nil {
		return kind, err
	}
	if kind == storyteller.KindScroll {
		return kind, fmt.Errorf("range kind must be progress, enter or exit")
	}
	return kind, nil
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STORYTELLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.throttle", storyteller.DefaultThrottleInterval)
	v.SetDefault("engine.smooth_scroll", true)
	v.SetDefault("engine.top_offset", 0.0)
	v.SetDefault("engine.bottom_offset", 0.0)
	v.SetDefault("engine.run_straight_away", false)
	v.SetDefault("engine.resize_debounce", storyteller.DefaultResizeDebounce)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.buffer_size", 1024)
	v.SetDefault("telemetry.max_batch_events", 128)
	v.SetDefault("telemetry.max_batch_wait", 250*time.Millisecond)
}

// Validate enforces required values and reasonable limits. Engine offsets are
// passed through unchecked; the engine clamps whatever they produce.
func (c Config) Validate() error {
	if c.Engine.Throttle < 0 {
		return fmt.Errorf("engine.throttle must be >= 0")
	}
	if c.Engine.ResizeDebounce < 0 {
		return fmt.Errorf("engine.resize_debounce must be >= 0")
	}
	if c.Telemetry.Enabled {
		if c.Telemetry.BufferSize <= 0 {
			return fmt.Errorf("telemetry.buffer_size must be > 0 when telemetry is enabled")
		}
		if c.Telemetry.MaxBatchEvents <= 0 {
			return fmt.Errorf("telemetry.max_batch_events must be > 0 when telemetry is enabled")
		}
		if c.Telemetry.MaxBatchWait <= 0 {
			return fmt.Errorf("telemetry.max_batch_wait must be > 0 when telemetry is enabled")
		}
	}

	var errs error
	seen := make(map[string]struct{}, len(c.Ranges))
	for i, r := range c.Ranges {
		label := r.Name
		if label == "" {
			errs = multierr.Append(errs, fmt.Errorf("ranges[%d]: name is required", i))
			label = fmt.Sprintf("#%d", i)
		} else if _, dup := seen[r.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("ranges[%d]: duplicate name %q", i, r.Name))
		}
		seen[r.Name] = struct{}{}
		if err := storyteller.ValidateRange(r.From, r.To); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("range %s: %w", label, err))
		}
		if _, err := r.ObserverKind(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("range %s: %w", label, err))
		}
		if _, err := storyteller.ParseEasing(r.Easing); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("range %s: %w", label, err))
		}
	}
	return errs
}

// EngineConfig converts the engine section into the library configuration.
func (c Config) EngineConfig() storyteller.Config {
	return storyteller.Config{
		ThrottleInterval: c.Engine.Throttle,
		SmoothScroll:     c.Engine.SmoothScroll,
		TopOffset:        c.Engine.TopOffset,
		BottomOffset:     c.Engine.BottomOffset,
		RunStraightAway:  c.Engine.RunStraightAway,
		ResizeDebounce:   c.Engine.ResizeDebounce,
	}
}
