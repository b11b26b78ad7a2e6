package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, want := cfg.EngineConfig(), storyteller.DefaultConfig(); got != want {
		t.Fatalf("expected default engine config %+v, got %+v", want, got)
	}
	if !cfg.Logging.Development {
		t.Fatalf("expected development logging by default")
	}
	if cfg.Telemetry.Enabled || cfg.Telemetry.BufferSize != 1024 || cfg.Telemetry.MaxBatchEvents != 128 {
		t.Fatalf("unexpected telemetry defaults: %+v", cfg.Telemetry)
	}
	if cfg.Telemetry.MaxBatchWait != 250*time.Millisecond {
		t.Fatalf("expected 250ms batch wait, got %v", cfg.Telemetry.MaxBatchWait)
	}
	if len(cfg.Ranges) != 0 {
		t.Fatalf("expected no ranges, got %+v", cfg.Ranges)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
engine:
  throttle: 100ms
  smooth_scroll: false
  top_offset: 64
  bottom_offset: 32
  run_straight_away: true
  resize_debounce: 0s
logging:
  development: false
  level: warn
telemetry:
  enabled: true
  buffer_size: 16
  max_batch_events: 4
  max_batch_wait: 1s
ranges:
  - name: hero
    from: 0
    to: 0.25
    kind: progress
    easing: ease-in-out
  - name: chapter-two
    from: 0.3
    to: 0.7
    kind: enter
    once: true
  - name: chapter-two-done
    from: 0.3
    to: 0.7
    kind: exit
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	engine := cfg.EngineConfig()
	want := storyteller.Config{
		ThrottleInterval: 100 * time.Millisecond,
		SmoothScroll:     false,
		TopOffset:        64,
		BottomOffset:     32,
		RunStraightAway:  true,
		ResizeDebounce:   0,
	}
	if engine != want {
		t.Fatalf("expected engine config %+v, got %+v", want, engine)
	}
	if cfg.Logging.Development || cfg.Logging.Level != "warn" {
		t.Fatalf("expected logging overrides to apply: %+v", cfg.Logging)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.MaxBatchWait != time.Second {
		t.Fatalf("expected telemetry overrides to apply: %+v", cfg.Telemetry)
	}
	if len(cfg.Ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(cfg.Ranges))
	}
	hero := cfg.Ranges[0]
	if hero.Name != "hero" || hero.From != 0 || hero.To != 0.25 || hero.Easing != "ease-in-out" {
		t.Fatalf("unexpected hero range: %+v", hero)
	}
	if hero.Once || !cfg.Ranges[1].Once {
		t.Fatalf("expected once only on chapter-two: %+v", cfg.Ranges)
	}
	kind, err := cfg.Ranges[2].ObserverKind()
	if err != nil || kind != storyteller.KindExit {
		t.Fatalf("expected exit kind, got %v (%v)", kind, err)
	}
}

// TestLoadEnvOverride cannot run in parallel because it mutates the environment.
func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STORYTELLER_ENGINE_THROTTLE", "40ms")
	t.Setenv("STORYTELLER_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.Throttle != 40*time.Millisecond {
		t.Fatalf("expected env throttle 40ms, got %v", cfg.Engine.Throttle)
	}
	if !cfg.Telemetry.Enabled {
		t.Fatalf("expected env to enable telemetry")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read config error, got %v", err)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Engine: EngineConfig{Throttle: 16 * time.Millisecond},
		Ranges: []RangeConfig{{Name: "ok", From: 0.1, To: 0.2, Kind: "enter"}},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "negative throttle",
			cfg: func() Config {
				c := base
				c.Engine.Throttle = -time.Millisecond
				return c
			}(),
			want: "engine.throttle",
		},
		{
			name: "negative resize debounce",
			cfg: func() Config {
				c := base
				c.Engine.ResizeDebounce = -time.Millisecond
				return c
			}(),
			want: "engine.resize_debounce",
		},
		{
			name: "telemetry without buffer",
			cfg: func() Config {
				c := base
				c.Telemetry = TelemetryConfig{Enabled: true, MaxBatchEvents: 1, MaxBatchWait: time.Second}
				return c
			}(),
			want: "telemetry.buffer_size",
		},
		{
			name: "inverted range",
			cfg: func() Config {
				c := base
				c.Ranges = []RangeConfig{{Name: "bad", From: 0.7, To: 0.3, Kind: "enter"}}
				return c
			}(),
			want: "range bad",
		},
		{
			name: "unknown kind",
			cfg: func() Config {
				c := base
				c.Ranges = []RangeConfig{{Name: "bad", From: 0.1, To: 0.3, Kind: "wobble"}}
				return c
			}(),
			want: "unknown observer kind",
		},
		{
			name: "scroll kind rejected",
			cfg: func() Config {
				c := base
				c.Ranges = []RangeConfig{{Name: "bad", From: 0.1, To: 0.3, Kind: "scroll"}}
				return c
			}(),
			want: "progress, enter or exit",
		},
		{
			name: "unknown easing",
			cfg: func() Config {
				c := base
				c.Ranges = []RangeConfig{{Name: "bad", From: 0.1, To: 0.3, Kind: "progress", Easing: "bounce"}}
				return c
			}(),
			want: "unknown easing",
		},
		{
			name: "missing name",
			cfg: func() Config {
				c := base
				c.Ranges = []RangeConfig{{From: 0.1, To: 0.3, Kind: "enter"}}
				return c
			}(),
			want: "name is required",
		},
		{
			name: "duplicate name",
			cfg: func() Config {
				c := base
				c.Ranges = append([]RangeConfig{}, base.Ranges[0], base.Ranges[0])
				return c
			}(),
			want: "duplicate name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidateAcceptsNegativeOffsets(t *testing.T) {
	t.Parallel()

	cfg := Config{Engine: EngineConfig{TopOffset: -40, BottomOffset: -10}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected negative offsets to validate, got %v", err)
	}
	engine := cfg.EngineConfig()
	if engine.TopOffset != -40 || engine.BottomOffset != -10 {
		t.Fatalf("expected offsets to pass through, got %+v", engine)
	}
}

func TestConfigValidateWrapsRangeError(t *testing.T) {
	t.Parallel()

	cfg := Config{Ranges: []RangeConfig{{Name: "bad", From: 0.5, To: 0.5, Kind: "enter"}}}
	err := cfg.Validate()
	if !errors.Is(err, storyteller.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
