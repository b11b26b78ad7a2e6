package storyteller

import "time"

const (
	// DefaultThrottleInterval approximates one frame at 60Hz.
	DefaultThrottleInterval = 16 * time.Millisecond
	// DefaultResizeDebounce bounds how often resize notifications re-sample.
	DefaultResizeDebounce = 250 * time.Millisecond
)

// Config is supplied once at construction and never changes afterwards.
//   - ThrottleInterval: minimum gap between dispatched scroll samples; 0 disables throttling.
//   - SmoothScroll: passed to the Actuator on programmatic scrolls.
//   - TopOffset / BottomOffset: excluded from both ends of the scrollable range.
//   - RunStraightAway: evaluate newly registered observers against the current progress.
//   - ResizeDebounce: minimum gap between resize re-samples; 0 disables the gate.
type Config struct {
	ThrottleInterval time.Duration
	SmoothScroll     bool
	TopOffset        float64
	BottomOffset     float64
	RunStraightAway  bool
	ResizeDebounce   time.Duration
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		ThrottleInterval: DefaultThrottleInterval,
		SmoothScroll:     true,
		ResizeDebounce:   DefaultResizeDebounce,
	}
}

func (c Config) normalized() Config {
	if c.ThrottleInterval < 0 {
		c.ThrottleInterval = 0
	}
	if c.ResizeDebounce < 0 {
		c.ResizeDebounce = 0
	}
	return c
}

// apply stamps the configured offsets onto a raw source sample.
func (c Config) apply(m ScrollMetrics) ScrollMetrics {
	m.TopOffset = c.TopOffset
	m.BottomOffset = c.BottomOffset
	return m
}
