package storyteller

import (
	"fmt"
	"strings"
)

// Easing names a fixed curve mapping t in [0,1] onto [0,1].
type Easing int

// Supported easing curves. The plain In/Out/InOut variants are quadratic.
const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
)

var easingNames = map[Easing]string{
	Linear:         "linear",
	EaseIn:         "ease-in",
	EaseOut:        "ease-out",
	EaseInOut:      "ease-in-out",
	EaseInCubic:    "ease-in-cubic",
	EaseOutCubic:   "ease-out-cubic",
	EaseInOutCubic: "ease-in-out-cubic",
}

// Easings lists every supported curve in declaration order.
func Easings() []Easing {
	return []Easing{Linear, EaseIn, EaseOut, EaseInOut, EaseInCubic, EaseOutCubic, EaseInOutCubic}
}

// String returns the kebab-case name used in configuration files.
func (e Easing) String() string {
	if name, ok := easingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("easing(%d)", int(e))
}

// ParseEasing resolves a configuration name. Matching ignores case and accepts
// underscores in place of dashes; the empty string means Linear.
func ParseEasing(name string) (Easing, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if norm == "" {
		return Linear, nil
	}
	for e, n := range easingNames {
		if n == norm {
			return e, nil
		}
	}
	return Linear, fmt.Errorf("unknown easing %q", name)
}

// Apply evaluates the curve at t. Inputs outside [0,1] are clamped first.
func (e Easing) Apply(t float64) float64 {
	t = clamp01(t)
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// Interpolate maps progress onto [low, high] through the easing curve.
func Interpolate(progress, low, high float64, e Easing) float64 {
	return low + e.Apply(progress)*(high-low)
}

// RangeValue interpolates over the sub-range [lower, upper] of scroll progress:
// below lower it yields low, above upper it yields high.
func RangeValue(p ScrollProgress, lower, upper, low, high float64, e Easing) float64 {
	return Interpolate(p.InRange(lower, upper), low, high, e)
}

// ParallaxOffset returns the translation for a layer that moves distance units
// against the scroll direction over the full range.
func ParallaxOffset(progress, distance float64) float64 {
	return -clamp01(progress) * distance
}
