package storyteller

import "math"

// ScrollMetrics is a single geometry sample taken from a scroll source.
type ScrollMetrics struct {
	// Offset is the current scroll position (scrollTop / scrollY).
	Offset float64
	// ScrollableExtent is the total content extent (scrollHeight).
	ScrollableExtent float64
	// ViewportExtent is the visible extent of the source (clientHeight).
	ViewportExtent float64
	// TopOffset is excluded from the start of the scrollable range.
	TopOffset float64
	// BottomOffset is excluded from the end of the scrollable range.
	BottomOffset float64
}

// ScrollProgress is the normalized result of one computation. It is passed to
// observers by value.
type ScrollProgress struct {
	Progress         float64
	Offset           float64
	ScrollableExtent float64
	ViewportExtent   float64
}

// sanitized zeroes NaN fields and negative extents. Transient layout states can
// report either, so they are clamped rather than rejected.
func (m ScrollMetrics) sanitized() ScrollMetrics {
	m.Offset = finite(m.Offset)
	m.ScrollableExtent = math.Max(0, finite(m.ScrollableExtent))
	m.ViewportExtent = math.Max(0, finite(m.ViewportExtent))
	m.TopOffset = finite(m.TopOffset)
	m.BottomOffset = finite(m.BottomOffset)
	return m
}

// UsableExtent is the scrollable distance left after subtracting the viewport
// and the configured offsets. It is never negative.
func UsableExtent(m ScrollMetrics) float64 {
	m = m.sanitized()
	usable := m.ScrollableExtent - m.ViewportExtent - m.TopOffset - m.BottomOffset
	if usable <= 0 || math.IsInf(usable, 0) {
		return 0
	}
	return usable
}

// Compute maps metrics to a progress value clamped to [0,1]. Degenerate
// geometry (nothing to scroll) yields 0.
func Compute(m ScrollMetrics) ScrollProgress {
	m = m.sanitized()
	out := ScrollProgress{
		Offset:           m.Offset,
		ScrollableExtent: m.ScrollableExtent,
		ViewportExtent:   m.ViewportExtent,
	}
	usable := UsableExtent(m)
	if usable == 0 {
		return out
	}
	out.Progress = clamp01((m.Offset - m.TopOffset) / usable)
	return out
}

// TargetFor returns the raw offset at which Compute would report p for the
// geometry in m. It is the inverse of Compute over the usable extent.
func TargetFor(m ScrollMetrics, p float64) float64 {
	m = m.sanitized()
	return m.TopOffset + clamp01(p)*UsableExtent(m)
}

// IsInRange reports whether the progress lies in [lower, upper], inclusive.
func (p ScrollProgress) IsInRange(lower, upper float64) bool {
	return p.Progress >= lower && p.Progress <= upper
}

// InRange re-maps progress into the local space of [lower, upper]: 0 at or
// below lower, 1 at or above upper, linear in between.
func (p ScrollProgress) InRange(lower, upper float64) float64 {
	switch {
	case p.Progress <= lower:
		return 0
	case p.Progress >= upper:
		return 1
	default:
		return clamp01((p.Progress - lower) / (upper - lower))
	}
}

// Eased applies an easing curve to the progress value.
func (p ScrollProgress) Eased(e Easing) float64 {
	return e.Apply(p.Progress)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
