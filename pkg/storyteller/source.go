package storyteller

import (
	"context"
	"time"
)

// SourceKind distinguishes the whole-document scroll source from a scrollable
// element.
type SourceKind int

// Supported source kinds.
const (
	SourceWindow SourceKind = iota
	SourceElement
)

func (k SourceKind) String() string {
	switch k {
	case SourceWindow:
		return "window"
	case SourceElement:
		return "element"
	default:
		return "unknown"
	}
}

// Source is the host capability that supplies scroll geometry. The engine only
// reads it when the host reports a scroll or resize; it never polls.
type Source interface {
	Kind() SourceKind
	// Scrollable reports whether the source has overflow it can scroll.
	Scrollable() bool
	// Metrics returns the current offset and extents. Offsets from Config are
	// applied by the engine.
	Metrics() ScrollMetrics
}

// Actuator moves a scroll source to a raw offset. Animation, if any, is the
// host's business.
type Actuator interface {
	ScrollTo(ctx context.Context, offset float64, smooth bool) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
