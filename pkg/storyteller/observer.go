package storyteller

import (
	"fmt"

	"github.com/google/uuid"
)

// ObserverKind selects how an observer reacts to accepted samples.
type ObserverKind int

// Observer kinds. KindScroll observes the whole range and ignores bounds.
const (
	KindScroll ObserverKind = iota
	KindProgress
	KindEnter
	KindExit
)

func (k ObserverKind) String() string {
	switch k {
	case KindScroll:
		return "scroll"
	case KindProgress:
		return "progress"
	case KindEnter:
		return "enter"
	case KindExit:
		return "exit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseObserverKind resolves a configuration name.
func ParseObserverKind(name string) (ObserverKind, error) {
	for _, k := range []ObserverKind{KindScroll, KindProgress, KindEnter, KindExit} {
		if k.String() == name {
			return k, nil
		}
	}
	return KindScroll, fmt.Errorf("unknown observer kind %q", name)
}

// ObserverID identifies a registration.
type ObserverID uuid.UUID

func (id ObserverID) String() string {
	return uuid.UUID(id).String()
}

// ProgressFunc receives accepted samples (scroll, enter and exit kinds).
type ProgressFunc func(ScrollProgress)

// RangeFunc receives accepted samples inside a range together with the
// progress re-mapped into the range's local [0,1] space.
type RangeFunc func(p ScrollProgress, rangeProgress float64)

// Observer describes one registration. KindProgress uses OnRange; every other
// kind uses OnProgress. With Once set the observer is removed after its first
// callback, so an enter observer ignores later re-entries.
type Observer struct {
	Lower      float64
	Upper      float64
	Kind       ObserverKind
	Once       bool
	OnProgress ProgressFunc
	OnRange    RangeFunc
}

// Validate checks the bounds and that the callback matching Kind is set.
func (o Observer) Validate() error {
	switch o.Kind {
	case KindScroll:
		if o.OnProgress == nil {
			return fmt.Errorf("scroll observer requires OnProgress")
		}
		return nil
	case KindProgress:
		if o.OnRange == nil {
			return fmt.Errorf("progress observer requires OnRange")
		}
	case KindEnter, KindExit:
		if o.OnProgress == nil {
			return fmt.Errorf("%s observer requires OnProgress", o.Kind)
		}
	default:
		return fmt.Errorf("unknown observer kind %d", int(o.Kind))
	}
	return ValidateRange(o.Lower, o.Upper)
}

// ValidateRange enforces 0 <= lower < upper <= 1.
func ValidateRange(lower, upper float64) error {
	if !(lower >= 0 && upper <= 1 && lower < upper) {
		return &InvalidRangeError{Lower: lower, Upper: upper}
	}
	return nil
}

// registration is the engine-owned state for one observer.
type registration struct {
	id     ObserverID
	obs    Observer
	inside bool
	spent  bool
}

func (r *registration) bounds() (float64, float64) {
	if r.obs.Kind == KindScroll {
		return 0, 1
	}
	return r.obs.Lower, r.obs.Upper
}

// call is one pending callback invocation, run outside the engine lock.
type call func()

// evaluate advances membership for p and returns the invocation it triggers,
// or nil. The second result reports an enter/exit edge. A Once registration
// is marked spent by the first invocation it returns.
func (r *registration) evaluate(p ScrollProgress) (call, bool) {
	if r.spent {
		return nil, false
	}
	c, edge := r.next(p)
	if c != nil && r.obs.Once {
		r.spent = true
	}
	return c, edge
}

func (r *registration) next(p ScrollProgress) (call, bool) {
	lower, upper := r.bounds()
	inside := p.IsInRange(lower, upper)
	was := r.inside
	r.inside = inside

	switch r.obs.Kind {
	case KindScroll:
		fn := r.obs.OnProgress
		return func() { fn(p) }, false
	case KindProgress:
		if !inside {
			return nil, false
		}
		fn := r.obs.OnRange
		local := clamp01((p.Progress - lower) / (upper - lower))
		return func() { fn(p, local) }, false
	case KindEnter:
		if inside && !was {
			fn := r.obs.OnProgress
			return func() { fn(p) }, true
		}
	case KindExit:
		if !inside && was {
			fn := r.obs.OnProgress
			return func() { fn(p) }, true
		}
	}
	return nil, false
}
