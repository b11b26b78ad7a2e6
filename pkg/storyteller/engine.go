package storyteller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/scroll-storyteller/internal/clock/system"
	iduuid "github.com/JakeFAU/scroll-storyteller/internal/id/uuid"
)

// sourceUnknown labels binding failures where no source was supplied.
const sourceUnknown SourceKind = -1

// Engine computes scroll progress from sampled metrics and dispatches it to
// registered observers. It is safe for concurrent use; samples are dispatched
// one at a time. Observer callbacks run outside the state lock and may register
// or unregister observers, but must not feed samples back into the engine.
//
// The RunStraightAway callback made by Register is not serialized with sample
// dispatch: a sample admitted concurrently with Register may reach the new
// observer before the initial callback carrying the older progress.
type Engine struct {
	id       uuid.UUID
	src      Source
	cfg      Config
	clock    Clock
	logger   *zap.Logger
	emitter  Emitter
	actuator Actuator
	ids      IDGenerator

	// dispatchMu serializes whole samples so callbacks for one sample never
	// interleave with another's.
	dispatchMu sync.Mutex

	mu         sync.Mutex
	scrollGate gate
	resizeGate gate
	metrics    ScrollMetrics
	current    ScrollProgress
	observers  []*registration
	closed     bool
}

// New binds an engine to src. It fails with a *BindingError when src is nil or
// is an element without scrollable overflow. The initial progress is computed
// from the source right away but not dispatched.
func New(src Source, cfg Config, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, &BindingError{Kind: sourceUnknown, Reason: "source is nil"}
	}
	if src.Kind() == SourceElement && !src.Scrollable() {
		return nil, &BindingError{Kind: SourceElement, Reason: "element has no scrollable overflow"}
	}
	cfg = cfg.normalized()
	e := &Engine{
		src:        src,
		cfg:        cfg,
		clock:      system.New(),
		logger:     zap.NewNop(),
		emitter:    nopEmitter{},
		ids:        iduuid.NewUUIDGenerator(),
		scrollGate: gate{interval: cfg.ThrottleInterval},
		resizeGate: gate{interval: cfg.ResizeDebounce},
	}
	if act, ok := src.(Actuator); ok {
		e.actuator = act
	}
	for _, opt := range opts {
		opt(e)
	}
	id, err := e.ids.NewRawID()
	if err != nil {
		return nil, fmt.Errorf("generate engine id: %w", err)
	}
	e.id = id
	e.metrics = cfg.apply(src.Metrics())
	e.current = Compute(e.metrics)
	e.logger.Debug("scroll engine bound",
		zap.Stringer("engine_id", e.id),
		zap.Stringer("source", src.Kind()),
		zap.Duration("throttle", cfg.ThrottleInterval),
		zap.Float64("progress", e.current.Progress),
	)
	return e, nil
}

// NewWindow binds to the document-level scroll source.
func NewWindow(src Source, cfg Config, opts ...Option) (*Engine, error) {
	if src != nil && src.Kind() != SourceWindow {
		return nil, &BindingError{Kind: SourceWindow, Reason: fmt.Sprintf("got %s source", src.Kind())}
	}
	return New(src, cfg, opts...)
}

// NewElement binds to a scrollable element.
func NewElement(src Source, cfg Config, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, &BindingError{Kind: SourceElement, Reason: "element is nil"}
	}
	if src.Kind() != SourceElement {
		return nil, &BindingError{Kind: SourceElement, Reason: fmt.Sprintf("got %s source", src.Kind())}
	}
	return New(src, cfg, opts...)
}

// ID identifies the engine in telemetry events.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Progress returns the most recently computed progress.
func (e *Engine) Progress() ScrollProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Len reports the number of registered observers.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.observers)
}

// HandleScroll reads the source and feeds the result through the throttle gate.
// Hosts call it from their native scroll listener.
func (e *Engine) HandleScroll() (ScrollProgress, bool) {
	return e.SampleAt(e.clock.Now(), e.src.Metrics())
}

// HandleResize re-reads the source after a layout change. It is gated by
// ResizeDebounce instead of the scroll throttle and dispatches like a scroll
// sample when admitted.
func (e *Engine) HandleResize() (ScrollProgress, bool) {
	return e.sample(e.clock.Now(), e.src.Metrics(), &e.resizeGate)
}

// Sample feeds host-supplied metrics stamped with the engine clock.
func (e *Engine) Sample(m ScrollMetrics) (ScrollProgress, bool) {
	return e.SampleAt(e.clock.Now(), m)
}

// SampleAt feeds metrics observed at now. The configured offsets replace any in
// m. It returns the computed progress and whether the sample passed the
// throttle gate and was dispatched. Dropped samples leave the engine state
// untouched.
func (e *Engine) SampleAt(now time.Time, m ScrollMetrics) (ScrollProgress, bool) {
	return e.sample(now, m, &e.scrollGate)
}

func (e *Engine) sample(now time.Time, m ScrollMetrics, g *gate) (ScrollProgress, bool) {
	e.dispatchMu.Lock()
	defer e.dispatchMu.Unlock()

	m = e.cfg.apply(m)
	p := Compute(m)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return p, false
	}
	if !g.allow(now) {
		e.mu.Unlock()
		e.emit(Event{TS: now, Stage: StageSampleDropped, Progress: p.Progress, Offset: p.Offset})
		return p, false
	}
	e.metrics = m
	e.current = p
	calls := make([]call, 0, len(e.observers))
	var (
		edges []Event
		spent bool
	)
	for _, reg := range e.observers {
		c, edge := reg.evaluate(p)
		if c != nil {
			calls = append(calls, c)
		}
		if edge {
			stage := StageRangeEnter
			if reg.obs.Kind == KindExit {
				stage = StageRangeExit
			}
			edges = append(edges, Event{TS: now, Stage: stage, Observer: reg.id, Progress: p.Progress, Offset: p.Offset})
		}
		spent = spent || reg.spent
	}
	if spent {
		e.pruneSpent()
	}
	e.mu.Unlock()

	e.emit(Event{TS: now, Stage: StageSampleAccepted, Progress: p.Progress, Offset: p.Offset})
	for _, evt := range edges {
		e.emit(evt)
	}
	for _, c := range calls {
		c()
	}
	return p, true
}

// Register adds an observer through the single registration path shared by
// the On* helpers. Range kinds are rejected with an *InvalidRangeError unless
// 0 <= Lower < Upper <= 1. Membership starts outside the range, so the first
// admitted sample inside it fires an enter.
func (e *Engine) Register(o Observer) (ObserverID, error) {
	if err := o.Validate(); err != nil {
		var rangeErr *InvalidRangeError
		if errors.As(err, &rangeErr) {
			return ObserverID{}, rangeErr
		}
		return ObserverID{}, fmt.Errorf("register observer: %w", err)
	}
	raw, err := e.ids.NewRawID()
	if err != nil {
		return ObserverID{}, fmt.Errorf("generate observer id: %w", err)
	}
	reg := &registration{id: ObserverID(raw), obs: o}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ObserverID{}, ErrClosed
	}
	var initial call
	if e.cfg.RunStraightAway {
		initial, _ = reg.evaluate(e.current)
	}
	if !reg.spent {
		e.observers = append(e.observers, reg)
	}
	e.mu.Unlock()

	e.logger.Debug("scroll observer registered",
		zap.Stringer("engine_id", e.id),
		zap.Stringer("observer_id", reg.id),
		zap.Stringer("kind", o.Kind),
		zap.Float64("lower", o.Lower),
		zap.Float64("upper", o.Upper),
	)
	if initial != nil {
		initial()
	}
	return reg.id, nil
}

// OnScroll observes every admitted sample.
func (e *Engine) OnScroll(fn ProgressFunc) (ObserverID, error) {
	return e.Register(Observer{Kind: KindScroll, OnProgress: fn})
}

// OnProgressRange observes admitted samples inside [lower, upper], passing the
// progress re-mapped into the range.
func (e *Engine) OnProgressRange(lower, upper float64, fn RangeFunc) (ObserverID, error) {
	return e.Register(Observer{Kind: KindProgress, Lower: lower, Upper: upper, OnRange: fn})
}

// OnEnterRange fires when progress moves into [lower, upper].
func (e *Engine) OnEnterRange(lower, upper float64, fn ProgressFunc) (ObserverID, error) {
	return e.Register(Observer{Kind: KindEnter, Lower: lower, Upper: upper, OnProgress: fn})
}

// OnExitRange fires when progress leaves [lower, upper].
func (e *Engine) OnExitRange(lower, upper float64, fn ProgressFunc) (ObserverID, error) {
	return e.Register(Observer{Kind: KindExit, Lower: lower, Upper: upper, OnProgress: fn})
}

// Unregister removes an observer. It takes effect from the next sample and
// reports whether the id was registered.
func (e *Engine) Unregister(id ObserverID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, reg := range e.observers {
		if reg.id != id {
			continue
		}
		observers := make([]*registration, 0, len(e.observers)-1)
		observers = append(observers, e.observers[:i]...)
		e.observers = append(observers, e.observers[i+1:]...)
		e.logger.Debug("scroll observer unregistered", zap.Stringer("observer_id", id))
		return true
	}
	return false
}

// pruneSpent drops Once registrations that already fired. The slice is
// rebuilt so snapshots held by an in-flight dispatch stay intact. Callers hold
// e.mu.
func (e *Engine) pruneSpent() {
	observers := make([]*registration, 0, len(e.observers))
	for _, reg := range e.observers {
		if reg.spent {
			e.logger.Debug("scroll observer spent", zap.Stringer("observer_id", reg.id))
			continue
		}
		observers = append(observers, reg)
	}
	e.observers = observers
}

// Close drops every observer. Later samples are ignored and registrations fail
// with ErrClosed. It is safe to call multiple times.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.observers = nil
	e.logger.Debug("scroll engine closed", zap.Stringer("engine_id", e.id))
}

// TargetOffset returns the raw offset at which the most recently admitted
// metrics would report progress p.
func (e *Engine) TargetOffset(p float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return TargetFor(e.metrics, p)
}

// ScrollToProgress asks the actuator to move the source to progress p.
func (e *Engine) ScrollToProgress(ctx context.Context, p float64) error {
	return e.ScrollToOffset(ctx, e.TargetOffset(p))
}

// ScrollToOffset asks the actuator to move the source to a raw offset. The
// engine does not animate; SmoothScroll is passed through to the host.
func (e *Engine) ScrollToOffset(ctx context.Context, offset float64) error {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return ErrClosed
	}
	now := e.clock.Now()
	smooth := e.cfg.SmoothScroll
	if e.actuator == nil {
		return &ScrollActuationError{Target: offset, Smooth: smooth, Err: ErrNoActuator}
	}
	if err := e.actuator.ScrollTo(ctx, offset, smooth); err != nil {
		actErr := &ScrollActuationError{Target: offset, Smooth: smooth, Err: err}
		e.logger.Warn("programmatic scroll failed", zap.Float64("target", offset), zap.Error(err))
		e.emit(Event{TS: now, Stage: StageScrollFailed, Offset: offset, Note: err.Error()})
		return actErr
	}
	e.emit(Event{TS: now, Stage: StageScrollRequested, Offset: offset})
	return nil
}

func (e *Engine) emit(evt Event) {
	evt.EngineID = e.id
	e.emitter.Emit(evt)
}
