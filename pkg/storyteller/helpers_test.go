package storyteller

import (
	"context"
	"sync"
	"time"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type stubSource struct {
	mu         sync.Mutex
	kind       SourceKind
	scrollable bool
	metrics    ScrollMetrics
}

func newElementSource(offset, scrollable, viewport float64) *stubSource {
	return &stubSource{
		kind:       SourceElement,
		scrollable: true,
		metrics:    ScrollMetrics{Offset: offset, ScrollableExtent: scrollable, ViewportExtent: viewport},
	}
}

func (s *stubSource) Kind() SourceKind { return s.kind }

func (s *stubSource) Scrollable() bool { return s.scrollable }

func (s *stubSource) Metrics() ScrollMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

func (s *stubSource) SetOffset(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.Offset = offset
}

type scrollCall struct {
	offset float64
	smooth bool
}

type recordingActuator struct {
	mu    sync.Mutex
	calls []scrollCall
	err   error
}

func (a *recordingActuator) ScrollTo(_ context.Context, offset float64, smooth bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.calls = append(a.calls, scrollCall{offset: offset, smooth: smooth})
	return nil
}

func (a *recordingActuator) Calls() []scrollCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]scrollCall(nil), a.calls...)
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingEmitter) Emit(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingEmitter) Stages() []Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stage, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Stage)
	}
	return out
}

// metricsAt builds metrics with a usable extent of 1000 so offset/1000 is the
// expected progress.
func metricsAt(offset float64) ScrollMetrics {
	return ScrollMetrics{Offset: offset, ScrollableExtent: 1100, ViewportExtent: 100}
}

func unthrottled() Config {
	cfg := DefaultConfig()
	cfg.ThrottleInterval = 0
	return cfg
}
