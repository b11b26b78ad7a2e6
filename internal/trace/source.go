package trace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// ErrDetached is returned by ScrollTo once the source has been detached.
var ErrDetached = errors.New("scroll source detached")

// Source is a replayable scroll container. The replay loop feeds recorded
// samples with Set; programmatic scrolls move the current offset inside the
// recorded extents.
type Source struct {
	kind storyteller.SourceKind

	mu       sync.Mutex
	current  storyteller.ScrollMetrics
	detached bool
	requests []Request
}

// Request records one ScrollTo call.
type Request struct {
	Offset float64
	Smooth bool
}

var (
	_ storyteller.Source   = (*Source)(nil)
	_ storyteller.Actuator = (*Source)(nil)
)

// NewSource builds an empty source of the given kind.
func NewSource(kind storyteller.SourceKind) *Source {
	return &Source{kind: kind}
}

// Set replaces the current metrics with a recorded sample.
func (s *Source) Set(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sample.Metrics()
}

// Detach marks the container as gone; later scroll requests fail.
func (s *Source) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

// Kind implements storyteller.Source.
func (s *Source) Kind() storyteller.SourceKind {
	return s.kind
}

// Scrollable reports whether content overflows the viewport.
func (s *Source) Scrollable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.detached && s.current.ScrollableExtent > s.current.ViewportExtent
}

// Metrics implements storyteller.Source.
func (s *Source) Metrics() storyteller.ScrollMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ScrollTo moves the current offset, clamped to [0, scrollable-viewport].
func (s *Source) ScrollTo(ctx context.Context, offset float64, smooth bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scroll to %g: %w", offset, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return ErrDetached
	}
	s.requests = append(s.requests, Request{Offset: offset, Smooth: smooth})
	limit := math.Max(0, s.current.ScrollableExtent-s.current.ViewportExtent)
	s.current.Offset = math.Min(math.Max(offset, 0), limit)
	return nil
}

// Requests returns a copy of every accepted ScrollTo call.
func (s *Source) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
