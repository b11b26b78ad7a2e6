package sinks

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// PrometheusSink exports scroll engine activity via Prometheus. It owns all
// collectors for sample admission, range transitions, programmatic scrolls and
// the last admitted progress per engine.
type PrometheusSink struct {
	samples      *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	requests     *prometheus.CounterVec
	progress     *prometheus.GaugeVec
	distance     prometheus.Counter
	progressDist prometheus.Histogram
	enginesSeen  prometheus.Gauge

	tracker *engineTracker
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scroll_samples_total",
			Help: "Scroll samples seen by engines partitioned by throttle result.",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scroll_range_transitions_total",
			Help: "Range enter/exit edges fired to observers.",
		}, []string{"direction"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scroll_requests_total",
			Help: "Programmatic scroll requests partitioned by result.",
		}, []string{"result"}),
		progress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scroll_progress",
			Help: "Last admitted scroll progress (0.0 to 1.0) per engine.",
		}, []string{"engine_id"}),
		distance: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scroll_progress_distance_total",
			Help: "Sum of absolute progress deltas between admitted samples.",
		}),
		progressDist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scroll_progress_distribution",
			Help:    "Distribution of admitted progress values.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		enginesSeen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scroll_engines_seen",
			Help: "Distinct engines that have reported an admitted sample.",
		}),
		tracker: newEngineTracker(),
	}
	for _, collector := range []prometheus.Collector{
		s.samples,
		s.transitions,
		s.requests,
		s.progress,
		s.distance,
		s.progressDist,
		s.enginesSeen,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register scroll collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the Prometheus collectors using the provided batch. It is
// safe for concurrent use by multiple goroutines.
func (s *PrometheusSink) Consume(_ context.Context, batch []storyteller.Event) error {
	for _, evt := range batch {
		s.consumeEvent(evt)
	}
	return nil
}

func (s *PrometheusSink) consumeEvent(evt storyteller.Event) {
	switch evt.Stage {
	case storyteller.StageSampleAccepted:
		s.samples.WithLabelValues("accepted").Inc()
		s.progress.WithLabelValues(evt.EngineID.String()).Set(evt.Progress)
		s.progressDist.Observe(evt.Progress)
		delta, first := s.tracker.advance(evt.EngineID, evt.Progress)
		if first {
			s.enginesSeen.Inc()
		}
		s.distance.Add(delta)
	case storyteller.StageSampleDropped:
		s.samples.WithLabelValues("dropped").Inc()
	case storyteller.StageRangeEnter:
		s.transitions.WithLabelValues("enter").Inc()
	case storyteller.StageRangeExit:
		s.transitions.WithLabelValues("exit").Inc()
	case storyteller.StageScrollRequested:
		s.requests.WithLabelValues("ok").Inc()
	case storyteller.StageScrollFailed:
		s.requests.WithLabelValues("error").Inc()
	}
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}

type engineTracker struct {
	mu   sync.Mutex
	last map[uuid.UUID]float64
}

func newEngineTracker() *engineTracker {
	return &engineTracker{last: make(map[uuid.UUID]float64)}
}

// advance records progress for id and returns the absolute change since the
// previous sample, and whether this is the first sample seen for id.
func (t *engineTracker) advance(id uuid.UUID, progress float64) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.last[id]
	t.last[id] = progress
	if !ok {
		return 0, true
	}
	return math.Abs(progress - prev), false
}
