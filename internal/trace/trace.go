// Package trace reads recorded scroll traces and replays them through a
// storyteller.Source.
//
// A trace is JSON lines, one sample per line:
//
//	{"t_ms": 0, "offset": 0, "scrollable": 2000, "viewport": 800}
//	{"t_ms": 16, "offset": 12.5, "scrollable": 2000, "viewport": 800}
//
// Blank lines and lines starting with '#' are ignored.
package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// ErrMalformed marks a trace line that cannot be decoded or is out of order.
var ErrMalformed = errors.New("malformed trace")

// Sample is one recorded measurement.
type Sample struct {
	TMillis    int64   `json:"t_ms"`
	Offset     float64 `json:"offset"`
	Scrollable float64 `json:"scrollable"`
	Viewport   float64 `json:"viewport"`
}

// Metrics converts the sample into raw source metrics.
func (s Sample) Metrics() storyteller.ScrollMetrics {
	return storyteller.ScrollMetrics{
		Offset:           s.Offset,
		ScrollableExtent: s.Scrollable,
		ViewportExtent:   s.Viewport,
	}
}

// At returns the sample timestamp relative to start.
func (s Sample) At(start time.Time) time.Time {
	return start.Add(time.Duration(s.TMillis) * time.Millisecond)
}

// Read parses a whole trace. Timestamps must be non-negative and
// non-decreasing.
func Read(r io.Reader) ([]Sample, error) {
	scanner := bufio.NewScanner(r)
	var (
		out  []Sample
		line int
	)
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		var s Sample
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if s.TMillis < 0 {
			return nil, fmt.Errorf("%w: line %d: negative t_ms", ErrMalformed, line)
		}
		if n := len(out); n > 0 && s.TMillis < out[n-1].TMillis {
			return nil, fmt.Errorf("%w: line %d: t_ms %d before %d", ErrMalformed, line, s.TMillis, out[n-1].TMillis)
		}
		out = append(out, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return out, nil
}

// Duration reports the span covered by samples.
func Duration(samples []Sample) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	return time.Duration(samples[len(samples)-1].TMillis-samples[0].TMillis) * time.Millisecond
}
