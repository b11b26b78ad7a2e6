package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// Stats summarizes a replay.
type Stats struct {
	Samples  int
	Accepted int
	Dropped  int
	Final    storyteller.ScrollProgress
}

// Replay feeds samples through engine in order, timestamping each one at
// start plus its recorded t_ms so throttling follows the recording rather than
// wall time. src receives each sample before the engine reads it.
func Replay(ctx context.Context, engine *storyteller.Engine, src *Source, samples []Sample, start time.Time) (Stats, error) {
	var stats Stats
	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("replay interrupted at sample %d: %w", i, err)
		}
		src.Set(s)
		p, ok := engine.SampleAt(s.At(start), src.Metrics())
		stats.Samples++
		if ok {
			stats.Accepted++
			stats.Final = p
		} else {
			stats.Dropped++
		}
	}
	return stats, nil
}
