package storyteller

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultEndThreshold triggers loads in the last tenth of the scroll range.
const DefaultEndThreshold = 0.9

// OnEndReached registers a scroll observer that runs load on its own goroutine
// once progress reaches threshold. While a load is running further crossings
// are ignored; after it returns the next admitted sample at or past threshold
// starts another. Thresholds outside (0,1] fall back to DefaultEndThreshold.
// Load errors are logged, not returned.
func (e *Engine) OnEndReached(ctx context.Context, threshold float64, load func(context.Context) error) (ObserverID, error) {
	if load == nil {
		return ObserverID{}, errors.New("end trigger requires a load function")
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultEndThreshold
	}
	var running atomic.Bool
	return e.OnScroll(func(p ScrollProgress) {
		if p.Progress < threshold || !running.CompareAndSwap(false, true) {
			return
		}
		go func() {
			defer running.Store(false)
			if err := load(ctx); err != nil {
				e.logger.Warn("end-of-scroll load failed",
					zap.Stringer("engine_id", e.id),
					zap.Float64("progress", p.Progress),
					zap.Error(err),
				)
			}
		}()
	})
}
