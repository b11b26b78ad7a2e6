package storyteller

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithLogger sets the structured logger; nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces the time source used by HandleScroll, HandleResize and
// Sample.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithEmitter forwards telemetry events. Emit is called outside the engine lock
// and must not block.
func WithEmitter(emitter Emitter) Option {
	return func(e *Engine) {
		if emitter != nil {
			e.emitter = emitter
		}
	}
}

// WithActuator sets the host actuator used for programmatic scrolls. Without it
// the engine falls back to the Source when that also implements Actuator.
func WithActuator(actuator Actuator) Option {
	return func(e *Engine) {
		if actuator != nil {
			e.actuator = actuator
		}
	}
}

// IDGenerator mints engine and observer identifiers.
type IDGenerator interface {
	NewRawID() (uuid.UUID, error)
}

// WithIDGenerator replaces the default UUIDv7 generator, typically with a
// deterministic sequence for replays.
func WithIDGenerator(ids IDGenerator) Option {
	return func(e *Engine) {
		if ids != nil {
			e.ids = ids
		}
	}
}
