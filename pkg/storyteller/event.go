package storyteller

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the type of engine activity represented by an Event.
type Stage string

// Supported event stages.
const (
	StageSampleAccepted  Stage = "SAMPLE_ACCEPTED"
	StageSampleDropped   Stage = "SAMPLE_DROPPED"
	StageRangeEnter      Stage = "RANGE_ENTER"
	StageRangeExit       Stage = "RANGE_EXIT"
	StageScrollRequested Stage = "SCROLL_REQUESTED"
	StageScrollFailed    Stage = "SCROLL_FAILED"
)

// Event is a telemetry record describing what the engine did with a sample or
// a programmatic scroll. Events are informational; no engine behaviour depends
// on their delivery.
type Event struct {
	// EngineID identifies the emitting engine.
	EngineID uuid.UUID
	// TS is the sample or request time.
	TS time.Time
	// Stage denotes which activity occurred.
	Stage Stage
	// Observer is set for enter/exit transitions.
	Observer ObserverID
	// Progress is the computed progress for the sample.
	Progress float64
	// Offset is the raw offset sampled, or the scroll target requested.
	Offset float64
	// Note carries low-volume context such as error text.
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.EngineID == uuid.Nil {
		return errors.New("engine id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageSampleAccepted, StageSampleDropped, StageScrollRequested:
	case StageRangeEnter, StageRangeExit:
		if uuid.UUID(e.Observer) == uuid.Nil {
			return fmt.Errorf("%s requires observer id", e.Stage)
		}
	case StageScrollFailed:
		if e.Note == "" {
			return errors.New("scroll failure requires note")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Progress < 0 || e.Progress > 1 {
		return fmt.Errorf("progress %g outside [0,1]", e.Progress)
	}
	return nil
}

// Emitter publishes individual events. It must not block the caller.
type Emitter interface {
	Emit(evt Event)
}

type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}
