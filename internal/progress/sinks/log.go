package sinks

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// LogSink writes each event as a structured log line. Accepted and dropped
// samples are logged at debug level; range transitions and programmatic
// scrolls at info, failures at warn.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch using structured fields.
func (s *LogSink) Consume(_ context.Context, batch []storyteller.Event) error {
	for _, evt := range batch {
		fields := []zap.Field{
			zap.Stringer("engine_id", evt.EngineID),
			zap.String("stage", string(evt.Stage)),
			zap.Time("ts", evt.TS),
			zap.Float64("progress", evt.Progress),
			zap.Float64("offset", evt.Offset),
		}
		if evt.Stage == storyteller.StageRangeEnter || evt.Stage == storyteller.StageRangeExit {
			fields = append(fields, zap.Stringer("observer_id", evt.Observer))
		}
		if evt.Note != "" {
			fields = append(fields, zap.String("note", evt.Note))
		}
		if ce := s.logger.Check(levelFor(evt.Stage), "scroll event"); ce != nil {
			ce.Write(fields...)
		}
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}

func levelFor(stage storyteller.Stage) zapcore.Level {
	switch stage {
	case storyteller.StageSampleAccepted, storyteller.StageSampleDropped:
		return zapcore.DebugLevel
	case storyteller.StageScrollFailed:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
