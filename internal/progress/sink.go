package progress

import (
	"context"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// Sink consumes batches of engine events. Implementations must honor ctx
// deadlines and tolerate repeated Consume calls after a failure.
type Sink interface {
	Consume(ctx context.Context, batch []storyteller.Event) error
	Close(ctx context.Context) error
}

// SinkFunc adapts a plain function to Sink; Close is a no-op.
type SinkFunc func(ctx context.Context, batch []storyteller.Event) error

// Consume calls f.
func (f SinkFunc) Consume(ctx context.Context, batch []storyteller.Event) error {
	return f(ctx, batch)
}

// Close implements Sink.
func (SinkFunc) Close(context.Context) error {
	return nil
}

var _ storyteller.Emitter = (*Hub)(nil)
