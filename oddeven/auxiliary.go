package oddeven

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fxsml/oddeven/message"
)

// Auxiliary logs the raw messages of the channel it listens on.
type Auxiliary struct {
	logger Logger
}

// NewAuxiliary creates an Auxiliary subscriber.
func NewAuxiliary(logger Logger) *Auxiliary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auxiliary{logger: logger}
}

// Handle logs the payload and its kind.
func (a *Auxiliary) Handle(ctx context.Context, msg *message.Message) error {
	a.logger.Info("Auxiliary received", "payload", msg.Payload, "kind", msg.Kind())
	return nil
}

// Discard swallows everything it receives.
type Discard struct {
	logger   Logger
	received atomic.Int64
}

// NewDiscard creates a Discard sink.
func NewDiscard(logger Logger) *Discard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discard{logger: logger}
}

// Handle counts and logs msg.
func (d *Discard) Handle(ctx context.Context, msg *message.Message) error {
	d.received.Add(1)
	d.logger.Info("Discarded payload", "payload", msg.Payload)
	return nil
}

// Received returns the number of messages discarded so far.
func (d *Discard) Received() int64 {
	return d.received.Load()
}
