package oddeven

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/source"
)

// SenderFunc adapts a function to source.Sender.
type SenderFunc func(ctx context.Context, channel string, msg *message.Message) error

// Send calls f(ctx, channel, msg).
func (f SenderFunc) Send(ctx context.Context, channel string, msg *message.Message) error {
	return f(ctx, channel, msg)
}

// Router forwards integer messages to the channel picked by Route.
type Router struct {
	sender source.Sender
	logger Logger
}

// NewRouter creates a Router sending through sender.
func NewRouter(sender source.Sender, logger Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{sender: sender, logger: logger}
}

// Handle routes msg. It fails with message.ErrUnexpectedPayload for a
// non-integer payload and returns send failures unchanged.
func (r *Router) Handle(ctx context.Context, msg *message.Message) error {
	p, err := msg.Int()
	if err != nil {
		return err
	}
	ch := Route(p)
	r.logger.Info("Routed number", "number", p, "channel", ch, "route", fmt.Sprintf("%d → %s", p, ch))
	return r.sender.Send(ctx, ch, msg.Copy())
}
