package source

import (
	"context"
	"fmt"

	"github.com/fxsml/oddeven/message"
)

// GatewaySource is the source attribute of messages submitted through a Gateway.
const GatewaySource = "/gateway"

// Sender delivers a message to a named channel. *bus.Bus implements it.
type Sender interface {
	Send(ctx context.Context, channel string, msg *message.Message) error
}

// Gateway is the entry point for callers outside the pipeline.
type Gateway interface {
	// Submit enqueues number on the entry channel. It returns once the
	// number is queued, not when it is processed. Errors wrap ErrSubmission.
	Submit(ctx context.Context, number int) error
}

type gateway struct {
	sender  Sender
	channel string
}

// NewGateway returns a Gateway that submits to channel through sender.
func NewGateway(sender Sender, channel string) Gateway {
	return &gateway{sender: sender, channel: channel}
}

func (g *gateway) Submit(ctx context.Context, number int) error {
	msg := message.New(number, GatewaySource)
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmission, err)
	}
	if err := g.sender.Send(ctx, g.channel, msg); err != nil {
		return fmt.Errorf("%w: %d to %s: %w", ErrSubmission, number, g.channel, err)
	}
	return nil
}
