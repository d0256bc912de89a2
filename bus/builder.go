package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/pipe"
)

// Mode is the delivery mode of a channel.
type Mode int

const (
	// PointToPoint delivers each message to the single subscriber of the channel.
	PointToPoint Mode = iota
	// PublishSubscribe delivers an independent copy of each message to every subscriber.
	PublishSubscribe
)

func (m Mode) String() string {
	switch m {
	case PointToPoint:
		return "point-to-point"
	case PublishSubscribe:
		return "publish-subscribe"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Handler processes a single message delivered to a subscriber.
type Handler func(ctx context.Context, msg *message.Message) error

// Consumer builds the pipe that consumes a subscription queue.
// Every pipe step must use cfg: it keeps per-subscriber order, recovers
// panics and reports failures to the bus.
type Consumer func(cfg pipe.Config) pipe.Pipe[*message.Message, struct{}]

// Config configures a Bus.
type Config struct {
	// BufferSize is the queue capacity of every subscription.
	// Default: 100.
	BufferSize int

	// Logger receives delivery and failure logs.
	// Default: slog.Default().
	Logger Logger

	// Metrics receives delivery events.
	// Default: no-op.
	Metrics Metrics
}

func (c Config) defaults() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = 100
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics == nil {
		c.Metrics = noopMetrics{}
	}
	return c
}

type subscription struct {
	channel  string
	name     string
	queue    chan *message.Message
	consumer pipe.Pipe[*message.Message, struct{}]
}

type namedChannel struct {
	name string
	mode Mode
	subs []*subscription
}

// Builder declares the static topology of a Bus.
// Errors are collected and reported by Build.
type Builder struct {
	cfg      Config
	channels map[string]*namedChannel
	order    []string
	errs     []error
}

// NewBuilder creates an empty topology.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:      cfg.defaults(),
		channels: make(map[string]*namedChannel),
	}
}

// Channel declares a channel with the given delivery mode.
func (b *Builder) Channel(name string, mode Mode) *Builder {
	if _, ok := b.channels[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateChannel, name))
		return b
	}
	b.channels[name] = &namedChannel{name: name, mode: mode}
	b.order = append(b.order, name)
	return b
}

// Subscribe attaches handler to a channel under the given subscriber name.
// Panics in handler are recovered and reported like errors.
func (b *Builder) Subscribe(channel, subscriber string, handler Handler) *Builder {
	if handler == nil {
		b.errs = append(b.errs, fmt.Errorf("bus: nil handler for %s/%s", channel, subscriber))
		return b
	}
	return b.SubscribeConsumer(channel, subscriber, func(cfg pipe.Config) pipe.Pipe[*message.Message, struct{}] {
		return pipe.NewSinkPipe(func(ctx context.Context, msg *message.Message) error {
			return handler(ctx, msg)
		}, cfg)
	})
}

// SubscribeConsumer attaches a consumer pipe to a channel under the given
// subscriber name.
func (b *Builder) SubscribeConsumer(channel, subscriber string, consumer Consumer) *Builder {
	ch, ok := b.channels[channel]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrUnknownChannel, channel))
		return b
	}
	if consumer == nil {
		b.errs = append(b.errs, fmt.Errorf("bus: nil consumer for %s/%s", channel, subscriber))
		return b
	}
	for _, s := range ch.subs {
		if s.name == subscriber {
			b.errs = append(b.errs, fmt.Errorf("%w: %s/%s", ErrDuplicateSubscriber, channel, subscriber))
			return b
		}
	}
	if ch.mode == PointToPoint && len(ch.subs) > 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: %q already consumed by %q, rejected %q",
			ErrSingleConsumer, channel, ch.subs[0].name, subscriber))
		return b
	}

	cfg := pipe.Config{
		Concurrency:  1,
		ErrorHandler: b.errorHandler(channel, subscriber),
		Recover:      true,
	}
	ch.subs = append(ch.subs, &subscription{
		channel:  channel,
		name:     subscriber,
		queue:    make(chan *message.Message, b.cfg.BufferSize),
		consumer: consumer(cfg),
	})
	return b
}

// Build validates the topology and returns the Bus.
func (b *Builder) Build() (*Bus, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return &Bus{
		cfg:      b.cfg,
		channels: b.channels,
		order:    b.order,
	}, nil
}

func (b *Builder) errorHandler(channel, subscriber string) func(in any, err error) {
	logger, metrics := b.cfg.Logger, b.cfg.Metrics
	return func(in any, err error) {
		metrics.Failed(channel, subscriber)
		args := []any{"channel", channel, "subscriber", subscriber, "error", err}
		if msg, ok := in.(*message.Message); ok {
			args = append(args, "message", msg.ID, "payload", msg.Payload)
		}
		logger.Error("Subscriber failed", args...)
	}
}
