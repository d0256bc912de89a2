package source

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/fxsml/oddeven/channel"
	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/pipe"
)

// CounterSource is the source attribute of messages produced by a Poller.
const CounterSource = "/counter"

// PollerConfig configures a Poller.
type PollerConfig struct {
	// Channel is the channel numbers are sent to. Required.
	Channel string

	// Period is the tick interval.
	// Default: 100ms.
	Period time.Duration

	// Clock provides the ticker.
	// Default: the wall clock.
	Clock clock.Clock

	// Logger
	// Default: slog.Default().
	Logger Logger
}

func (c PollerConfig) parse() PollerConfig {
	if c.Period <= 0 {
		c.Period = 100 * time.Millisecond
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Poller sends the next counter value to a channel on every tick.
type Poller struct {
	counter *Counter
	sender  Sender
	cfg     PollerConfig

	mu      sync.Mutex
	started bool
}

// NewPoller creates a Poller reading from counter.
func NewPoller(counter *Counter, sender Sender, cfg PollerConfig) *Poller {
	return &Poller{
		counter: counter,
		sender:  sender,
		cfg:     cfg.parse(),
	}
}

// Start starts ticking. The ticker exists when Start returns.
// The returned channel is closed after ctx is canceled and the last tick
// has been handled. A failed send is logged and does not stop the poller.
func (p *Poller) Start(ctx context.Context) (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil, ErrAlreadyStarted
	}
	if p.cfg.Channel == "" {
		return nil, errors.New("source: poller without channel")
	}
	p.started = true

	logger := p.cfg.Logger
	cfg := pipe.Config{
		ErrorHandler: func(in any, err error) {
			logger.Error("Sending number failed", "channel", p.cfg.Channel, "error", err)
		},
	}

	generate := pipe.NewTransformPipe(func(ctx context.Context, _ time.Time) (*message.Message, error) {
		n := p.counter.Next()
		logger.Info("Source generated number", "number", n)
		return message.New(n, CounterSource), nil
	}, cfg)
	send := pipe.NewSinkPipe(func(ctx context.Context, msg *message.Message) error {
		return p.sender.Send(ctx, p.cfg.Channel, msg)
	}, cfg)

	ticker := p.cfg.Clock.Ticker(p.cfg.Period)
	out, err := pipe.Apply[time.Time, *message.Message, struct{}](generate, send).Pipe(ctx, channel.FromTicker(ctx, ticker.C))
	if err != nil {
		ticker.Stop()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-channel.Drain(out)
		ticker.Stop()
	}()
	return done, nil
}
