package source

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/fxsml/oddeven/channel"
	"github.com/fxsml/oddeven/pipe"
)

// InjectorConfig configures an Injector.
type InjectorConfig struct {
	// Period is the tick interval.
	// Default: 1s.
	Period time.Duration

	// Bound is the exclusive upper bound of the drawn magnitude, so injected
	// numbers lie in (-Bound, 0].
	// Default: 100.
	Bound int

	// Rand returns a pseudo-random number in [0, n).
	// Default: rand.IntN.
	Rand func(n int) int

	// Clock provides the ticker.
	// Default: the wall clock.
	Clock clock.Clock

	// Logger
	// Default: slog.Default().
	Logger Logger
}

func (c InjectorConfig) parse() InjectorConfig {
	if c.Period <= 0 {
		c.Period = time.Second
	}
	if c.Bound <= 0 {
		c.Bound = 100
	}
	if c.Rand == nil {
		c.Rand = rand.IntN
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Injector submits a random non-positive number through a Gateway on every tick.
type Injector struct {
	gateway Gateway
	cfg     InjectorConfig

	mu      sync.Mutex
	started bool
}

// NewInjector creates an Injector submitting through gateway.
func NewInjector(gateway Gateway, cfg InjectorConfig) *Injector {
	return &Injector{
		gateway: gateway,
		cfg:     cfg.parse(),
	}
}

// Start starts ticking. The ticker exists when Start returns.
// Submission failures are logged and the injector keeps ticking; nothing is retried.
func (i *Injector) Start(ctx context.Context) (<-chan struct{}, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.started {
		return nil, ErrAlreadyStarted
	}
	i.started = true

	logger := i.cfg.Logger
	inject := pipe.NewSinkPipe(func(ctx context.Context, _ time.Time) error {
		n := -i.cfg.Rand(i.cfg.Bound)
		logger.Info("Gateway injecting", "number", n)
		return i.gateway.Submit(ctx, n)
	}, pipe.Config{
		ErrorHandler: func(in any, err error) {
			logger.Error("Injection failed", "error", err)
		},
	})

	ticker := i.cfg.Clock.Ticker(i.cfg.Period)
	out, err := inject.Pipe(ctx, channel.FromTicker(ctx, ticker.C))
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
