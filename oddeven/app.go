package oddeven

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"gopkg.in/tomb.v2"

	"github.com/fxsml/oddeven/bus"
	"github.com/fxsml/oddeven/channel"
	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/source"
)

// Subscriber names used in the topology.
const (
	RouterSubscriber    = "router"
	EvenStageSubscriber = "even-stage"
	OddStageSubscriber  = "odd-stage"
	AuxiliarySubscriber = "auxiliary"
	DiscardSubscriber   = "discard"
)

// ErrAlreadyStarted is returned when an App is started twice.
var ErrAlreadyStarted = errors.New("oddeven: already started")

// Config configures an App.
type Config struct {
	// CounterPeriod is the tick interval of the counter source.
	// Default: 100ms.
	CounterPeriod time.Duration

	// InjectPeriod is the tick interval of the scheduled injector.
	// Default: 1s.
	InjectPeriod time.Duration

	// BufferSize is the queue capacity of every subscription.
	// Default: 100.
	BufferSize int

	// Clock drives both tickers.
	// Default: the wall clock.
	Clock clock.Clock

	// Rand draws the magnitude of injected numbers.
	// Default: rand.IntN.
	Rand func(n int) int

	// Logger
	// Default: slog.Default().
	Logger Logger

	// Metrics receives bus delivery events.
	// Default: no-op.
	Metrics bus.Metrics
}

func (c Config) parse() Config {
	if c.CounterPeriod <= 0 {
		c.CounterPeriod = 100 * time.Millisecond
	}
	if c.InjectPeriod <= 0 {
		c.InjectPeriod = time.Second
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// App owns the pipeline topology and its sources.
type App struct {
	cfg      Config
	bus      *bus.Bus
	gateway  source.Gateway
	poller   *source.Poller
	injector *source.Injector
	discard  *Discard

	mu     sync.Mutex
	tomb   *tomb.Tomb
	parent context.Context
}

// NewApp builds the topology. Nothing runs until Start.
func NewApp(cfg Config) (*App, error) {
	cfg = cfg.parse()
	logger := cfg.Logger

	var b *bus.Bus
	sender := SenderFunc(func(ctx context.Context, ch string, msg *message.Message) error {
		return b.Send(ctx, ch, msg)
	})

	router := NewRouter(sender, logger)
	even := NewParityStage("even", logger)
	odd := NewParityStage("odd", logger)
	aux := NewAuxiliary(logger)
	discard := NewDiscard(logger)

	b, err := bus.NewBuilder(bus.Config{
		BufferSize: cfg.BufferSize,
		Logger:     logger,
		Metrics:    cfg.Metrics,
	}).
		Channel(NumberChannel, bus.PointToPoint).
		Channel(EvenChannel, bus.PublishSubscribe).
		Channel(OddChannel, bus.PublishSubscribe).
		Channel(DiscardChannel, bus.PublishSubscribe).
		Subscribe(NumberChannel, RouterSubscriber, router.Handle).
		SubscribeConsumer(EvenChannel, EvenStageSubscriber, even.Consumer).
		SubscribeConsumer(OddChannel, OddStageSubscriber, odd.Consumer).
		Subscribe(OddChannel, AuxiliarySubscriber, aux.Handle).
		Subscribe(DiscardChannel, DiscardSubscriber, discard.Handle).
		Build()
	if err != nil {
		return nil, err
	}

	gateway := source.NewGateway(b, NumberChannel)
	return &App{
		cfg:     cfg,
		bus:     b,
		gateway: gateway,
		poller: source.NewPoller(&source.Counter{}, b, source.PollerConfig{
			Channel: NumberChannel,
			Period:  cfg.CounterPeriod,
			Clock:   cfg.Clock,
			Logger:  logger,
		}),
		injector: source.NewInjector(gateway, source.InjectorConfig{
			Period: cfg.InjectPeriod,
			Rand:   cfg.Rand,
			Clock:  cfg.Clock,
			Logger: logger,
		}),
		discard: discard,
	}, nil
}

// Gateway returns the gateway onto the entry channel.
func (a *App) Gateway() source.Gateway {
	return a.gateway
}

// Channels describes the topology.
func (a *App) Channels() []bus.ChannelInfo {
	return a.bus.Channels()
}

// Discard returns the sink attached to DiscardChannel.
func (a *App) Discard() *Discard {
	return a.discard
}

// Start starts the subscribers and then both sources. It returns once all
// tickers exist. The app runs until ctx is canceled or Stop is called.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tomb != nil {
		return ErrAlreadyStarted
	}

	a.parent = ctx
	t, ctx := tomb.WithContext(ctx)
	a.tomb = t

	busDone, err := a.bus.Start(ctx)
	if err != nil {
		return a.abort(err)
	}
	injectorDone, err := a.injector.Start(ctx)
	if err != nil {
		return a.abort(err)
	}
	pollerDone, err := a.poller.Start(ctx)
	if err != nil {
		return a.abort(err)
	}

	t.Go(func() error {
		<-channel.WaitAll(pollerDone, injectorDone)
		if err := a.bus.Close(); err != nil && !errors.Is(err, bus.ErrClosed) {
			return err
		}
		<-busDone
		return nil
	})
	a.cfg.Logger.Info("Pipeline started",
		"counter_period", a.cfg.CounterPeriod,
		"inject_period", a.cfg.InjectPeriod)
	return nil
}

func (a *App) abort(err error) error {
	a.tomb.Go(func() error { return err })
	return err
}

// Stop cancels the sources and subscribers and waits for them to finish.
// Messages still queued may be lost.
func (a *App) Stop() error {
	a.mu.Lock()
	t := a.tomb
	a.mu.Unlock()
	if t == nil {
		return nil
	}
	t.Kill(nil)
	return a.Wait()
}

// Wait blocks until the app has stopped. The end of the context passed to
// Start, by cancellation or deadline, is a normal stop and yields nil.
func (a *App) Wait() error {
	a.mu.Lock()
	t, parent := a.tomb, a.parent
	a.mu.Unlock()
	if t == nil {
		return nil
	}
	err := t.Wait()
	if err != nil && errors.Is(err, parent.Err()) {
		return nil
	}
	return err
}

// Dead is closed once the app has stopped.
func (a *App) Dead() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tomb == nil {
		return nil
	}
	return a.tomb.Dead()
}
