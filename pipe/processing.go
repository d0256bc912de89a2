package pipe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fxsml/oddeven/pipe/middleware"
)

// ProcessFunc maps one input to zero or more outputs.
type ProcessFunc[In, Out any] func(ctx context.Context, in In) ([]Out, error)

// Config configures behavior of a Pipe.
type Config struct {
	// Concurrency is the number of workers reading the input.
	// Default: 1. A single worker emits outputs in input order, and a
	// subscription relies on that for its FIFO guarantee; more workers
	// give up ordering.
	Concurrency int

	// BufferSize is the capacity of the output channel.
	// Default: 0.
	BufferSize int

	// ErrorHandler receives every input whose processing failed.
	// Default: slog.Error.
	ErrorHandler func(in any, err error)

	// Recover turns a panic while processing an input into a
	// *middleware.RecoveryError passed to ErrorHandler.
	Recover bool

	// ShutdownTimeout is how long workers keep reading after ctx is done,
	// waiting for the input to close. Zero stops them at once.
	ShutdownTimeout time.Duration
}

func (c Config) parse() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.ErrorHandler == nil {
		c.ErrorHandler = func(in any, err error) {
			slog.Error("Processing failed", slog.Any("input", in), slog.Any("error", err))
		}
	}
	return c
}

// workers is the state shared by the goroutines of one running pipe.
type workers[In, Out any] struct {
	in      <-chan In
	out     chan Out
	halt    chan struct{}
	process ProcessFunc[In, Out]
	onError func(in any, err error)
}

// run handles inputs until the input is closed or the pipe is halted.
func (w *workers[In, Out]) run(ctx context.Context) {
	for {
		var (
			v  In
			ok bool
		)
		select {
		case <-w.halt:
			return
		case v, ok = <-w.in:
		}
		if !ok {
			return
		}
		results, err := w.process(ctx, v)
		if err != nil {
			w.onError(v, err)
			continue
		}
		if !w.emit(v, results) {
			return
		}
	}
}

// emit forwards results and reports false if the pipe was halted meanwhile.
func (w *workers[In, Out]) emit(v In, results []Out) bool {
	for _, r := range results {
		select {
		case w.out <- r:
		case <-w.halt:
			w.onError(v, ErrShutdownDropped)
			return false
		}
	}
	return true
}

// startProcessing starts cfg.Concurrency workers applying fn to in.
// The output channel is closed once every worker has returned: after in is
// closed, or after ctx is done and cfg.ShutdownTimeout has elapsed.
func startProcessing[In, Out any](
	ctx context.Context,
	in <-chan In,
	fn ProcessFunc[In, Out],
	cfg Config,
) <-chan Out {
	cfg = cfg.parse()
	if cfg.Recover {
		fn = ProcessFunc[In, Out](middleware.Recover[In, Out]()(middleware.ProcessFunc[In, Out](fn)))
	}
	w := &workers[In, Out]{
		in:      in,
		out:     make(chan Out, cfg.BufferSize),
		halt:    make(chan struct{}),
		process: fn,
		onError: cfg.ErrorHandler,
	}

	var running sync.WaitGroup
	for range cfg.Concurrency {
		running.Add(1)
		go func() {
			defer running.Done()
			w.run(ctx)
		}()
	}

	finished := make(chan struct{})
	go func() {
		running.Wait()
		close(finished)
	}()

	go func() {
		defer close(w.out)
		select {
		case <-finished:
			return
		case <-ctx.Done():
		}
		if cfg.ShutdownTimeout > 0 {
			grace := time.NewTimer(cfg.ShutdownTimeout)
			defer grace.Stop()
			select {
			case <-finished:
				return
			case <-grace.C:
			}
		}
		close(w.halt)
		<-finished
	}()

	return w.out
}
