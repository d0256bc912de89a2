package pipe

import (
	"context"
	"sync"

	"github.com/fxsml/oddeven/pipe/middleware"
)

// Pipe transforms a stream of input values into a stream of output values.
type Pipe[In, Out any] interface {
	// Pipe begins processing items from the input channel and returns a channel for outputs.
	// Processing continues until the input channel is closed or the context is canceled.
	// Returns ErrAlreadyStarted if the pipe has already been started.
	Pipe(ctx context.Context, in <-chan In) (<-chan Out, error)
}

type appliedPipe[In, Inter, Out any] struct {
	pipeA Pipe[In, Inter]
	pipeB Pipe[Inter, Out]
}

func (p *appliedPipe[In, Inter, Out]) Pipe(ctx context.Context, in <-chan In) (<-chan Out, error) {
	inter, err := p.pipeA.Pipe(ctx, in)
	if err != nil {
		return nil, err
	}
	return p.pipeB.Pipe(ctx, inter)
}

// Apply connects the output of a to the input of b.
func Apply[In, Inter, Out any](a Pipe[In, Inter], b Pipe[Inter, Out]) Pipe[In, Out] {
	return &appliedPipe[In, Inter, Out]{
		pipeA: a,
		pipeB: b,
	}
}

// NewProcessPipe creates a Pipe that maps each input to zero or more outputs.
func NewProcessPipe[In, Out any](
	handle func(context.Context, In) ([]Out, error),
	cfg Config,
) *ProcessPipe[In, Out] {
	return &ProcessPipe[In, Out]{
		handle: handle,
		cfg:    cfg,
	}
}

// NewTransformPipe creates a Pipe that maps each input to exactly one output.
// An input whose handle call fails produces no output.
func NewTransformPipe[In, Out any](
	handle func(context.Context, In) (Out, error),
	cfg Config,
) *ProcessPipe[In, Out] {
	fn := func(ctx context.Context, in In) ([]Out, error) {
		out, err := handle(ctx, in)
		if err != nil {
			return nil, err
		}
		return []Out{out}, nil
	}
	return NewProcessPipe(fn, cfg)
}

// NewSinkPipe creates a Pipe that applies handle to each input and emits nothing.
// The returned channel is closed after in is closed and all values are processed.
func NewSinkPipe[In any](
	handle func(context.Context, In) error,
	cfg Config,
) *ProcessPipe[In, struct{}] {
	fn := func(ctx context.Context, in In) ([]struct{}, error) {
		return nil, handle(ctx, in)
	}
	return NewProcessPipe(fn, cfg)
}

// ProcessPipe is a Pipe driven by a ProcessFunc.
type ProcessPipe[In, Out any] struct {
	handle ProcessFunc[In, Out]
	cfg    Config
	mw     []middleware.Middleware[In, Out]

	mu      sync.Mutex
	started bool
}

// Pipe begins processing items from the input channel.
// Returns ErrAlreadyStarted if the pipe has already been started.
func (p *ProcessPipe[In, Out]) Pipe(ctx context.Context, in <-chan In) (<-chan Out, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil, ErrAlreadyStarted
	}
	p.started = true
	handle := applyMiddleware(p.handle, p.mw)
	return startProcessing(ctx, in, handle, p.cfg), nil
}

// ApplyMiddleware adds middleware to the processing chain.
// The first middleware added is the outermost.
// Returns ErrAlreadyStarted if the pipe has already been started.
func (p *ProcessPipe[In, Out]) ApplyMiddleware(mw ...middleware.Middleware[In, Out]) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return ErrAlreadyStarted
	}
	p.mw = append(p.mw, mw...)
	return nil
}

func applyMiddleware[In, Out any](fn ProcessFunc[In, Out], mw []middleware.Middleware[In, Out]) ProcessFunc[In, Out] {
	for i := len(mw) - 1; i >= 0; i-- {
		fn = ProcessFunc[In, Out](mw[i](middleware.ProcessFunc[In, Out](fn)))
	}
	return fn
}
