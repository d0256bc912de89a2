package oddeven

import (
	"context"
	"log/slog"

	"github.com/fxsml/oddeven/message"
	"github.com/fxsml/oddeven/pipe"
)

// ParityStage formats the numbers of one parity channel and handles the
// result. It has no filter: every number is transformed.
type ParityStage struct {
	name   string
	logger Logger
}

// NewParityStage creates a stage; name is "even" or "odd" and shows up in logs.
func NewParityStage(name string, logger Logger) *ParityStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParityStage{name: name, logger: logger}
}

// Name returns the stage name.
func (s *ParityStage) Name() string {
	return s.name
}

// Transform replaces the integer payload with its formatted string.
func (s *ParityStage) Transform(ctx context.Context, msg *message.Message) (*message.Message, error) {
	v, err := msg.Int()
	if err != nil {
		return nil, err
	}
	result := Format(v)
	s.logger.Info("Transformed number", "stage", s.name, "number", v, "result", result)
	return msg.WithPayload(result), nil
}

// Handle is the terminal step.
func (s *ParityStage) Handle(ctx context.Context, msg *message.Message) error {
	s.logger.Info("Handled payload", "stage", s.name, "payload", msg.Payload)
	return nil
}

// Consumer chains Transform and Handle, both running with cfg.
// A message that fails to transform is not handled.
func (s *ParityStage) Consumer(cfg pipe.Config) pipe.Pipe[*message.Message, struct{}] {
	return pipe.Apply[*message.Message, *message.Message, struct{}](
		pipe.NewTransformPipe(s.Transform, cfg),
		pipe.NewSinkPipe(s.Handle, cfg),
	)
}
