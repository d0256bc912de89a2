// Package pipe provides the processing engine behind every subscription.
//
// A [Pipe] consumes an input channel with a fixed number of workers and emits
// results on an output channel. With the default concurrency of one, outputs
// keep the order of their inputs, which is what a subscriber stream needs.
//
// # Quick Start
//
//	format := pipe.NewTransformPipe(
//		func(ctx context.Context, n int) (string, error) {
//			return "Number " + strconv.Itoa(n), nil
//		},
//		pipe.Config{},
//	)
//	show := pipe.NewSinkPipe(
//		func(ctx context.Context, s string) error {
//			fmt.Println(s)
//			return nil
//		},
//		pipe.Config{},
//	)
//	done, _ := pipe.Apply[int, string, struct{}](format, show).Pipe(ctx, numbers)
//
// # Errors
//
// A failing input never stops a pipe. The error is passed to
// [Config.ErrorHandler] together with the input and processing continues with
// the next value. Set [Config.Recover] to turn panics into errors.
package pipe
