// Package oddeven wires the odd/even number pipeline.
//
// Numbers enter on [NumberChannel] from a polling counter and from a
// scheduled injector that submits through a gateway. The [Router] forwards
// each number to [EvenChannel] or [OddChannel]. A [ParityStage] on each of
// those channels formats the number as "Number <n>" and handles the result.
// An [Auxiliary] subscriber also listens on the odd channel and sees the raw
// integer. [DiscardChannel] has a [Discard] sink and nothing sends to it.
//
// [App] builds the topology and runs it:
//
//	app, err := oddeven.NewApp(oddeven.Config{})
//	if err != nil {
//		return err
//	}
//	if err := app.Start(ctx); err != nil {
//		return err
//	}
//	defer app.Stop()
package oddeven
