// Package source produces the integers that enter the pipeline.
//
// A [Poller] reads the next value of a [Counter] on every tick of a
// fixed-rate ticker and sends it to a channel. An [Injector] submits a
// random non-positive number through a [Gateway] on every tick of an
// independent ticker. Both take their ticks from a clock.Clock so tests can
// drive them with clock.NewMock.
package source
