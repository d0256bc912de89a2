// Package channel provides the stateless Go channel helpers the pipeline is
// assembled from.
//
// Sources: [FromTicker]
//
// Fan-in: [Merge]
//
// Sinks: [Drain], [WaitAll]
//
// Every helper starts its own goroutine and closes the channel it returns once
// its input is exhausted. For named message channels with subscribers, see the
// bus package.
package channel
