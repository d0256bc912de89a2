package channel

import (
	"context"
	"time"
)

// FromTicker forwards ticks from c until ctx is canceled.
// While a tick waits for a receiver, the ticker behind c drops the ticks it
// cannot buffer. The returned channel is closed when ctx is done; tickers
// never close c, so FromTicker does not wait for that.
func FromTicker(
	ctx context.Context,
	c <-chan time.Time,
) <-chan time.Time {
	out := make(chan time.Time)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-c:
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
