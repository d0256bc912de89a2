package source

import "sync/atomic"

// Counter hands out consecutive integers starting at 0.
// It is safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// Next returns the current value and advances the counter by one.
func (c *Counter) Next() int {
	return int(c.n.Add(1) - 1)
}
