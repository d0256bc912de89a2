package channel

// Merge forwards the values of all inputs to one output channel.
// Values keep their order per input; there is no order across inputs.
// The returned channel is closed after every input is closed.
func Merge[T any](
	ins ...<-chan T,
) <-chan T {
	out := make(chan T)
	closed := make(chan struct{}, len(ins))

	for _, in := range ins {
		go func() {
			for v := range in {
				out <- v
			}
			closed <- struct{}{}
		}()
	}

	go func() {
		for range ins {
			<-closed
		}
		close(out)
	}()

	return out
}
