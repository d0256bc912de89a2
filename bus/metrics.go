package bus

// Metrics receives delivery events from the bus.
type Metrics interface {
	// Sent is called once per message accepted by a channel.
	Sent(channel string)
	// Delivered is called when a message is queued for a subscriber.
	Delivered(channel, subscriber string)
	// Rejected is called when a subscriber queue is full.
	Rejected(channel, subscriber string)
	// Failed is called when a subscriber fails to process a message.
	Failed(channel, subscriber string)
}

type noopMetrics struct{}

func (noopMetrics) Sent(string)              {}
func (noopMetrics) Delivered(string, string) {}
func (noopMetrics) Rejected(string, string)  {}
func (noopMetrics) Failed(string, string)    {}
