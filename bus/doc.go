// Package bus provides named message channels with point-to-point and
// publish-subscribe delivery.
//
// A topology is declared once with a [Builder] and never changes afterwards:
//
//	b, err := bus.NewBuilder(bus.Config{BufferSize: 100}).
//		Channel("numbers", bus.PointToPoint).
//		Channel("odd", bus.PublishSubscribe).
//		Subscribe("numbers", "router", route).
//		Subscribe("odd", "printer", show).
//		Subscribe("odd", "audit", audit).
//		Build()
//
// Every subscription owns a bounded FIFO queue consumed by a single-worker
// [pipe.Pipe], so each subscriber sees messages in the order the channel
// received them while different subscribers run independently. [Bus.Send]
// never blocks: a full queue is reported as [ErrBufferFull] to the sender.
//
// A point-to-point channel accepts exactly one subscriber; registering a
// second one is a configuration error ([ErrSingleConsumer]).
package bus
