package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fxsml/oddeven/channel"
	"github.com/fxsml/oddeven/message"
)

// Bus routes messages between named channels and their subscribers.
// Create it with a Builder.
type Bus struct {
	cfg      Config
	channels map[string]*namedChannel
	order    []string

	mu      sync.RWMutex
	started bool
	closed  bool
}

// ChannelInfo describes a declared channel.
type ChannelInfo struct {
	Name        string
	Mode        Mode
	Subscribers []string
}

// Channels returns the declared channels in declaration order.
func (b *Bus) Channels() []ChannelInfo {
	infos := make([]ChannelInfo, 0, len(b.order))
	for _, name := range b.order {
		ch := b.channels[name]
		info := ChannelInfo{Name: name, Mode: ch.mode}
		for _, s := range ch.subs {
			info.Subscribers = append(info.Subscribers, s.name)
		}
		infos = append(infos, info)
	}
	return infos
}

// Start starts the consumers of all subscriptions.
// The returned channel is closed when every consumer has stopped, which
// happens after ctx is canceled or the bus is closed.
// Messages sent before Start wait in the subscription queues.
func (b *Bus) Start(ctx context.Context) (<-chan struct{}, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if b.started {
		return nil, ErrAlreadyStarted
	}
	b.started = true

	var dones []<-chan struct{}
	for _, name := range b.order {
		for _, sub := range b.channels[name].subs {
			out, err := sub.consumer.Pipe(ctx, sub.queue)
			if err != nil {
				return nil, fmt.Errorf("bus: start %s/%s: %w", sub.channel, sub.name, err)
			}
			dones = append(dones, channel.Drain(out))
		}
	}
	return channel.WaitAll(dones...), nil
}

// Send hands msg to the named channel without blocking.
//
// On a point-to-point channel the message is queued for the single
// subscriber. On a publish-subscribe channel every subscriber gets its own
// copy; a full queue fails delivery to that subscriber only and the
// remaining subscribers still receive the message. All delivery failures are
// joined into the returned error.
func (b *Bus) Send(ctx context.Context, name string, msg *message.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	ch, ok := b.channels[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}

	switch ch.mode {
	case PointToPoint:
		if len(ch.subs) == 0 {
			return fmt.Errorf("%w: %q", ErrNoSubscriber, name)
		}
		b.cfg.Metrics.Sent(name)
		return b.enqueue(ch.subs[0], msg)
	default:
		b.cfg.Metrics.Sent(name)
		var errs []error
		for _, sub := range ch.subs {
			if err := b.enqueue(sub, msg.Copy()); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

func (b *Bus) enqueue(sub *subscription, msg *message.Message) error {
	select {
	case sub.queue <- msg:
		b.cfg.Metrics.Delivered(sub.channel, sub.name)
		return nil
	default:
		b.cfg.Metrics.Rejected(sub.channel, sub.name)
		return fmt.Errorf("%w: %s/%s", ErrBufferFull, sub.channel, sub.name)
	}
}

// Close stops accepting messages and closes all subscription queues.
// Consumers finish the messages already queued unless their context is
// canceled first.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.closed = true
	for _, name := range b.order {
		for _, sub := range b.channels[name].subs {
			close(sub.queue)
		}
	}
	return nil
}
