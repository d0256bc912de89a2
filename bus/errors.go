package bus

import "errors"

var (
	// ErrUnknownChannel is returned for a channel name that was never declared.
	ErrUnknownChannel = errors.New("bus: unknown channel")
	// ErrDuplicateChannel is returned when a channel name is declared twice.
	ErrDuplicateChannel = errors.New("bus: duplicate channel")
	// ErrDuplicateSubscriber is returned when a subscriber name is used twice on one channel.
	ErrDuplicateSubscriber = errors.New("bus: duplicate subscriber")
	// ErrSingleConsumer is returned when a second subscriber is attached to a
	// point-to-point channel.
	ErrSingleConsumer = errors.New("bus: point-to-point channel accepts a single subscriber")
	// ErrNoSubscriber is returned when sending to a point-to-point channel without subscriber.
	ErrNoSubscriber = errors.New("bus: no subscriber")
	// ErrBufferFull is returned when a subscription queue cannot take another message.
	ErrBufferFull = errors.New("bus: buffer full")
	// ErrClosed is returned for operations on a closed bus.
	ErrClosed = errors.New("bus: closed")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("bus: already started")
)
