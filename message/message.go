package message

import (
	"fmt"
	"reflect"
	"time"
)

// Payload kinds reported by Message.Kind.
const (
	KindInt    = "int"
	KindString = "string"
	KindNil    = "nil"
)

// Message wraps a payload with its context attributes.
// Fields are public for direct access; use Copy before handing a message to
// more than one consumer.
type Message struct {
	// ID uniquely identifies the message. Copies keep the ID of the original.
	ID string
	// Source identifies the producer, e.g. "/counter" or "/gateway".
	Source string
	// Time is the creation time of the original message.
	Time time.Time

	Payload any
}

// New creates a message with a fresh ID for the given payload and source.
func New(payload any, source string) *Message {
	return &Message{
		ID:      DefaultIDGenerator(),
		Source:  source,
		Time:    time.Now(),
		Payload: payload,
	}
}

// Copy returns an independent envelope with the same attributes and payload.
func (m *Message) Copy() *Message {
	c := *m
	return &c
}

// WithPayload returns a copy of the message carrying payload instead.
func (m *Message) WithPayload(payload any) *Message {
	c := m.Copy()
	c.Payload = payload
	return c
}

// Kind returns the kind of the payload: KindInt, KindString, KindNil or the
// Go type name for anything else.
func (m *Message) Kind() string {
	switch m.Payload.(type) {
	case nil:
		return KindNil
	case int:
		return KindInt
	case string:
		return KindString
	default:
		return reflect.TypeOf(m.Payload).String()
	}
}

// Int returns the integer payload.
// Returns ErrUnexpectedPayload if the payload is not an int.
func (m *Message) Int() (int, error) {
	v, ok := m.Payload.(int)
	if !ok {
		return 0, fmt.Errorf("%w: want %s, got %s", ErrUnexpectedPayload, KindInt, m.Kind())
	}
	return v, nil
}

// Text returns the string payload.
// Returns ErrUnexpectedPayload if the payload is not a string.
func (m *Message) Text() (string, error) {
	v, ok := m.Payload.(string)
	if !ok {
		return "", fmt.Errorf("%w: want %s, got %s", ErrUnexpectedPayload, KindString, m.Kind())
	}
	return v, nil
}
