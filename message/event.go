package message

import (
	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// TypePrefix is prepended to the payload kind to form the CloudEvents type.
const TypePrefix = "oddeven.number."

// Event converts the message into a CloudEvents event with JSON data.
// The event type is TypePrefix followed by the payload kind.
func (m *Message) Event() (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetID(m.ID)
	e.SetSource(m.Source)
	e.SetType(TypePrefix + m.Kind())
	if !m.Time.IsZero() {
		e.SetTime(m.Time)
	}
	if err := e.SetData(cloudevents.ApplicationJSON, m.Payload); err != nil {
		return e, err
	}
	return e, nil
}

// Validate reports whether the message forms a valid CloudEvent.
// A message without ID or source is invalid.
func (m *Message) Validate() error {
	e, err := m.Event()
	if err != nil {
		return err
	}
	return e.Validate()
}
