// Package message provides the envelope that travels through an oddeven
// pipeline.
//
// A [Message] carries an integer or string payload together with a small set
// of CloudEvents-aligned attributes (id, source, time). Messages are never
// shared between subscribers: fan-out delivers a [Message.Copy] to each one.
//
// # Quick Start
//
//	msg := message.New(4, "/gateway")
//	n, err := msg.Int()       // 4, nil
//	out := msg.WithPayload(fmt.Sprintf("Number %d", n))
//	s, _ := out.Text()        // "Number 4"
//
// Use [Message.Event] to obtain the CloudEvents representation of a message
// and [Message.Validate] to check it before handing it to a channel.
package message
