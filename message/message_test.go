package message_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxsml/oddeven/message"
)

func TestNew_AssignsAttributes(t *testing.T) {
	msg := message.New(4, "/gateway")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "/gateway", msg.Source)
	assert.False(t, msg.Time.IsZero())
	assert.Equal(t, 4, msg.Payload)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := message.New(1, "/counter")
	b := message.New(1, "/counter")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCopy_IsIndependent(t *testing.T) {
	orig := message.New(7, "/counter")
	c := orig.Copy()

	require.NotSame(t, orig, c)
	assert.Equal(t, orig.ID, c.ID)

	c.Payload = 8
	assert.Equal(t, 7, orig.Payload)
}

func TestWithPayload(t *testing.T) {
	orig := message.New(-99, "/gateway")
	out := orig.WithPayload("Number -99")

	assert.Equal(t, orig.ID, out.ID)
	assert.Equal(t, -99, orig.Payload)
	s, err := out.Text()
	require.NoError(t, err)
	assert.Equal(t, "Number -99", s)
}

func TestKind(t *testing.T) {
	tests := []struct {
		payload any
		want    string
	}{
		{payload: 1, want: message.KindInt},
		{payload: "x", want: message.KindString},
		{payload: nil, want: message.KindNil},
		{payload: 1.5, want: "float64"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, (&message.Message{Payload: tt.payload}).Kind())
		})
	}
}

func TestInt_UnexpectedPayload(t *testing.T) {
	_, err := message.New("Number 1", "/test").Int()
	require.ErrorIs(t, err, message.ErrUnexpectedPayload)
	assert.Contains(t, err.Error(), "got string")

	_, err = message.New(1, "/test").Text()
	require.ErrorIs(t, err, message.ErrUnexpectedPayload)
}

func TestEvent(t *testing.T) {
	msg := message.New(42, "/counter")

	e, err := msg.Event()
	require.NoError(t, err)
	require.NoError(t, e.Validate())

	assert.Equal(t, msg.ID, e.ID())
	assert.Equal(t, "/counter", e.Source())
	assert.Equal(t, "oddeven.number.int", e.Type())

	var got int
	require.NoError(t, json.Unmarshal(e.Data(), &got))
	assert.Equal(t, 42, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, message.New(0, "/gateway").Validate())

	assert.Error(t, (&message.Message{ID: "1", Payload: 0}).Validate(), "missing source")
	assert.Error(t, (&message.Message{Source: "/x", Payload: 0}).Validate(), "missing id")
}
