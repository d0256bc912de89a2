package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatText, "info")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("Routed number", "number", 4, "channel", "even-channel")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="Routed number"`)
	assert.Contains(t, out, "number=4")
	assert.Contains(t, out, "channel=even-channel")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatJSON, "debug")
	require.NoError(t, err)

	l.Debug("Discarded payload", "payload", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "Discarded payload", entry["msg"])
	assert.EqualValues(t, 1, entry["payload"])
}

func TestNew_Zap(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, FormatZap, "warn")
	require.NoError(t, err)

	l.Info("hidden")
	l.Error("Subscriber failed", "channel", "odd-channel", "subscriber", "odd-stage")
	require.NoError(t, Sync(l))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Subscriber failed", entry["msg"])
	assert.Equal(t, "odd-channel", entry["channel"])
	assert.Equal(t, "odd-stage", entry["subscriber"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = New(&bytes.Buffer{}, FormatText, "loud")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, FormatZap, "loud")
	assert.Error(t, err)
}
