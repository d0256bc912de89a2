package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("ODDEVEN_TEST_DEFAULTS")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ODDEVEN_COUNTER_PERIOD", "250ms")
	t.Setenv("ODDEVEN_INJECT_PERIOD", "3s")
	t.Setenv("ODDEVEN_BUFFER_SIZE", "8")
	t.Setenv("ODDEVEN_LOG_FORMAT", "json")
	t.Setenv("ODDEVEN_LOG_LEVEL", "debug")

	cfg, err := Load(Prefix)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		CounterPeriod: 250 * time.Millisecond,
		InjectPeriod:  3 * time.Second,
		BufferSize:    8,
		LogFormat:     "json",
		LogLevel:      "debug",
	}, cfg)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("ODDEVEN_BUFFER_SIZE", "many")

	_, err := Load(Prefix)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		CounterPeriod: 0,
		InjectPeriod:  -time.Second,
		BufferSize:    0,
		LogFormat:     "xml",
		LogLevel:      "trace",
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"counter period", "inject period", "buffer size", "log format", "log level"} {
		assert.ErrorContains(t, err, want)
	}

	assert.NoError(t, Default().Validate())
}

func TestLoad_DoesNotValidate(t *testing.T) {
	t.Setenv("ODDEVEN_LOG_FORMAT", "xml")

	cfg, err := Load(Prefix)
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.LogFormat)
	assert.ErrorContains(t, cfg.Validate(), "log format")
}
