package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"", log.InfoLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseLevel("verbose")
		assert.ErrorContains(t, err, `unknown log level "verbose"`)
	})
}

func TestNew(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("info", &buf)
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("rendered", "unit", "web.container")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "rendered")
		assert.Contains(t, out, "unit=web.container")
		assert.Contains(t, out, Prefix)
	})

	t.Run("debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("debug", &buf)
		require.NoError(t, err)

		logger.Debug("merging")
		assert.Contains(t, buf.String(), "merging")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New("loud", &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Error("dropped")
	})
}
