package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	assert.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("account", "Checking").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "account=Checking")
	// A buffer is not a terminal, so no color codes are written.
	assert.NotContains(t, out, "\x1b[")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, FromContext(context.Background()).GetLevel())

	var buf bytes.Buffer
	logger, err := New(&buf, DefaultLevel)
	assert.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Warn().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}
