package logging_test

import (
	"log/slog"
	"testing"

	"github.com/civicforms/lfpappeal/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("WARN-ish"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))

	assert.Equal(t, slog.LevelError, logging.ParseLevel("ERROR"), "matching is case insensitive")
}
