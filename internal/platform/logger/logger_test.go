package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		ok       bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{" error ", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := logger.ParseLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, buf)

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default(), "Setup installs the logger as default")

	slog.Info("filtered out")
	slog.Warn("kept", "key", "value")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestSetupWithInvalidLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "loud"}, buf)
	require.NoError(t, err)

	warnings := buf.EntriesWithMessage(t, "invalid log level configured, using default level")
	require.Len(t, warnings, 1)
	assert.Equal(t, "loud", warnings[0]["configured_level"])

	slog.Debug("below info")
	slog.Info("at info")
	logger.AssertLogContains(t, buf, "at info")
	assert.NotContains(t, buf.String(), "below info")
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger := slog.Default()
	_, customLogger := logger.NewTestLogger(t)

	tests := []struct {
		name     string
		ctx      context.Context
		fallback *slog.Logger
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_fallback",
			ctx:      nil,
			fallback: defaultLogger,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_fallback",
			ctx:      context.Background(),
			fallback: defaultLogger,
			expected: defaultLogger,
		},
		{
			name:     "nil_fallback_returns_slog_default",
			ctx:      context.Background(),
			fallback: nil,
			expected: slog.Default(),
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			fallback: defaultLogger,
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, tt.fallback)
			assert.Same(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		_, customLogger := logger.NewTestLogger(t)
		ctx := logger.WithLogger(context.Background(), customLogger)

		assert.Same(t, customLogger, logger.FromContext(ctx))
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
