package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/payments-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name              string
		logLevel          string
		expectedSlogLevel slog.Level
	}{
		{"DebugLevel", "debug", slog.LevelDebug},
		{"InfoLevel", "info", slog.LevelInfo},
		{"WarnLevel", "warn", slog.LevelWarn},
		{"ErrorLevel", "error", slog.LevelError},
		{"DefaultToInfo", "unknown", slog.LevelInfo},
		{"EmptyToInfo", "", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				Logging: config.LoggingConfig{
					Level: tc.logLevel,
				},
			}

			var buf bytes.Buffer
			logger := NewLoggerWithWriter(cfg, &buf)
			require.NotNil(t, logger)

			assert.True(t, logger.Enabled(context.Background(), tc.expectedSlogLevel), "Logger should be enabled for level "+tc.expectedSlogLevel.String())
			if tc.expectedSlogLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tc.expectedSlogLevel-4), "Logger should not be enabled below its level")
			}

			// Verify level cascade behavior
			if tc.expectedSlogLevel == slog.LevelDebug {
				assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo), "Logger set to Debug should also enable Info")
			}
		})
	}
}

func TestNewLoggerWithWriter_WritesJSON(t *testing.T) {
	cfg := &config.Config{
		Application: config.ApplicationConfig{Name: "payments-ledger"},
		Logging:     config.LoggingConfig{Level: "info"},
	}

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(cfg, &buf)
	logger.Info("hello", "client", 7)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2, "initialization line plus one record")

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "payments-ledger", record["app"])
	assert.EqualValues(t, 7, record["client"])
}

func TestOutputFor(t *testing.T) {
	assert.Equal(t, os.Stdout, outputFor("stdout"))
	assert.Equal(t, os.Stdout, outputFor("STDOUT"))
	assert.Equal(t, os.Stderr, outputFor("stderr"))
	assert.Equal(t, os.Stderr, outputFor(""))
}
