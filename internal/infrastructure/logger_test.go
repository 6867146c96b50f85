package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartscout/internal/config"
)

func TestCreateLogger(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{Level: "debug", Format: "text"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger, err = createLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestCreateLoggerRejectsUnknowns(t *testing.T) {
	_, err := createLogger(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = createLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
