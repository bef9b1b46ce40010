package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/logging"
)

func TestNewWriter_EmitsStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "debug")

	logger.Info("booted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "booted", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewWriter_LevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "error")

	logger.Info("suppressed")
	assert.Zero(t, buf.Len())

	logger.Error("surfaced")
	assert.Contains(t, buf.String(), "surfaced")
}

func TestNewWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "shouting")

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithField_AttachesPermanentField(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "info").WithField("component", "container")

	logger.Info("resolved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "container", line["component"])
}

func TestErr_AttachesError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "info")

	logger.Err(assert.AnError, "resolution failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Contains(t, line, "error")
}

func TestNew_HonorsConfig(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "warn", Pretty: false}}
	logger := logging.New(cfg)
	require.NotNil(t, logger)
	assert.Equal(t, "warn", logger.Raw().GetLevel().String())
}

func TestConsoleLogger_ZeroValueIsUsable(t *testing.T) {
	var logger logging.ConsoleLogger
	require.NotPanics(t, func() {
		logger.Info("hello from the zero value")
	})
}
