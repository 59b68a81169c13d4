package logger

import (
	"testing"

	"github.com/salestrack/inquiry-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewLogger_Level(t *testing.T) {
	log, err := NewLogger(&config.LoggingConfig{Level: "error", Format: "json"}, &config.AppConfig{Name: "inquiry-api", Environment: "test"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestFieldHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithUser(WithRequest(base, "GET", "/api/v1/kpi/dashboard", "req-1"), "u-1", "aigerim").Info("request")
	WithJob(WithInquiry(base, "inq-1"), "kpi_recalculation").Info("job")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]interface{}{
		"method":     "GET",
		"path":       "/api/v1/kpi/dashboard",
		"request_id": "req-1",
		"user_id":    "u-1",
		"username":   "aigerim",
	}, entries[0].ContextMap())
	assert.Equal(t, map[string]interface{}{
		"inquiry_id": "inq-1",
		"job":        "kpi_recalculation",
	}, entries[1].ContextMap())
}
