// Package logger builds the zap logger and the field helpers shared by
// handlers, services and jobs.
package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/salestrack/inquiry-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger for production or when Format is "json",
// and a colored console logger otherwise. Timestamps are written in UTC.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if strings.EqualFold(cfg.Format, "json") || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.EncoderConfig.EncodeTime = utcTimeEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// ParseLevel accepts zap level names in any case and falls back to info
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func utcTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.RFC3339NanoTimeEncoder(t.UTC(), enc)
}

// WithRequest tags an access log line
func WithRequest(logger *zap.Logger, method, path, requestID string) *zap.Logger {
	return logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

func WithUser(logger *zap.Logger, userID, username string) *zap.Logger {
	return logger.With(
		zap.String("user_id", userID),
		zap.String("username", username),
	)
}

// WithInquiry tags log lines with the inquiry being processed
func WithInquiry(logger *zap.Logger, inquiryID string) *zap.Logger {
	return logger.With(zap.String("inquiry_id", inquiryID))
}

// WithJob tags log lines written by a scheduled job
func WithJob(logger *zap.Logger, name string) *zap.Logger {
	return logger.With(zap.String("job", name))
}
