package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = New(ProductionConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewForEnvironment(t *testing.T) {
	logger, err := NewForEnvironment("production")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewForEnvironment("development")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestContextHelpers(t *testing.T) {
	base := zap.NewNop()
	ctx := context.Background()

	assert.NotNil(t, FromContext(ctx), "missing logger falls back to no-op")
	assert.Empty(t, GetRequestID(ctx))

	ctx, enriched := WithRequestID(ctx, base, "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.NotNil(t, enriched)
	assert.NotNil(t, FromContext(ctx))
	assert.NotNil(t, L(ctx))
}

func TestMapGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapGormLogLevel(in), in)
	}
}
