package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextMissing(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// No-op logger must not panic
	logger.Info("ignored")
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	enriched.Info("hello")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithActorID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithActorID(context.Background(), logger, "op-7")
	enriched.Info("hello")

	assert.Equal(t, "op-7", GetActorID(ctx))
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "op-7", entries[0].ContextMap()["actor_id"])
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetActorID(context.Background()))
}

func TestWithTraceContextNoSpan(t *testing.T) {
	logger := zap.NewNop()
	assert.Same(t, logger, WithTraceContext(context.Background(), logger))
}
