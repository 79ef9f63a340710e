package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestWithContext_RoundTrip(t *testing.T) {
	logger, _ := newObservedLogger()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContext_MissingReturnsNop(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// must not panic
	logger.Info("noop")
}

func TestWithRequestID_EnrichesEntries(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	enriched.Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "req-123", entry.ContextMap()["request_id"])
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithActorID_EnrichesEntries(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx, enriched := WithActorID(context.Background(), logger, "user-9")

	enriched.Warn("careful")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "user-9", logs.All()[0].ContextMap()["actor_id"])
	assert.Equal(t, "user-9", GetActorID(ctx))
}

func TestL_InjectsContextFields(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-7")
	ctx = context.WithValue(ctx, ActorIDKey, "user-3")

	L(ctx).Info("processed", zap.Int("count", 2))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "user-3", fields["actor_id"])
	assert.Equal(t, int64(2), fields["count"])
}

func TestL_EmptyContextDoesNotPanic(t *testing.T) {
	L(context.Background()).Info("nothing attached")
}

func TestContextLogger_With(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := WithContext(context.Background(), logger)

	L(ctx).With(zap.String("component", "billing")).Info("done")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "billing", logs.All()[0].ContextMap()["component"])
}
