package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestFromContextWithoutLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// the no-op logger must be safe to use
	log.Info("ignored")
}

func TestWithContextRoundTrip(t *testing.T) {
	log, _ := observedLogger()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestWithRequestID(t *testing.T) {
	log, logs := observedLogger()

	ctx, reqLog := WithRequestID(context.Background(), log, "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
	// the enriched logger replaces the one on the context
	assert.Same(t, reqLog, FromContext(ctx))

	reqLog.Info("hello")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestGetRequestIDEmpty(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestWithFestivalSlug(t *testing.T) {
	log, logs := observedLogger()

	ctx, slugLog := WithFestivalSlug(context.Background(), log, "storefjell")
	assert.Equal(t, "storefjell", GetFestivalSlug(ctx))
	assert.Same(t, slugLog, FromContext(ctx))

	slugLog.Info("sweep")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "storefjell", entries[0].ContextMap()["festival"])
}

func TestGetFestivalSlugEmpty(t *testing.T) {
	assert.Equal(t, "", GetFestivalSlug(context.Background()))
}

func TestPrincipalFieldsAccumulate(t *testing.T) {
	log, logs := observedLogger()

	ctx := context.Background()
	ctx, l := WithRequestID(ctx, log, "req-1")
	ctx, l = WithUserID(ctx, l, "user-1")
	ctx, l = WithTenantID(ctx, l, "tenant-1")

	FromContext(ctx).Info("authenticated")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "tenant-1", fields["tenant_id"])
}
