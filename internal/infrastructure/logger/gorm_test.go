package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func traceQuery(g *GormLogger, ctx context.Context, began time.Time, err error) {
	g.Trace(ctx, began, func() (string, int64) {
		return "SELECT * FROM ticket_sales WHERE tenant_id = $1", 3
	}, err)
}

func TestGormLoggerTraceDebug(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Info)

	traceQuery(g, context.Background(), time.Now(), nil)

	entries := logs.FilterMessage("SQL").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.EqualValues(t, 3, entries[0].ContextMap()["rows"])
}

func TestGormLoggerTraceError(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Warn)

	traceQuery(g, context.Background(), time.Now(), errors.New("duplicate key"))

	require.Len(t, logs.FilterMessage("SQL error").All(), 1)
}

func TestGormLoggerIgnoresRecordNotFound(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Warn)

	traceQuery(g, context.Background(), time.Now(), gorm.ErrRecordNotFound)

	assert.Empty(t, logs.FilterMessage("SQL error").All())
}

func TestGormLoggerSlowQuery(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Warn)

	traceQuery(g, context.Background(), time.Now().Add(-time.Second), nil)

	entries := logs.FilterMessage("Slow SQL").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLoggerTraceCarriesContextTags(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Info)

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-3")
	ctx, _ = WithFestivalSlug(ctx, zap.NewNop(), "storefjell")
	traceQuery(g, ctx, time.Now(), nil)

	entries := logs.FilterMessage("SQL").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-3", fields["request_id"])
	assert.Equal(t, "storefjell", fields["festival"])
}

func TestGormLoggerSilent(t *testing.T) {
	log, logs := observedLogger()
	g := NewGormLogger(log, gormlogger.Silent)

	traceQuery(g, context.Background(), time.Now(), errors.New("boom"))

	assert.Empty(t, logs.All())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
