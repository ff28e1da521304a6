package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// helper to set test logger writing JSON to buffer
func setupTestLogger(buf *bytes.Buffer) {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	})
	slog.SetDefault(slog.New(handler))
}

func TestGetTraceID(t *testing.T) {
	// valid trace ID
	ctxWithID := context.WithValue(context.Background(), traceIDKey, "id123")
	assert.Equal(t, "id123", GetTraceID(ctxWithID))

	// no trace ID returns empty string
	assert.Empty(t, GetTraceID(context.Background()))

	// trace ID with wrong type returns empty string
	ctxWrongType := context.WithValue(context.Background(), traceIDKey, 42)
	assert.Empty(t, GetTraceID(ctxWrongType))
}

func TestCtxLogging_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf)

	ctx := WithTraceID(context.Background(), "trace-edge")
	CtxInfo(ctx, "info with trace ID")

	log := buf.String()
	assert.Contains(t, log, `"trace_id":"trace-edge"`)
	assert.Contains(t, log, `"msg":"info with trace ID"`)
}

func TestCtxLogging_NoTraceID(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf)

	CtxWarn(context.Background(), "warn without trace ID")

	log := buf.String()
	assert.NotContains(t, log, `"trace_id"`)
	assert.Contains(t, log, `"msg":"warn without trace ID"`)
}

func TestCtxError_IncludesErrorAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf)

	ctx := WithTraceID(context.Background(), "trace-err")
	CtxError(ctx, "something failed", errors.New("boom"))

	log := buf.String()
	assert.Contains(t, log, `"trace_id":"trace-err"`)
	assert.Contains(t, log, `"error":"boom"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("unknown"))
}
