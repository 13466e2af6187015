package log

import (
	"context"
)

// Hook derives extra fields from the context at emit time.
type Hook interface {
	Apply(ctx context.Context, msg string) []Field
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, msg string) []Field

func (f HookFunc) Apply(ctx context.Context, msg string) []Field {
	return f(ctx, msg)
}

var defaultHooks = []Hook{HookFunc(requestFields)}

type ctxKey int

const requestKey ctxKey = iota

type requestInfo struct {
	Tool      string
	RequestID string
}

// ContextWithRequest tags the context so every log entry within a tool call
// carries the tool name and request id.
func ContextWithRequest(ctx context.Context, tool, requestID string) context.Context {
	return context.WithValue(ctx, requestKey, requestInfo{Tool: tool, RequestID: requestID})
}

func requestFields(ctx context.Context, _ string) []Field {
	if ctx == nil {
		return nil
	}

	info, ok := ctx.Value(requestKey).(requestInfo)
	if !ok {
		return nil
	}

	fields := make([]Field, 0, 2)
	if info.Tool != "" {
		fields = append(fields, String("tool", info.Tool))
	}

	if info.RequestID != "" {
		fields = append(fields, String("request_id", info.RequestID))
	}

	return fields
}
