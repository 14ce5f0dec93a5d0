// Package shared holds helpers common to every HTTP handler: request
// decoding and validation, JSON responses, and trace-ID propagation.
package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the private key type for request-scoped values.
type ContextKey string

// TraceIDKey is the context key for the per-request trace ID.
const TraceIDKey ContextKey = "traceID"

// SetTraceID attaches a fresh trace ID to the context so logs and error
// responses for one request can be correlated.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
