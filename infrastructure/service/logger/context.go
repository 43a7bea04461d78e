package logger

import "context"

type contextKey string

// CorrelationIDKey is the context key under which the correlation middleware
// stores the request id picked up by every log line.
const CorrelationIDKey contextKey = "correlation_id"

// WithCorrelationID attaches a correlation id to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// Noop discards everything; used in tests.
type Noop struct{}

func (Noop) Info(context.Context, string, map[string]interface{})         {}
func (Noop) Error(context.Context, string, error, map[string]interface{}) {}
func (Noop) Warn(context.Context, string, map[string]interface{})         {}
func (Noop) Debug(context.Context, string, map[string]interface{})        {}
func (n Noop) WithFields(map[string]interface{}) Logger                   { return n }
