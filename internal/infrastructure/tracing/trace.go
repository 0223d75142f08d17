package tracing

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header carries the trace ID from the dashboard through the console to the
// backend.
const Header = "X-Trace-ID"

// TraceID represents a unique trace identifier
type TraceID string

// Span represents a single operation in a trace
type Span struct {
	TraceID    TraceID
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	StatusCode int
	Error      error
}

// Context keys for trace propagation
type contextKey string

const traceIDKey contextKey = "trace_id"

// NewTraceID generates a trace ID.
func NewTraceID() TraceID {
	return TraceID(uuid.NewString())
}

// WithTraceID returns ctx carrying id.
func WithTraceID(ctx context.Context, id TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	if traceID, ok := ctx.Value(traceIDKey).(TraceID); ok {
		return traceID
	}
	return ""
}

// Extract reads a well-formed trace ID from headers. Anything that is not a
// UUID is ignored.
func Extract(h http.Header) TraceID {
	raw := h.Get(Header)
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return TraceID(raw)
}

// Inject copies the context's trace ID into headers.
func Inject(ctx context.Context, h http.Header) {
	if traceID := GetTraceID(ctx); traceID != "" {
		h.Set(Header, string(traceID))
	}
}

// Field is the trace ID as a log field, skipped when ctx has none.
func Field(ctx context.Context) zap.Field {
	if traceID := GetTraceID(ctx); traceID != "" {
		return zap.String("trace_id", string(traceID))
	}
	return zap.Skip()
}

// StartSpan starts timing name, joining the context's trace or starting one.
func StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = NewTraceID()
		ctx = WithTraceID(ctx, traceID)
	}
	return &Span{TraceID: traceID, Name: name, StartTime: time.Now()}, ctx
}

// Finish marks the span as complete
func (s *Span) Finish(status int, err error) {
	s.Duration = time.Since(s.StartTime)
	s.StatusCode = status
	s.Error = err
}

// Fields returns the span as log fields.
func (s *Span) Fields() []zap.Field {
	return []zap.Field{
		zap.String("trace_id", string(s.TraceID)),
		zap.String("operation", s.Name),
		zap.Duration("duration", s.Duration),
	}
}
