package tracing

import (
	"context"
	"log/slog"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer reports finished spans to a [slog.Logger] at debug level.
type LoggingTracer struct {
	logger *slog.Logger
}

func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	return &loggingSpan{
		logger:        l.logger,
		operationName: operationName,
		start:         time.Now(),
	}
}

type loggingSpan struct {
	logger        *slog.Logger
	start         time.Time
	operationName string
	baggage       []any
}

func (s *loggingSpan) Finish() {
	attrs := make([]any, 0, len(s.baggage)+4)
	attrs = append(attrs, s.baggage...)
	attrs = append(attrs, "operation_name", s.operationName, "time_ms", time.Since(s.start).Seconds()*1e3)
	s.logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// SetBaggageItem attaches key and value to the span's log record. Items are
// reported in the order they were set.
func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage = append(s.baggage, key, value)
}
