package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Entry is one row in the local analytics event log. The log is append-only:
// each emitted event becomes exactly one immutable row, whether or not the
// remote delivery succeeded.
type Entry struct {
	// ID is a per-event UUID, generated at emission time.
	ID string

	// Type is one of the Event* constants.
	Type string

	// Payload is the JSON-serialised event body as sent to the collector.
	Payload string

	// TraceID is the W3C trace ID from the OpenTelemetry span active when
	// the event was emitted, letting an auditor jump from an event row to
	// the full request trace. Empty when no span was active.
	TraceID string

	// SpanID pinpoints the span within the trace. Empty without a span.
	SpanID string

	// OccurredAt is the wall-clock emission time.
	OccurredAt time.Time
}

// Repository is the port for persisting event log entries. Save appends a
// row; the log is never updated in place.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}

// NewEntry builds a log entry for the given event body, stamping it with the
// trace identifiers found in ctx, if any.
func NewEntry(ctx context.Context, eventType string, body any) *Entry {
	payload := ""
	if b, err := json.Marshal(body); err == nil {
		payload = string(b)
	}

	entry := &Entry{
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}
	return entry
}
