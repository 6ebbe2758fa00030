package audit

import "context"

// Store is the append-only persistence boundary for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByContractor(ctx context.Context, contractorID string) ([]Event, error)
}

// Sink receives a copy of every event for fan-out to external systems
// (message broker, SIEM). Sinks are best-effort; failures are logged, never
// surfaced to the emitting request.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
