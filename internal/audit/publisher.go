package audit

import (
	"context"
	"log/slog"

	"nachweis/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. An optional
// Sink fans events out to external systems.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger
}

func NewPublisher(store Store, sink Sink, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, sink: sink, logger: logger}
}

// Emit records an event. The timestamp and request ID default to the
// request-scoped values when unset.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.ActorID(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Append(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink append failed",
				"error", err,
				"action", event.Action,
			)
		}
	}
	return nil
}

// List returns the audit trail for one contractor.
func (p *Publisher) List(ctx context.Context, contractorID string) ([]Event, error) {
	return p.store.ListByContractor(ctx, contractorID)
}
