package analytics

import (
	"context"
	"log/slog"
)

// Dispatcher implements Tracker by writing each event to the local log and
// then attempting one remote delivery. Every failure is logged and absorbed;
// the caller's flow never depends on analytics succeeding.
type Dispatcher struct {
	sender Sender
	repo   Repository // nil-safe: logging skipped when nil
}

// NewDispatcher wires a sender and an optional event log repository. repo
// may be nil, in which case events are delivery-only.
func NewDispatcher(sender Sender, repo Repository) *Dispatcher {
	return &Dispatcher{sender: sender, repo: repo}
}

func (d *Dispatcher) TrackContentView(ctx context.Context, ev ContentViewEvent) {
	d.dispatch(ctx, EventContentView, ev)
}

func (d *Dispatcher) TrackAddToCart(ctx context.Context, ev AddToCartEvent) {
	d.dispatch(ctx, EventAddToCart, ev)
}

func (d *Dispatcher) dispatch(ctx context.Context, eventType string, body any) {
	if d.repo != nil {
		if err := d.repo.Save(ctx, NewEntry(ctx, eventType, body)); err != nil {
			slog.ErrorContext(ctx, "event log write failed", "event", eventType, "error", err)
		}
	}
	if err := d.sender.Send(ctx, eventType, body); err != nil {
		// Single attempt only. Lost events are visible in the local log.
		slog.WarnContext(ctx, "analytics delivery failed", "event", eventType, "error", err)
	}
}
