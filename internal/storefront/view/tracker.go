// Package view implements the one-shot visibility tracker for the storefront
// section.
package view

import (
	"context"
	"sync"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	"github.com/sellora/saree-storefront/internal/storefront/domain"
)

// TriggerThreshold is the intersection ratio at which the section counts as
// seen.
const TriggerThreshold = 0.4

// Content-view identity for the section. Product events derive their ID from
// the namespace prefix; the fallback event is emitted when the sequence is
// non-empty but no featured product resolves.
const (
	idPrefix      = "premium-party-saree-"
	fallbackID    = "premium-party-saree"
	fallbackName  = "Premium Party Saree Collection"
	fallbackPrice = domain.DefaultPrice
)

// Tracker is a two-state machine: armed, then fired. The first visibility
// signal at or above the threshold while the catalog is non-empty emits one
// content-view event for the featured product; fired is terminal and every
// later signal is ignored. An empty catalog leaves the tracker armed.
type Tracker struct {
	tracker analytics.Tracker

	mu    sync.Mutex
	fired bool
}

// NewTracker returns an armed tracker emitting through the given sink.
func NewTracker(t analytics.Tracker) *Tracker {
	return &Tracker{tracker: t}
}

// ReportVisibility feeds one intersection signal. catalogSize is the length
// of the displayed sequence and featured the product leading the carousel,
// nil when the current index resolves to nothing. It returns true when this
// call fired the event.
func (t *Tracker) ReportVisibility(ctx context.Context, ratio float64, catalogSize int, featured *domain.Product) bool {
	if ratio < TriggerThreshold || catalogSize == 0 {
		return false
	}

	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	t.mu.Unlock()

	ev := analytics.ContentViewEvent{
		ID:    fallbackID,
		Name:  fallbackName,
		Price: fallbackPrice,
	}
	if featured != nil {
		ev = analytics.ContentViewEvent{
			ID:    idPrefix + featured.ID,
			Name:  featured.Name,
			Price: featured.Price,
		}
	}
	t.tracker.TrackContentView(ctx, ev)
	return true
}

// Fired reports whether the tracker reached its terminal state.
func (t *Tracker) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}
