// Package analytics emits the storefront's marketing events. Delivery to the
// remote collector is best-effort, single-attempt; a local append-only event
// log keeps the audit trail.
package analytics

import "context"

// Event type discriminators, matching the tag manager event names the
// marketing pipeline consumes.
const (
	EventContentView = "view_content"
	EventAddToCart   = "add_to_cart"
)

// ContentViewEvent reports that the section became visible with a featured
// product leading the carousel.
type ContentViewEvent struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddToCartEvent reports one add-to-cart click with the chosen quantity.
type AddToCartEvent struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Tracker is the port the storefront core uses to report events. Both calls
// are fire-and-forget: implementations must absorb every failure.
type Tracker interface {
	TrackContentView(ctx context.Context, ev ContentViewEvent)
	TrackAddToCart(ctx context.Context, ev AddToCartEvent)
}

// NopTracker discards every event. Used when no collector is configured and
// in tests that do not care about analytics.
type NopTracker struct{}

func (NopTracker) TrackContentView(context.Context, ContentViewEvent) {}
func (NopTracker) TrackAddToCart(context.Context, AddToCartEvent)    {}
