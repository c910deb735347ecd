// Package cart assembles cart lines from a clicked product and its chosen
// quantity.
package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	"github.com/sellora/saree-storefront/internal/storefront/domain"
	"github.com/sellora/saree-storefront/internal/storefront/quantity"
)

// ScrollAnchor is the named page anchor the visitor is taken to after an
// add-to-cart settles.
const ScrollAnchor = "order"

// DefaultSettleDelay is how long the in-flight affordance stays up before
// the marker clears and the scroll directive fires.
const DefaultSettleDelay = 500 * time.Millisecond

// Assembler runs the add-to-cart flow: mark the product in flight, emit the
// analytics event, append an immutable CartItem to the externally-owned cart,
// then after a settle delay clear the marker and issue one scroll directive.
//
// The in-flight marker is check-and-set, so a second click on the same
// product while the first is settling is a no-op — no duplicate cart line,
// no duplicate event. Analytics and scroll failures degrade silently; cart
// correctness never depends on them.
type Assembler struct {
	quantities *quantity.Store
	tracker    analytics.Tracker
	sink       func(domain.CartItem)
	scroll     func(anchor string) // may be nil; a missing target is ignored
	settle     time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewAssembler wires the assembler. sink receives each assembled line;
// scroll receives the post-settle navigation target and may be nil.
func NewAssembler(q *quantity.Store, t analytics.Tracker, sink func(domain.CartItem), scroll func(string), settle time.Duration) *Assembler {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Assembler{
		quantities: q,
		tracker:    t,
		sink:       sink,
		scroll:     scroll,
		settle:     settle,
		inFlight:   make(map[string]bool),
	}
}

// AddToCart runs the flow for one click. It returns false when the product
// is already in flight and the click was dropped.
func (a *Assembler) AddToCart(ctx context.Context, p domain.Product) bool {
	a.mu.Lock()
	if a.inFlight[p.ID] {
		a.mu.Unlock()
		slog.InfoContext(ctx, "duplicate add-to-cart dropped", "product_id", p.ID)
		return false
	}
	a.inFlight[p.ID] = true
	a.mu.Unlock()

	qty := a.quantities.Get(p.ID)

	a.tracker.TrackAddToCart(ctx, analytics.AddToCartEvent{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: qty,
	})

	a.sink(domain.NewCartItem(p, qty))
	slog.InfoContext(ctx, "cart line added", "product_id", p.ID, "quantity", qty)

	time.AfterFunc(a.settle, func() {
		a.mu.Lock()
		delete(a.inFlight, p.ID)
		a.mu.Unlock()
		if a.scroll != nil {
			a.scroll(ScrollAnchor)
		}
	})
	return true
}

// InFlight reports whether the product's add-to-cart is mid-flight.
func (a *Assembler) InFlight(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight[id]
}
