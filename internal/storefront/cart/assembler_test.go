package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	"github.com/sellora/saree-storefront/internal/storefront/domain"
	"github.com/sellora/saree-storefront/internal/storefront/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	adds []analytics.AddToCartEvent
}

func (r *recorder) TrackContentView(context.Context, analytics.ContentViewEvent) {}

func (r *recorder) TrackAddToCart(_ context.Context, ev analytics.AddToCartEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adds = append(r.adds, ev)
}

func (r *recorder) addEvents() []analytics.AddToCartEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]analytics.AddToCartEvent(nil), r.adds...)
}

type harness struct {
	assembler *Assembler
	rec       *recorder
	store     *quantity.Store

	mu      sync.Mutex
	lines   []domain.CartItem
	scrolls []string
}

func newHarness(t *testing.T, settle time.Duration) *harness {
	t.Helper()
	h := &harness{rec: &recorder{}, store: quantity.NewStore()}
	h.assembler = NewAssembler(
		h.store,
		h.rec,
		func(item domain.CartItem) {
			h.mu.Lock()
			h.lines = append(h.lines, item)
			h.mu.Unlock()
		},
		func(anchor string) {
			h.mu.Lock()
			h.scrolls = append(h.scrolls, anchor)
			h.mu.Unlock()
		},
		settle,
	)
	return h
}

func (h *harness) cartLines() []domain.CartItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.CartItem(nil), h.lines...)
}

func (h *harness) scrollTargets() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.scrolls...)
}

var saree = domain.Product{ID: "p1", Name: "Saree", Color: "কালো", Image: "/p1.jpg", Price: 1650}

func TestAddToCartSnapshotsQuantity(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)
	h.store.Set("p1", 3)

	accepted := h.assembler.AddToCart(context.Background(), saree)
	require.True(t, accepted)

	lines := h.cartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, domain.CartItem{
		ProductID:   "p1",
		ProductName: "Saree",
		Color:       "কালো",
		Image:       "/p1.jpg",
		Quantity:    3,
		Price:       1650,
	}, lines[0])

	// The analytics event carries the same quantity as the cart line.
	adds := h.rec.addEvents()
	require.Len(t, adds, 1)
	assert.Equal(t, analytics.AddToCartEvent{ID: "p1", Name: "Saree", Price: 1650, Quantity: 3}, adds[0])
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)

	require.True(t, h.assembler.AddToCart(context.Background(), saree))

	lines := h.cartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestDuplicateClickSuppressedWhileInFlight(t *testing.T) {
	h := newHarness(t, 50*time.Millisecond)

	require.True(t, h.assembler.AddToCart(context.Background(), saree))
	assert.True(t, h.assembler.InFlight("p1"))

	assert.False(t, h.assembler.AddToCart(context.Background(), saree))
	assert.Len(t, h.cartLines(), 1)
	assert.Len(t, h.rec.addEvents(), 1)
}

func TestSettleClearsMarkerAndScrollsOnce(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)

	require.True(t, h.assembler.AddToCart(context.Background(), saree))

	assert.Eventually(t, func() bool {
		return !h.assembler.InFlight("p1")
	}, time.Second, 5*time.Millisecond)

	targets := h.scrollTargets()
	require.Len(t, targets, 1)
	assert.Equal(t, ScrollAnchor, targets[0])

	// A fresh click is accepted again after settling.
	assert.True(t, h.assembler.AddToCart(context.Background(), saree))
}

func TestNilScrollSinkIsIgnored(t *testing.T) {
	rec := &recorder{}
	store := quantity.NewStore()
	var mu sync.Mutex
	var lines []domain.CartItem
	a := NewAssembler(store, rec, func(item domain.CartItem) {
		mu.Lock()
		lines = append(lines, item)
		mu.Unlock()
	}, nil, 10*time.Millisecond)

	require.True(t, a.AddToCart(context.Background(), saree))
	assert.Eventually(t, func() bool { return !a.InFlight("p1") }, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, lines, 1)
}
