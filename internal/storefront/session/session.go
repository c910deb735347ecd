// Package session ties one visitor's storefront section instance together:
// catalog lifecycle, carousel position, quantity counters, the one-shot view
// tracker, and the cart. It is the Go stand-in for the mounted component in
// the original page.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	"github.com/sellora/saree-storefront/internal/storefront/carousel"
	"github.com/sellora/saree-storefront/internal/storefront/cart"
	"github.com/sellora/saree-storefront/internal/storefront/catalog"
	"github.com/sellora/saree-storefront/internal/storefront/domain"
	"github.com/sellora/saree-storefront/internal/storefront/quantity"
	"github.com/sellora/saree-storefront/internal/storefront/view"
)

// ErrUnknownProduct is returned when an operation names a product that is
// not in the loaded catalog.
var ErrUnknownProduct = errors.New("session: unknown product")

// Config carries the collaborators and tuning knobs shared by all sessions.
type Config struct {
	Catalog  catalog.Client
	Tracker  analytics.Tracker
	Autoplay time.Duration // <= 0 disables autoplay
	Settle   time.Duration // 0 means cart.DefaultSettleDelay
	Now      func() time.Time
}

// ProductView is one card as the page renders it.
type ProductView struct {
	Product         domain.Product
	Quantity        int
	InFlight        bool
	DiscountPercent int
	SaveAmount      float64
}

// Snapshot is the full section view model.
type Snapshot struct {
	Loading   bool
	ErrMsg    string
	Products  []ProductView
	Position  carousel.Position
	Dots      int
	CartCount int

	// ScrollTo is a one-shot navigation directive, "" when none is pending.
	// Reading a snapshot consumes it.
	ScrollTo string
}

// Session owns the state of one mounted section instance. Each sub-state has
// a single owner and is mutated only through its operations; the session
// mutex guards the pieces the session itself owns (sorted sequence, cart
// lines, pending directives).
type Session struct {
	ID string

	loader     *catalog.Loader
	engine     *carousel.Engine
	quantities *quantity.Store
	tracker    *view.Tracker
	assembler  *cart.Assembler
	now        func() time.Time

	mu            sync.Mutex
	sorted        []domain.Product
	cartLines     []domain.CartItem
	pendingScroll string
	lastSeen      time.Time
	closed        bool
}

// New builds a session for the given initial viewport width. The catalog
// load is not started here; call Load (normally in its own goroutine) to
// mount the section.
func New(id string, viewportWidth int, cfg Config) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	tracker := cfg.Tracker
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}

	s := &Session{
		ID:         id,
		loader:     catalog.NewLoader(cfg.Catalog),
		engine:     carousel.NewEngine(carousel.ClassifyViewport(viewportWidth), cfg.Autoplay),
		quantities: quantity.NewStore(),
		tracker:    view.NewTracker(tracker),
		now:        now,
		lastSeen:   now(),
	}
	s.assembler = cart.NewAssembler(s.quantities, tracker, s.appendCartLine, s.requestScroll, cfg.Settle)
	return s
}

// Load runs the single catalog fetch and, on success, seeds the dependent
// state owners: the sorted display sequence, the quantity counters, and the
// carousel bounds.
func (s *Session) Load(ctx context.Context) {
	products, err := s.loader.Load(ctx)
	if err != nil {
		return
	}

	sorted := domain.SortByDisplayOrder(products)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.sorted = sorted
	s.mu.Unlock()

	s.quantities.Seed(products)
	s.engine.SetTotal(len(sorted))
}

// Resize reclassifies the page size from a reported viewport width.
func (s *Session) Resize(width int) {
	s.touch()
	s.engine.SetPageSize(carousel.ClassifyViewport(width))
}

// Visibility feeds one intersection signal to the view tracker, resolving
// the featured product from the carousel's current position. Returns true
// when this signal fired the content-view event.
func (s *Session) Visibility(ctx context.Context, ratio float64) bool {
	s.touch()
	pos := s.engine.Snapshot()

	s.mu.Lock()
	size := len(s.sorted)
	var featured *domain.Product
	if pos.Current >= 0 && pos.Current < size {
		p := s.sorted[pos.Current]
		featured = &p
	}
	s.mu.Unlock()

	return s.tracker.ReportVisibility(ctx, ratio, size, featured)
}

// Hover suspends autoplay while the pointer is over the section.
func (s *Session) Hover(entered bool) {
	s.touch()
	if entered {
		s.engine.Suspend()
	} else {
		s.engine.Resume()
	}
}

// Next advances the carousel, wrapping past the last page.
func (s *Session) Next() { s.touch(); s.engine.Next() }

// Prev steps the carousel back, wrapping before the first page.
func (s *Session) Prev() { s.touch(); s.engine.Prev() }

// GoTo jumps to a dot index. Returns false when the target is outside the
// current dot range.
func (s *Session) GoTo(i int) bool { s.touch(); return s.engine.GoTo(i) }

// SetQuantity stores the visitor's chosen quantity for a loaded product.
func (s *Session) SetQuantity(productID string, qty int) error {
	s.touch()
	if _, ok := s.product(productID); !ok {
		return ErrUnknownProduct
	}
	s.quantities.Set(productID, qty)
	return nil
}

// AddToCart runs the assembly flow for the given product. The boolean is
// false when the click was dropped because the product is already in flight.
func (s *Session) AddToCart(ctx context.Context, productID string) (bool, error) {
	s.touch()
	p, ok := s.product(productID)
	if !ok {
		return false, ErrUnknownProduct
	}
	return s.assembler.AddToCart(ctx, p), nil
}

// CartLines returns the accumulated cart in insertion order.
func (s *Session) CartLines() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]domain.CartItem, len(s.cartLines))
	copy(lines, s.cartLines)
	return lines
}

// State assembles the full view model. A pending scroll directive is
// consumed by the read.
func (s *Session) State() Snapshot {
	s.touch()
	load := s.loader.Snapshot()
	pos := s.engine.Snapshot()

	s.mu.Lock()
	sorted := s.sorted
	cartCount := len(s.cartLines)
	scrollTo := s.pendingScroll
	s.pendingScroll = ""
	s.mu.Unlock()

	views := make([]ProductView, len(sorted))
	for i, p := range sorted {
		views[i] = ProductView{
			Product:         p,
			Quantity:        s.quantities.Get(p.ID),
			InFlight:        s.assembler.InFlight(p.ID),
			DiscountPercent: p.DiscountPercent(),
			SaveAmount:      p.SaveAmount(),
		}
	}

	return Snapshot{
		Loading:   load.Loading,
		ErrMsg:    load.ErrMsg,
		Products:  views,
		Position:  pos,
		Dots:      pos.MaxIndex + 1,
		CartCount: cartCount,
		ScrollTo:  scrollTo,
	}
}

// Close unmounts the section: autoplay stops and later catalog results are
// discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.engine.Close()
}

// IdleSince returns the time of the last visitor interaction.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.sorted {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Session) appendCartLine(item domain.CartItem) {
	s.mu.Lock()
	s.cartLines = append(s.cartLines, item)
	s.mu.Unlock()
}

func (s *Session) requestScroll(anchor string) {
	s.mu.Lock()
	s.pendingScroll = anchor
	s.mu.Unlock()
}
