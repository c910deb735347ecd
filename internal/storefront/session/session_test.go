package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"
	"github.com/sellora/saree-storefront/internal/storefront/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCatalog struct {
	records []catalog.RawRecord
	err     error
}

func (c *staticCatalog) FetchProducts(context.Context) ([]catalog.RawRecord, error) {
	return c.records, c.err
}

type recordingTracker struct {
	mu    sync.Mutex
	views []analytics.ContentViewEvent
	adds  []analytics.AddToCartEvent
}

func (r *recordingTracker) TrackContentView(_ context.Context, ev analytics.ContentViewEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, ev)
}

func (r *recordingTracker) TrackAddToCart(_ context.Context, ev analytics.AddToCartEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adds = append(r.adds, ev)
}

func testRecords() []catalog.RawRecord {
	return []catalog.RawRecord{
		{ID: "p5", Title: "Five", OrderNumber: 5, SellingPrice: 1650, RegulerPrice: 2200, IsActive: true},
		{ID: "p1", Title: "One", OrderNumber: 1, SellingPrice: 1650, RegulerPrice: 2200, IsActive: true},
		{ID: "p9", Title: "Unordered", SellingPrice: 1650, RegulerPrice: 2200, IsActive: true},
		{ID: "p2", Title: "Two", OrderNumber: 2, SellingPrice: 1650, RegulerPrice: 2200, IsActive: true},
		{ID: "px", Title: "Hidden", IsActive: false},
	}
}

// newLoadedSession mounts a session at the given width and runs the catalog
// load synchronously.
func newLoadedSession(t *testing.T, width int, client catalog.Client, tracker analytics.Tracker) *Session {
	t.Helper()
	s := New("test-session", width, Config{Catalog: client, Tracker: tracker})
	t.Cleanup(s.Close)
	s.Load(context.Background())
	return s
}

func TestInitialStateIsLoading(t *testing.T) {
	s := New("test-session", 1200, Config{Catalog: &staticCatalog{}})
	defer s.Close()

	snap := s.State()
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.ErrMsg)
	assert.Empty(t, snap.Products)
}

func TestLoadSeedsEverything(t *testing.T) {
	s := newLoadedSession(t, 1200, &staticCatalog{records: testRecords()}, nil)

	snap := s.State()
	assert.False(t, snap.Loading)
	require.Len(t, snap.Products, 4, "inactive records are filtered out")

	// Display order follows orderNumber, defaults sorting last.
	ids := make([]string, len(snap.Products))
	for i, pv := range snap.Products {
		ids[i] = pv.Product.ID
		assert.Equal(t, 1, pv.Quantity, "quantities seed to 1")
		assert.False(t, pv.InFlight)
	}
	assert.Equal(t, []string{"p1", "p2", "p5", "p9"}, ids)

	assert.Equal(t, 4, snap.Position.Total)
	assert.Equal(t, 4, snap.Position.PageSize)
	assert.Equal(t, 0, snap.Position.MaxIndex)
	assert.Equal(t, 1, snap.Dots)
}

func TestNarrowViewportDots(t *testing.T) {
	// Width 500 classifies to one card per page: one dot fewer than a
	// product short of the total.
	s := newLoadedSession(t, 500, &staticCatalog{records: testRecords()}, nil)

	snap := s.State()
	assert.Equal(t, 1, snap.Position.PageSize)
	assert.Equal(t, 3, snap.Position.MaxIndex)
	assert.Equal(t, 4, snap.Dots)
}

func TestLoadFailure(t *testing.T) {
	s := newLoadedSession(t, 1200, &staticCatalog{err: errors.New("timeout")}, nil)

	snap := s.State()
	assert.False(t, snap.Loading)
	assert.Equal(t, catalog.ErrLoadMessage, snap.ErrMsg)
	assert.Empty(t, snap.Products)
}

func TestResizeReclassifies(t *testing.T) {
	s := newLoadedSession(t, 1200, &staticCatalog{records: testRecords()}, nil)

	s.Resize(700)
	snap := s.State()
	assert.Equal(t, 2, snap.Position.PageSize)
	assert.Equal(t, 2, snap.Position.MaxIndex)
}

func TestVisibilityFiresForFeaturedProduct(t *testing.T) {
	tracker := &recordingTracker{}
	s := newLoadedSession(t, 500, &staticCatalog{records: testRecords()}, tracker)

	s.GoTo(1)
	fired := s.Visibility(context.Background(), 0.5)
	require.True(t, fired)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	require.Len(t, tracker.views, 1)
	assert.Equal(t, "premium-party-saree-p2", tracker.views[0].ID)
	assert.Equal(t, "Two", tracker.views[0].Name)
}

func TestVisibilityOneShot(t *testing.T) {
	tracker := &recordingTracker{}
	s := newLoadedSession(t, 500, &staticCatalog{records: testRecords()}, tracker)

	assert.True(t, s.Visibility(context.Background(), 0.5))
	assert.False(t, s.Visibility(context.Background(), 0.9))
	s.Next()
	assert.False(t, s.Visibility(context.Background(), 1.0))

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	assert.Len(t, tracker.views, 1)
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	s := newLoadedSession(t, 1200, &staticCatalog{records: testRecords()}, nil)

	err := s.SetQuantity("nope", 2)
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestAddToCartFlow(t *testing.T) {
	tracker := &recordingTracker{}
	s := newLoadedSession(t, 1200, &staticCatalog{records: testRecords()}, tracker)

	require.NoError(t, s.SetQuantity("p2", 3))

	accepted, err := s.AddToCart(context.Background(), "p2")
	require.NoError(t, err)
	assert.True(t, accepted)

	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)

	tracker.mu.Lock()
	adds := append([]analytics.AddToCartEvent(nil), tracker.adds...)
	tracker.mu.Unlock()
	require.Len(t, adds, 1)
	assert.Equal(t, 3, adds[0].Quantity, "analytics quantity matches the cart line")

	_, err = s.AddToCart(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestScrollDirectiveConsumedOnce(t *testing.T) {
	s := New("test-session", 1200, Config{
		Catalog: &staticCatalog{records: testRecords()},
		Settle:  10 * time.Millisecond,
	})
	defer s.Close()
	s.Load(context.Background())

	_, err := s.AddToCart(context.Background(), "p1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return s.State().ScrollTo == "order"
	}, time.Second, 5*time.Millisecond)

	// The read consumed it.
	assert.Empty(t, s.State().ScrollTo)
}

func TestCartLinesSurviveRefetchOfCatalog(t *testing.T) {
	s := newLoadedSession(t, 1200, &staticCatalog{records: testRecords()}, nil)

	require.NoError(t, s.SetQuantity("p1", 2))
	_, err := s.AddToCart(context.Background(), "p1")
	require.NoError(t, err)

	// A second load replaces the sequence and re-seeds quantities...
	s.Load(context.Background())
	snap := s.State()
	for _, pv := range snap.Products {
		assert.Equal(t, 1, pv.Quantity)
	}

	// ...but cart lines are immutable snapshots.
	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}
