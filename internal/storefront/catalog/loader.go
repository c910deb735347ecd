package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sellora/saree-storefront/internal/storefront/domain"
)

// ErrLoadMessage is the fixed user-facing copy shown when the catalog fetch
// fails. The underlying error is logged, never displayed.
const ErrLoadMessage = "প্রোডাক্ট লোড করতে সমস্যা হয়েছে। পরে আবার চেষ্টা করুন।"

// State is a snapshot of the loader's lifecycle.
type State struct {
	Loading  bool
	ErrMsg   string
	Products []domain.Product
}

// Loader drives the catalog fetch lifecycle for one mounted section:
// loading=true with no products, then either the normalized active products
// or a fixed error message. It fetches exactly once; a retry is a fresh
// section mount, not a loader operation.
type Loader struct {
	client Client

	mu       sync.RWMutex
	loading  bool
	errMsg   string
	products []domain.Product
}

// NewLoader returns a loader in its initial loading state.
func NewLoader(client Client) *Loader {
	return &Loader{client: client, loading: true}
}

// Load performs the single catalog fetch and settles the loader state. It
// returns the normalized products so the caller can seed its dependent state
// owners; on failure the returned slice is empty and the loader carries the
// fixed error message.
func (l *Loader) Load(ctx context.Context) ([]domain.Product, error) {
	records, err := l.client.FetchProducts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "product fetch failed", "error", err)
		l.mu.Lock()
		l.loading = false
		l.errMsg = ErrLoadMessage
		l.products = nil
		l.mu.Unlock()
		return nil, err
	}

	products := Normalize(records)

	l.mu.Lock()
	l.loading = false
	l.errMsg = ""
	l.products = products
	l.mu.Unlock()
	return products, nil
}

// Snapshot returns the current lifecycle state.
func (l *Loader) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State{
		Loading:  l.loading,
		ErrMsg:   l.errMsg,
		Products: l.products,
	}
}
