package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorSendsFlatEvent(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewCollector(srv.URL)
	err := c.Send(context.Background(), EventAddToCart, AddToCartEvent{ID: "p1", Name: "Saree", Price: 1650, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "add_to_cart", received["event"])
	assert.Equal(t, "p1", received["id"])
	assert.Equal(t, 1650.0, received["price"])
	assert.Equal(t, 2.0, received["quantity"])
}

func TestCollectorRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewCollector(srv.URL).Send(context.Background(), EventContentView, ContentViewEvent{ID: "x"})
	assert.ErrorContains(t, err, "status 500")
}
