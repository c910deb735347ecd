package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticClient struct {
	records []RawRecord
	err     error
}

func (c *staticClient) FetchProducts(context.Context) ([]RawRecord, error) {
	return c.records, c.err
}

func TestLoaderInitialState(t *testing.T) {
	loader := NewLoader(&staticClient{})

	state := loader.Snapshot()
	assert.True(t, state.Loading)
	assert.Empty(t, state.ErrMsg)
	assert.Empty(t, state.Products)
}

func TestLoaderSuccess(t *testing.T) {
	loader := NewLoader(&staticClient{records: []RawRecord{
		{ID: "1", IsActive: true},
		{ID: "2", IsActive: true},
		{ID: "3", IsActive: true},
		{ID: "4", IsActive: false},
	}})

	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)

	state := loader.Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.ErrMsg)
	assert.Len(t, state.Products, 3)
}

func TestLoaderFailure(t *testing.T) {
	loader := NewLoader(&staticClient{err: errors.New("connection refused")})

	products, err := loader.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, products)

	state := loader.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, ErrLoadMessage, state.ErrMsg)
	assert.Empty(t, state.Products)
}
