package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RawRecord mirrors one product document as the upstream commerce API sends
// it. Any field may be missing or zero; Normalize applies the defaults.
type RawRecord struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Variants     *RawVariants `json:"variants"`
	Thumbnail    string       `json:"thumbnail"`
	SellingPrice float64      `json:"sellingPrice"`
	// The upstream API spells it this way; kept verbatim to match the wire.
	RegulerPrice float64 `json:"regulerPrice"`
	OrderNumber  int     `json:"orderNumber"`
	IsActive     bool    `json:"isActive"`
}

// RawVariants carries the single variant attribute the storefront shows.
type RawVariants struct {
	Value string `json:"value"`
}

type listResponse struct {
	Data []RawRecord `json:"data"`
}

// Client is the port for the catalog fetch collaborator.
type Client interface {
	FetchProducts(ctx context.Context) ([]RawRecord, error)
}

// HTTPClient fetches the product list from the commerce API over JSON HTTP.
//
// No per-request timeout is set: a hung upstream leaves the section in its
// loading state, matching the reference behaviour. The caller's context can
// still cancel the request.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "https://api.example.com/api/v1").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

// FetchProducts requests GET {baseURL}/product and decodes the record list.
func (c *HTTPClient) FetchProducts(ctx context.Context) ([]RawRecord, error) {
	url := c.baseURL + "/product"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog: decode product list: %w", err)
	}
	return payload.Data, nil
}
