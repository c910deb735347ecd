package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers one event to the remote collector.
type Sender interface {
	Send(ctx context.Context, eventType string, body any) error
}

// Collector posts events to an HTTP event collector as a flat JSON object
// with the event name alongside the payload fields, dataLayer style:
//
//	{"event":"add_to_cart","id":"...","name":"...","price":1650,"quantity":2}
type Collector struct {
	endpoint string
	httpc    *http.Client
}

// NewCollector builds a sender for the collector at endpoint. The client
// carries a short timeout so a slow collector cannot stall the cart flow.
func NewCollector(endpoint string) *Collector {
	return &Collector{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Collector) Send(ctx context.Context, eventType string, body any) error {
	fields, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("analytics: encode %s event: %w", eventType, err)
	}

	// Fold {"event": ...} into the payload object.
	var flat map[string]any
	if err := json.Unmarshal(fields, &flat); err != nil {
		return fmt.Errorf("analytics: flatten %s event: %w", eventType, err)
	}
	flat["event"] = eventType

	encoded, err := json.Marshal(flat)
	if err != nil {
		return fmt.Errorf("analytics: encode %s event: %w", eventType, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: post %s event: %w", eventType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("analytics: collector returned status %d for %s event", resp.StatusCode, eventType)
	}
	return nil
}
