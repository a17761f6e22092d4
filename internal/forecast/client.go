package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Client fetches raw forecast documents from the remote source.
// Requests go through a circuit breaker so a dead source trips fast
// instead of timing out once per city.
type Client struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a source client. The document for a city lives at
// a URL derived deterministically from its canonical name.
func NewClient(client *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "forecast-source",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
	}
}

// URL returns the source URL for a city.
func (c *Client) URL(city string) string {
	return fmt.Sprintf("%s/%s-response.json", c.baseURL, strings.ToLower(city))
}

// Forecast retrieves and decodes the forecast document for one city.
// Transport failures, non-success statuses and malformed bodies all come
// back as errors; the caller turns them into the city's status text.
func (c *Client) Forecast(ctx context.Context, city string) (*Document, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(city), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("unexpected error: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var doc Document
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return nil, fmt.Errorf("malformed response: %w", err)
		}
		return &doc, nil
	})
	if err != nil {
		return nil, err
	}

	doc, ok := result.(*Document)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return doc, nil
}
