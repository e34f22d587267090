package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Client fetches weather for (city, date) pairs and normalizes the result.
// It owns the provider chain, typically an OpenWeatherMap client behind a
// caching decorator.
type Client struct {
	provider Provider
}

// NewClient creates a Client on top of the given provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Raw returns the provider payload untouched. Used by the passthrough
// weather endpoint.
func (c *Client) Raw(ctx context.Context, city, date string) (json.RawMessage, error) {
	raw, err := c.provider.Current(ctx, city, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return raw, nil
}

// Fetch returns the normalized observation for (city, date).
func (c *Client) Fetch(ctx context.Context, city, date string) (Observation, error) {
	raw, err := c.Raw(ctx, city, date)
	if err != nil {
		return Observation{}, err
	}
	return Normalize(raw), nil
}

// TryFetch is the best-effort variant used by event-facing flows: any
// failure degrades to a nil observation instead of an error, so a provider
// outage never aborts the calling request.
func (c *Client) TryFetch(ctx context.Context, city, date string) *Observation {
	obs, err := c.Fetch(ctx, city, date)
	if err != nil {
		log.Printf("weather: best-effort fetch failed for %s on %s: %v", city, date, err)
		return nil
	}
	return &obs
}
