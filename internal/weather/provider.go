package weather

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable reports that no usable weather data could be obtained.
var ErrUnavailable = errors.New("weather data unavailable")

// Provider abstracts a current-conditions weather source queried by city
// name. The date identifies the lookup for caching purposes; the upstream
// API only serves current conditions, so implementations do not forward it.
type Provider interface {
	Name() string
	Current(ctx context.Context, city, date string) (json.RawMessage, error)
}
