package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/planora/eventcast/internal/observability"
)

// OpenWeather implements weather.Provider on the OpenWeatherMap
// current-conditions API. Responses are returned raw; normalization happens
// in the weather package. Temperatures arrive in Kelvin because no units
// parameter is sent, which is what the suitability thresholds expect.
type OpenWeather struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewOpenWeather creates an OpenWeatherMap provider with retry, backoff and
// a circuit breaker around the upstream calls.
func NewOpenWeather(client *http.Client, apiKey string, metrics *observability.Metrics) *OpenWeather {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeather{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		metrics: metrics,
	}
}

func (p *OpenWeather) Name() string {
	return p.name
}

// Current fetches current conditions for city. The date parameter is part of
// the provider contract for cache identity only; the upstream endpoint has
// no historical lookup, so it is not forwarded.
func (p *OpenWeather) Current(ctx context.Context, city, _ string) (json.RawMessage, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		p.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		p.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read openweather response: %w", err)
	}

	p.metrics.ProviderRequests.WithLabelValues("success").Inc()
	return json.RawMessage(body), nil
}
