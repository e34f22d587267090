package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the service.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec // labels: outcome={success,error}
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss,expired}
	EventsCreated    prometheus.Counter
	WeatherChecks    prometheus.Counter
}

// NewMetrics creates the service metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventcast",
			Name:      "provider_requests_total",
			Help:      "Upstream weather provider requests by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventcast",
			Name:      "weather_cache_lookups_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventcast",
			Name:      "events_created_total",
			Help:      "Events created through the API.",
		}),
		WeatherChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventcast",
			Name:      "weather_checks_total",
			Help:      "Explicit weather re-checks performed on events.",
		}),
	}

	reg.MustRegister(m.ProviderRequests, m.CacheLookups, m.EventsCreated, m.WeatherChecks)
	return m
}
