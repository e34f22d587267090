package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/planora/eventcast/internal/event"
	"github.com/planora/eventcast/internal/observability"
	"github.com/planora/eventcast/internal/store"
	"github.com/planora/eventcast/internal/weather"
)

// stubProvider returns one canned payload for every lookup, or an error when
// the payload is nil.
type stubProvider struct {
	payload json.RawMessage
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Current(_ context.Context, _, _ string) (json.RawMessage, error) {
	if p.payload == nil {
		return nil, errors.New("provider down")
	}
	return p.payload, nil
}

func newTestApp(t *testing.T, provider weather.Provider) *fiber.App {
	t.Helper()

	app := fiber.New()

	eventStore := store.NewFileStore(filepath.Join(t.TempDir(), "events.json"))
	client := weather.NewClient(provider)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	svc := event.NewService(eventStore, client, metrics)

	RegisterRoutes(app, svc, client)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestCreateEventSurvivesProviderOutage verifies that event creation degrades
// to a null weather snapshot instead of failing when the provider is down.
func TestCreateEventSurvivesProviderOutage(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	req := jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"2026-09-01","type":"social"}`)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var created event.Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}
	if created.Weather != nil {
		t.Errorf("expected null weather, got %+v", created.Weather)
	}
	if created.Score == nil || *created.Score != 0 {
		t.Errorf("expected score 0, got %v", created.Score)
	}
	if created.Suitability == nil || *created.Suitability != "Unknown" {
		t.Errorf("expected suitability Unknown, got %v", created.Suitability)
	}
}

// TestCreateEventValidation verifies the body validation on POST /events.
func TestCreateEventValidation(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	// Missing name should return 400.
	req := jsonRequest(http.MethodPost, "/events", `{"city":"Lisbon","date":"2026-09-01"}`)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Malformed date should also return 400.
	req = jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"01/09/2026"}`)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestListEventsEmpty verifies GET /events returns an empty array, not null.
func TestListEventsEmpty(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

// TestUpdateUnknownEvent verifies PUT on an absent id returns 404.
func TestUpdateUnknownEvent(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	req := jsonRequest(http.MethodPut, "/events/42", `{"name":"renamed"}`)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

// TestWeatherPassthrough verifies the raw provider payload is returned as-is
// and that provider failures surface as 500.
func TestWeatherPassthrough(t *testing.T) {
	payload := `{"main":{"temp":290},"weather":[{"description":"clear sky"}]}`
	app := newTestApp(t, &stubProvider{payload: json.RawMessage(payload)})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather/Lisbon/2026-09-01", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != payload {
		t.Errorf("expected raw payload %s, got %s", payload, body)
	}

	down := newTestApp(t, &stubProvider{})
	resp, err = down.Test(httptest.NewRequest(http.MethodGet, "/weather/Lisbon/2026-09-01", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
}

// TestWeatherCheckProviderOutage verifies an explicit weather check reports
// provider trouble instead of silently degrading.
func TestWeatherCheckProviderOutage(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	req := jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"2026-09-01"}`)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/events/1/weather-check", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}

	// Unknown ids still map to 404, not 500.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/events/9/weather-check", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

// TestSuitabilityEndpoint verifies the stored rating is served without a
// refetch and unknown ids return 404.
func TestSuitabilityEndpoint(t *testing.T) {
	payload := `{"main":{"temp":290},"weather":[{"description":"clear sky"}]}`
	app := newTestApp(t, &stubProvider{payload: json.RawMessage(payload)})

	req := jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"2026-09-01"}`)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events/1/suitability", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var view event.SuitabilityView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Score == nil || *view.Score != 80 {
		t.Errorf("expected score 80, got %v", view.Score)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/events/9/suitability", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

// TestAlternativesNoData verifies the distinct 404 when every candidate date
// fails to fetch.
func TestAlternativesNoData(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	req := jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"2026-09-01"}`)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events/1/alternatives", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

// TestAlternativesRanked verifies alternatives come back sorted by score.
func TestAlternativesRanked(t *testing.T) {
	payload := `{"main":{"temp":290},"weather":[{"description":"clear sky"}]}`
	app := newTestApp(t, &stubProvider{payload: json.RawMessage(payload)})

	req := jsonRequest(http.MethodPost, "/events", `{"name":"picnic","city":"Lisbon","date":"2026-09-01"}`)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events/1/alternatives", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var alts []event.Alternative
	if err := json.NewDecoder(resp.Body).Decode(&alts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(alts) != 6 {
		t.Fatalf("expected 6 alternatives, got %d", len(alts))
	}
	for i := 1; i < len(alts); i++ {
		if alts[i].Score > alts[i-1].Score {
			t.Errorf("alternatives not sorted by score: %d before %d", alts[i-1].Score, alts[i].Score)
		}
	}
	for _, alt := range alts {
		if alt.Date == "2026-09-01" {
			t.Errorf("the event's own date must not appear as an alternative")
		}
	}
}
