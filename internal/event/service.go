package event

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/planora/eventcast/internal/observability"
	"github.com/planora/eventcast/internal/suitability"
	"github.com/planora/eventcast/internal/weather"
)

const dateLayout = "2006-01-02"

// alternativeOffsets are the candidate day offsets around an event's date,
// ranked by projected suitability. The event's own date is excluded.
var alternativeOffsets = []int{-3, -2, -1, 1, 2, 3}

// Service orchestrates the store, the weather client and the scorer to
// implement the event lifecycle.
type Service struct {
	store   Store
	weather *weather.Client
	metrics *observability.Metrics
}

// NewService creates a new Service.
func NewService(store Store, weatherClient *weather.Client, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		weather: weatherClient,
		metrics: metrics,
	}
}

// Create persists a new event, enriching it with weather and suitability on
// a best-effort basis: provider trouble degrades to a nil observation and an
// Unknown rating instead of failing the request.
func (s *Service) Create(ctx context.Context, name, city, date, eventType string) (Event, error) {
	obs := s.weather.TryFetch(ctx, city, date)
	result := suitability.Score(obs, eventType)

	e := Event{
		Name:        name,
		City:        city,
		Date:        date,
		Type:        eventType,
		Score:       &result.Score,
		Suitability: &result.Label,
		Weather:     obs,
	}

	created, err := s.store.Create(e)
	if err != nil {
		return Event{}, fmt.Errorf("persist event: %w", err)
	}
	s.metrics.EventsCreated.Inc()
	return created, nil
}

// List returns all stored events.
func (s *Service) List() ([]Event, error) {
	return s.store.List()
}

// Update merges the patch into the stored event. It deliberately does not
// recompute weather or suitability even when city, date or type changed;
// callers resync with an explicit weather check.
func (s *Service) Update(id int, patch Patch) (Event, error) {
	return s.store.Update(id, func(e *Event) {
		if patch.Name != nil {
			e.Name = *patch.Name
		}
		if patch.City != nil {
			e.City = *patch.City
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
	})
}

// RefreshWeather re-fetches weather for the event's current city and date
// and recomputes its suitability. Unlike creation this is not best-effort:
// a failed fetch leaves the event unmodified and is reported to the caller.
func (s *Service) RefreshWeather(ctx context.Context, id int) (Event, error) {
	e, err := s.store.Get(id)
	if err != nil {
		return Event{}, err
	}

	obs, err := s.weather.Fetch(ctx, e.City, e.Date)
	if err != nil {
		return Event{}, fmt.Errorf("refresh weather for event %d: %w", id, err)
	}
	result := suitability.Score(&obs, e.Type)

	updated, err := s.store.Update(id, func(e *Event) {
		o := obs
		e.Weather = &o
		e.Score = &result.Score
		e.Suitability = &result.Label
	})
	if err != nil {
		return Event{}, err
	}
	s.metrics.WeatherChecks.Inc()
	return updated, nil
}

// SuitabilityView is the last-computed rating of an event, served without
// refetching weather.
type SuitabilityView struct {
	Score       *int    `json:"score"`
	Suitability *string `json:"suitability"`
}

// Suitability returns the event's stored score and label.
func (s *Service) Suitability(id int) (SuitabilityView, error) {
	e, err := s.store.Get(id)
	if err != nil {
		return SuitabilityView{}, err
	}
	return SuitabilityView{Score: e.Score, Suitability: e.Suitability}, nil
}

// Alternative is a candidate date near an event's own date, rated by its
// projected suitability.
type Alternative struct {
	Date        string `json:"date"`
	Score       int    `json:"score"`
	Suitability string `json:"suitability"`
}

// Alternatives rates the dates within three days of the event's date,
// skipping offsets whose weather fetch fails, and returns them sorted by
// score descending. When every offset fails it returns ErrNoAlternatives.
func (s *Service) Alternatives(ctx context.Context, id int) ([]Alternative, error) {
	e, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	base, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}

	alts := make([]Alternative, 0, len(alternativeOffsets))
	for _, offset := range alternativeOffsets {
		date := base.AddDate(0, 0, offset).Format(dateLayout)

		obs := s.weather.TryFetch(ctx, e.City, date)
		if obs == nil {
			continue
		}

		result := suitability.Score(obs, e.Type)
		alts = append(alts, Alternative{
			Date:        date,
			Score:       result.Score,
			Suitability: result.Label,
		})
	}

	if len(alts) == 0 {
		return nil, ErrNoAlternatives
	}

	// Stable sort keeps ties in offset iteration order.
	sort.SliceStable(alts, func(i, j int) bool {
		return alts[i].Score > alts[j].Score
	})
	return alts, nil
}
