package event

import (
	"errors"

	"github.com/planora/eventcast/internal/weather"
)

var (
	// ErrNotFound is returned when the referenced event id does not exist.
	ErrNotFound = errors.New("event not found")

	// ErrNoAlternatives is returned when weather could be fetched for none
	// of the candidate dates.
	ErrNoAlternatives = errors.New("no suitable alternative dates found")

	// ErrInvalidDate is returned when an event's date cannot be parsed as
	// an ISO calendar date.
	ErrInvalidDate = errors.New("event date is not a valid YYYY-MM-DD date")
)

// Event is a planned happening enriched with the weather snapshot and the
// suitability rating computed for its city and date. Score, Suitability and
// Weather always come from the same enrichment attempt: a failed attempt at
// creation leaves Weather nil with score 0 and the Unknown label, and a
// failed explicit re-check leaves all three untouched.
type Event struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	City        string               `json:"city"`
	Date        string               `json:"date"` // ISO YYYY-MM-DD
	Type        string               `json:"type"`
	Score       *int                 `json:"score"`
	Suitability *string              `json:"suitability"`
	Weather     *weather.Observation `json:"weather"`
}

// Patch carries the user-settable fields of an update request. Nil fields
// are left untouched. Derived fields are recomputed only by an explicit
// weather check, never by an update.
type Patch struct {
	Name *string `json:"name"`
	City *string `json:"city"`
	Date *string `json:"date"`
	Type *string `json:"type"`
}

// Store persists events. Implementations assign sequential ids starting at 1
// and must serialize their own read-modify-write cycles.
type Store interface {
	List() ([]Event, error)
	Get(id int) (Event, error)
	Create(e Event) (Event, error)
	Update(id int, apply func(*Event)) (Event, error)
}
