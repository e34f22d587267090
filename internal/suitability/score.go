// Package suitability rates how favorable a weather observation is for
// holding an event. Scoring is pure and deterministic: the same observation
// and event type always produce the same result.
package suitability

import (
	"strings"

	"github.com/planora/eventcast/internal/weather"
)

// Labels for the score bands. Unknown is reserved for the no-data case and
// never results from a numeric score.
const (
	LabelUnknown = "Unknown"
	LabelPoor    = "Poor"
	LabelOkay    = "Okay"
	LabelGood    = "Good"
	LabelGreat   = "Great"
)

// Result pairs a suitability score in [0, 100] with its band label.
type Result struct {
	Score int    `json:"score"`
	Label string `json:"suitability"`
}

// Score rates the observation for the given event type. A nil observation
// means no weather data was available and yields score 0 with the Unknown
// label. Otherwise the score starts at 50 and independent adjustments are
// applied: description substrings ("clear" +30, "cloud" +10, "rain" -30,
// matches are case-insensitive and may stack), wind above 10 m/s -10,
// temperature outside 283-303 K -10, event type "wedding" +10 and
// "sports" -5. The total is clamped to [0, 100].
func Score(obs *weather.Observation, eventType string) Result {
	if obs == nil {
		return Result{Score: 0, Label: LabelUnknown}
	}

	score := 50
	desc := strings.ToLower(obs.Description)

	if strings.Contains(desc, "clear") {
		score += 30
	}
	if strings.Contains(desc, "cloud") {
		score += 10
	}
	if strings.Contains(desc, "rain") {
		score -= 30
	}
	if obs.WindSpeed > 10 {
		score -= 10
	}
	if obs.TempKelvin < 283 || obs.TempKelvin > 303 {
		score -= 10
	}

	switch eventType {
	case "wedding":
		score += 10
	case "sports":
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Label: label(score)}
}

// label maps a clamped score onto its band. Thresholds are exclusive lower
// bounds: 80 is Good, 60 is Okay, 40 is Poor.
func label(score int) string {
	switch {
	case score > 80:
		return LabelGreat
	case score > 60:
		return LabelGood
	case score > 40:
		return LabelOkay
	default:
		return LabelPoor
	}
}
