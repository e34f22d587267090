package suitability

import (
	"testing"

	"github.com/planora/eventcast/internal/weather"
)

func obs(description string, tempKelvin, wind float64) *weather.Observation {
	return &weather.Observation{
		TempKelvin:  tempKelvin,
		Description: description,
		WindSpeed:   wind,
	}
}

func TestScoreNilObservation(t *testing.T) {
	got := Score(nil, "wedding")
	if got.Score != 0 || got.Label != LabelUnknown {
		t.Fatalf("expected 0/%s for missing weather, got %d/%s", LabelUnknown, got.Score, got.Label)
	}
}

func TestScoreAdjustments(t *testing.T) {
	tests := []struct {
		name      string
		obs       *weather.Observation
		eventType string
		wantScore int
		wantLabel string
	}{
		{
			name:      "clear and windy sports day",
			obs:       obs("clear and windy", 290, 15),
			eventType: "sports",
			wantScore: 65, // 50 +30 clear -10 wind -5 sports
			wantLabel: LabelGood,
		},
		{
			name:      "boundary 80 is Good not Great",
			obs:       obs("clear sky", 290, 0),
			eventType: "",
			wantScore: 80,
			wantLabel: LabelGood,
		},
		{
			name:      "boundary 60 is Okay not Good",
			obs:       obs("scattered clouds", 290, 0),
			eventType: "",
			wantScore: 60,
			wantLabel: LabelOkay,
		},
		{
			name:      "boundary 40 is Poor not Okay",
			obs:       obs("broken clouds", 280, 12),
			eventType: "",
			wantScore: 40, // 50 +10 cloud -10 wind -10 cold
			wantLabel: LabelPoor,
		},
		{
			name:      "stacked substrings apply independently",
			obs:       obs("light rain and clouds", 290, 0),
			eventType: "",
			wantScore: 30, // 50 +10 cloud -30 rain
			wantLabel: LabelPoor,
		},
		{
			name:      "matching is case-insensitive",
			obs:       obs("Clear Sky", 290, 0),
			eventType: "",
			wantScore: 80,
			wantLabel: LabelGood,
		},
		{
			name:      "wedding bonus",
			obs:       obs("clear sky", 290, 0),
			eventType: "wedding",
			wantScore: 90,
			wantLabel: LabelGreat,
		},
		{
			name:      "clamped at zero",
			obs:       obs("heavy rain", 275, 20),
			eventType: "sports",
			wantScore: 0, // 50 -30 rain -10 wind -10 cold -5 sports = -5
			wantLabel: LabelPoor,
		},
		{
			name:      "clamped at one hundred",
			obs:       obs("clear with few clouds", 290, 0),
			eventType: "wedding",
			wantScore: 100, // 50 +30 +10 +10
			wantLabel: LabelGreat,
		},
		{
			name:      "hot day penalty",
			obs:       obs("clear sky", 310, 0),
			eventType: "",
			wantScore: 70, // 50 +30 clear -10 heat
			wantLabel: LabelGood,
		},
		{
			name:      "unrelated event type is neutral",
			obs:       obs("clear sky", 290, 0),
			eventType: "conference",
			wantScore: 80,
			wantLabel: LabelGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.obs, tt.eventType)
			if got.Score != tt.wantScore {
				t.Errorf("score: expected %d, got %d", tt.wantScore, got.Score)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label: expected %s, got %s", tt.wantLabel, got.Label)
			}
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	o := obs("light rain", 295, 5)
	first := Score(o, "sports")
	second := Score(o, "sports")
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}
