package weather

import (
	"encoding/json"
)

// Observation is the normalized weather snapshot used for scoring.
// It is produced only by Normalize and never mutated afterwards.
type Observation struct {
	TempKelvin  float64 `json:"temp"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind"`
	Clouds      *int    `json:"clouds"`
	Icon        string  `json:"icon"`
}

// currentConditions mirrors the subset of the OpenWeatherMap
// current-conditions payload that normalization reads.
type currentConditions struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All *int `json:"all"`
	} `json:"clouds"`
}

// Normalize maps a raw provider payload onto an Observation. Missing or
// malformed fields resolve to defaults rather than errors, so the mapping
// never fails and the same payload always yields the same observation.
func Normalize(raw json.RawMessage) Observation {
	var payload currentConditions
	// A decode error leaves the zero payload; the defaults below cover it.
	_ = json.Unmarshal(raw, &payload)

	obs := Observation{
		TempKelvin:  payload.Main.Temp,
		Description: "unknown",
		WindSpeed:   payload.Wind.Speed,
		Clouds:      payload.Clouds.All,
	}
	if len(payload.Weather) > 0 {
		if payload.Weather[0].Description != "" {
			obs.Description = payload.Weather[0].Description
		}
		obs.Icon = payload.Weather[0].Icon
	}
	return obs
}
