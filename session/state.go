// Package session holds the lookup screen's state and the controller that
// drives weather lookups and favorites edits.
package session

import (
	"weatherly/models"
)

// Phase is the lookup lifecycle: Idle -> Loading -> Ready or Failed
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// User-facing messages
const (
	MsgEmptyQuery        = "Please enter a city name."
	MsgNetwork           = "Network error. Please try again."
	MsgCityNotFound      = "City not found."
	MsgLocationDenied    = "Permission to access location was denied."
	MsgLocationFailed    = "Unable to determine your location."
	MsgNothingToFavorite = "Search for a city before adding it to favorites."
)

// State is a snapshot of what the screen shows.
//
// Weather is nil unless Phase is Ready. Forecast may be empty on a Ready
// state when only the forecast lookup failed.
type State struct {
	Phase     Phase
	Query     string
	Weather   *models.WeatherSnapshot
	Forecast  []models.DailyForecastEntry
	Favorites []string
	Message   string
	// Seq identifies the lookup that produced this state
	Seq       uint64
}

func (s State) clone() State {
	out := s
	if s.Weather != nil {
		w := *s.Weather
		out.Weather = &w
	}
	out.Forecast = append([]models.DailyForecastEntry(nil), s.Forecast...)
	out.Favorites = append([]string(nil), s.Favorites...)
	return out
}
