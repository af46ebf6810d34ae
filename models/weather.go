package models

import (
	"time"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherSnapshot describes current conditions for one location at fetch time.
// A snapshot is never mutated; the next fetch replaces it.
type WeatherSnapshot struct {
	Location    string      `json:"location"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Temperature float64     `json:"temperature"` // in the requested unit system
	FeelsLike   float64     `json:"feelsLike"`
	TempMin     float64     `json:"tempMin"` // daily low
	TempMax     float64     `json:"tempMax"` // daily high
	Humidity    int         `json:"humidity"`  // percentage
	WindSpeed   float64     `json:"windSpeed"` // m/s for metric, mph for imperial
	Pressure    int         `json:"pressure"`  // in hPa
	ConditionID int         `json:"conditionId"`
	Condition   string      `json:"condition"`   // short group, e.g. "Rain"
	Description string      `json:"description"` // short text description
	Icon        string      `json:"icon"`        // icon identifier
	Timestamp   time.Time   `json:"timestamp"`   // when the snapshot was fetched
}
