package datasource

import (
	"context"

	"weatherly/models"
)

// WeatherClient is the read-only contract of a weather API.
//
// Remote semantic failures are returned as *APIError, transport failures wrap
// ErrTransport. Every call resolves exactly once; nothing is retried.
type WeatherClient interface {
	// CurrentByCity fetches current conditions for a free-text place name
	CurrentByCity(ctx context.Context, name string) (models.WeatherSnapshot, error)

	// CurrentByCoords fetches current conditions for a coordinate pair
	CurrentByCoords(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error)

	// ForecastByCity fetches the 5-day/3-hour forecast for a place name
	ForecastByCity(ctx context.Context, name string) (models.ForecastFeed, error)

	// ForecastByCoords fetches the 5-day/3-hour forecast for a coordinate pair
	ForecastByCoords(ctx context.Context, coords models.Coordinates) (models.ForecastFeed, error)

	// Name returns the provider's name
	Name() string
}
