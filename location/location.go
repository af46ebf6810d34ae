// Package location answers "where am I" for coordinate lookups.
package location

import (
	"context"
	"errors"

	"weatherly/models"
)

// ErrPermissionDenied is returned when the user has not granted location access
var ErrPermissionDenied = errors.New("location permission denied")

// Provider resolves the device's current coordinates
type Provider interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context) (models.Coordinates, error)

// Locate calls f
func (f ProviderFunc) Locate(ctx context.Context) (models.Coordinates, error) {
	return f(ctx)
}

// Fixed always answers with coords
func Fixed(coords models.Coordinates) Provider {
	return ProviderFunc(func(ctx context.Context) (models.Coordinates, error) {
		if err := ctx.Err(); err != nil {
			return models.Coordinates{}, err
		}
		return coords, nil
	})
}

// Denied always refuses access
func Denied() Provider {
	return ProviderFunc(func(context.Context) (models.Coordinates, error) {
		return models.Coordinates{}, ErrPermissionDenied
	})
}

// FromSettings returns Fixed when location access is enabled and both
// coordinates are known, and Denied otherwise.
func FromSettings(enabled bool, lat, lon *float64) Provider {
	if !enabled || lat == nil || lon == nil {
		return Denied()
	}
	return Fixed(models.Coordinates{Lat: *lat, Lon: *lon})
}
