package datasource

import (
	"context"
	"fmt"

	"weatherly/models"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps a WeatherClient with a token-bucket limiter shared
// by all four operations, since the API meters calls per key.
type RateLimitedClient struct {
	client  WeatherClient
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedClient creates a new rate limited weather client.
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second),
// burst is the maximum burst size allowed.
func NewRateLimitedClient(client WeatherClient, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", client.Name()),
	}
}

func (r *RateLimitedClient) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait canceled: %w", ErrTransport, err)
	}
	return nil
}

// CurrentByCity implements WeatherClient with rate limiting
func (r *RateLimitedClient) CurrentByCity(ctx context.Context, name string) (models.WeatherSnapshot, error) {
	if err := r.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.client.CurrentByCity(ctx, name)
}

// CurrentByCoords implements WeatherClient with rate limiting
func (r *RateLimitedClient) CurrentByCoords(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error) {
	if err := r.wait(ctx); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.client.CurrentByCoords(ctx, coords)
}

// ForecastByCity implements WeatherClient with rate limiting
func (r *RateLimitedClient) ForecastByCity(ctx context.Context, name string) (models.ForecastFeed, error) {
	if err := r.wait(ctx); err != nil {
		return models.ForecastFeed{}, err
	}
	return r.client.ForecastByCity(ctx, name)
}

// ForecastByCoords implements WeatherClient with rate limiting
func (r *RateLimitedClient) ForecastByCoords(ctx context.Context, coords models.Coordinates) (models.ForecastFeed, error) {
	if err := r.wait(ctx); err != nil {
		return models.ForecastFeed{}, err
	}
	return r.client.ForecastByCoords(ctx, coords)
}

// Name returns the client name
func (r *RateLimitedClient) Name() string {
	return r.name
}

// Verify that the rate limited client implements the required interface
var _ WeatherClient = (*RateLimitedClient)(nil)
