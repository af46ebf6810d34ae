package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"weatherly/datasource"
	"weatherly/location"
	"weatherly/models"
)

var (
	// ErrBlankCity is returned by favorites edits given an empty city name
	ErrBlankCity = errors.New("city name is blank")
	// ErrNothingShown is returned by FavoriteCurrent when no weather is displayed
	ErrNothingShown = errors.New(MsgNothingToFavorite)
)

// FavoritesStore is the persistence the controller needs for favorites
type FavoritesStore interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, city string) error
	Remove(ctx context.Context, city string) error
}

// ForecastReducer turns a raw forecast feed into one entry per day
type ForecastReducer interface {
	Reduce(samples []models.ForecastSample) []models.DailyForecastEntry
}

// Controller runs user actions against the weather client and favorites store
// and publishes the resulting State.
//
// Every lookup is tagged with a sequence number. A response whose number is no
// longer the latest is dropped, so a slow earlier lookup never overwrites a
// newer one. The mutex guards state only and is released during I/O.
type Controller struct {
	client   datasource.WeatherClient
	store    FavoritesStore
	locator  location.Provider
	forecast ForecastReducer

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewController creates a controller in the Idle phase
func NewController(client datasource.WeatherClient, store FavoritesStore, locator location.Provider, reducer ForecastReducer) *Controller {
	if locator == nil {
		locator = location.Denied()
	}
	return &Controller{
		client:   client,
		store:    store,
		locator:  locator,
		forecast: reducer,
		state:    State{Phase: Idle},
	}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Search looks up current weather and the daily forecast for a city name
func (c *Controller) Search(ctx context.Context, city string) State {
	query := strings.TrimSpace(city)
	seq := c.begin(query)
	if query == "" {
		return c.fail(seq, MsgEmptyQuery)
	}

	return c.lookup(ctx, seq,
		func(ctx context.Context) (models.WeatherSnapshot, error) {
			return c.client.CurrentByCity(ctx, query)
		},
		func(ctx context.Context) (models.ForecastFeed, error) {
			return c.client.ForecastByCity(ctx, query)
		},
	)
}

// SelectFavorite runs a search for a saved city
func (c *Controller) SelectFavorite(ctx context.Context, city string) State {
	return c.Search(ctx, city)
}

// SearchHere looks up weather for the device's current location
func (c *Controller) SearchHere(ctx context.Context) State {
	seq := c.begin("")

	coords, err := c.locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, location.ErrPermissionDenied) {
			return c.fail(seq, MsgLocationDenied)
		}
		log.Printf("session: locate failed: %v", err)
		return c.fail(seq, MsgLocationFailed)
	}

	return c.lookup(ctx, seq,
		func(ctx context.Context) (models.WeatherSnapshot, error) {
			return c.client.CurrentByCoords(ctx, coords)
		},
		func(ctx context.Context) (models.ForecastFeed, error) {
			return c.client.ForecastByCoords(ctx, coords)
		},
	)
}

// LoadFavorites refreshes the favorites shown in the state from the store
func (c *Controller) LoadFavorites(ctx context.Context) ([]string, error) {
	cities, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	c.mu.Lock()
	c.state.Favorites = cities
	c.mu.Unlock()
	return append([]string(nil), cities...), nil
}

// AddFavorite saves city and refreshes the favorites list
func (c *Controller) AddFavorite(ctx context.Context, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrBlankCity
	}
	if err := c.store.Add(ctx, city); err != nil {
		return nil, fmt.Errorf("add favorite %q: %w", city, err)
	}
	return c.LoadFavorites(ctx)
}

// FavoriteCurrent saves the location currently on screen
func (c *Controller) FavoriteCurrent(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	var name string
	if c.state.Weather != nil {
		name = c.state.Weather.Location
	}
	c.mu.Unlock()

	if name == "" {
		return nil, ErrNothingShown
	}
	return c.AddFavorite(ctx, name)
}

// RemoveFavorite deletes city and refreshes the favorites list
func (c *Controller) RemoveFavorite(ctx context.Context, city string) ([]string, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrBlankCity
	}
	if err := c.store.Remove(ctx, city); err != nil {
		return nil, fmt.Errorf("remove favorite %q: %w", city, err)
	}
	return c.LoadFavorites(ctx)
}

// begin issues a new sequence number and moves to Loading, clearing any
// previous result.
func (c *Controller) begin(query string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = State{
		Phase:     Loading,
		Query:     query,
		Favorites: c.state.Favorites,
		Seq:       c.seq,
	}
	return c.seq
}

// commit applies update when seq is still the latest lookup
func (c *Controller) commit(seq uint64, update func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Printf("session: discarding stale response #%d (latest #%d)", seq, c.seq)
		return c.state.clone()
	}
	update(&c.state)
	return c.state.clone()
}

func (c *Controller) fail(seq uint64, msg string) State {
	return c.commit(seq, func(s *State) {
		s.Phase = Failed
		s.Weather = nil
		s.Forecast = nil
		s.Message = msg
	})
}

func (c *Controller) lookup(
	ctx context.Context,
	seq uint64,
	current func(context.Context) (models.WeatherSnapshot, error),
	feed func(context.Context) (models.ForecastFeed, error),
) State {
	snap, err := current(ctx)
	if err != nil {
		return c.fail(seq, failureMessage(err))
	}

	var daily []models.DailyForecastEntry
	f, err := feed(ctx)
	if err != nil {
		log.Printf("session: forecast unavailable for %q: %v", snap.Location, err)
	} else {
		daily = c.forecast.Reduce(f.Samples)
	}

	return c.commit(seq, func(s *State) {
		s.Phase = Ready
		s.Weather = &snap
		s.Forecast = daily
		s.Message = ""
	})
}

// failureMessage maps a weather client error to the text shown to the user
func failureMessage(err error) string {
	var apiErr *datasource.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgCityNotFound
	}
	if !datasource.IsTransport(err) {
		log.Printf("session: unexpected lookup error: %v", err)
	}
	return MsgNetwork
}
