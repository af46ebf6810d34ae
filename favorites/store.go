// Package favorites persists the user's list of favorite city names.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Key is the storage key holding the serialized favorites list
const Key = "FAVORITE_CITIES"

// Backend is a durable key/value store holding string values
type Backend interface {
	// Get returns the value under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store keeps an ordered, duplicate-free list of city names as one JSON array.
//
// Every mutation reads and rewrites the whole list. Overlapping mutations are
// not coordinated: the last write wins.
type Store struct {
	backend Backend
}

// NewStore creates a favorites store on top of a backend
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// List returns the persisted favorites. A missing or unreadable value is an
// empty list; only backend failures are returned as errors.
func (s *Store) List(ctx context.Context) ([]string, error) {
	raw, ok, err := s.backend.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if !ok {
		return []string{}, nil
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		log.Printf("favorites: ignoring unparseable stored value: %v", err)
		return []string{}, nil
	}
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}

// Add appends city unless it is already present
func (s *Store) Add(ctx context.Context, city string) error {
	cities, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range cities {
		if c == city {
			return nil
		}
	}
	return s.save(ctx, append(cities, city))
}

// Remove deletes every entry equal to city
func (s *Store) Remove(ctx context.Context, city string) error {
	cities, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(cities))
	for _, c := range cities {
		if c != city {
			kept = append(kept, c)
		}
	}
	return s.save(ctx, kept)
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) save(ctx context.Context, cities []string) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.backend.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
