package favorites_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"weatherly/favorites"
)

type mockBackend struct {
	GetFunc func(ctx context.Context, key string) (string, bool, error)
	SetFunc func(ctx context.Context, key, value string) error
}

func (m *mockBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return m.GetFunc(ctx, key)
}

func (m *mockBackend) Set(ctx context.Context, key, value string) error {
	return m.SetFunc(ctx, key, value)
}

func (m *mockBackend) Close() error { return nil }

func mustList(t *testing.T, s *favorites.Store) []string {
	t.Helper()
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return got
}

func TestStore_EmptyWhenUnset(t *testing.T) {
	s := favorites.NewStore(favorites.NewMemory())
	got := mustList(t, s)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestStore_AddKeepsOrderAndSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := favorites.NewStore(favorites.NewMemory())

	for _, city := range []string{"Paris", "Rome", "Paris"} {
		if err := s.Add(ctx, city); err != nil {
			t.Fatalf("Add(%q): %v", city, err)
		}
	}
	if got, want := mustList(t, s), []string{"Paris", "Rome"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStore_ExactMatchOnly(t *testing.T) {
	ctx := context.Background()
	s := favorites.NewStore(favorites.NewMemory())

	_ = s.Add(ctx, "Paris")
	_ = s.Add(ctx, "paris")
	if got := mustList(t, s); len(got) != 2 {
		t.Errorf("case variants are distinct entries, got %v", got)
	}
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	mem := favorites.NewMemory()
	_ = mem.Set(ctx, favorites.Key, `["Paris","Rome","Oslo","Rome"]`)
	s := favorites.NewStore(mem)

	if err := s.Remove(ctx, "Rome"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, want := mustList(t, s), []string{"Paris", "Oslo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if err := s.Remove(ctx, "Lima"); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	if got, want := mustList(t, s), []string{"Paris", "Oslo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("removing an absent city changed the list: %v", got)
	}
}

func TestStore_UnparseableValueIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"garbage", "not json"},
		{"object", `{"city":"Paris"}`},
		{"null", "null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			mem := favorites.NewMemory()
			_ = mem.Set(ctx, favorites.Key, tc.value)
			s := favorites.NewStore(mem)

			if got := mustList(t, s); len(got) != 0 {
				t.Fatalf("expected empty list, got %v", got)
			}
			if err := s.Add(ctx, "Lima"); err != nil {
				t.Fatalf("Add: %v", err)
			}
			if got, want := mustList(t, s), []string{"Lima"}; !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestStore_BackendErrors(t *testing.T) {
	boom := errors.New("disk gone")
	ctx := context.Background()

	t.Run("read", func(t *testing.T) {
		s := favorites.NewStore(&mockBackend{
			GetFunc: func(context.Context, string) (string, bool, error) { return "", false, boom },
		})
		if _, err := s.List(ctx); !errors.Is(err, boom) {
			t.Errorf("List: expected wrapped backend error, got %v", err)
		}
		if err := s.Add(ctx, "Paris"); !errors.Is(err, boom) {
			t.Errorf("Add: expected wrapped backend error, got %v", err)
		}
	})

	t.Run("write", func(t *testing.T) {
		var written string
		s := favorites.NewStore(&mockBackend{
			GetFunc: func(context.Context, string) (string, bool, error) { return `["Paris"]`, true, nil },
			SetFunc: func(_ context.Context, key, value string) error {
				if key != favorites.Key {
					t.Errorf("unexpected key %q", key)
				}
				written = value
				return boom
			},
		})
		if err := s.Add(ctx, "Rome"); !errors.Is(err, boom) {
			t.Errorf("expected wrapped backend error, got %v", err)
		}
		if written != `["Paris","Rome"]` {
			t.Errorf("unexpected serialized value %q", written)
		}
	})
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "favorites.db")

	s, err := favorites.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := mustList(t, s); len(got) != 0 {
		t.Fatalf("fresh store should be empty, got %v", got)
	}
	_ = s.Add(ctx, "Paris")
	_ = s.Add(ctx, "Rome")
	_ = s.Remove(ctx, "Paris")
	_ = s.Add(ctx, "Oslo")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = favorites.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got, want := mustList(t, s), []string{"Rome", "Oslo"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := map[string]bool{
		"postgres://u:p@localhost/db":    true,
		"postgresql://localhost/db":      true,
		"/var/lib/weatherly/fav.db":      false,
		"favorites.db":                   false,
		"file:favorites.db?cache=shared": false,
	}
	for dsn, want := range tests {
		if got := favorites.IsPostgresDSN(dsn); got != want {
			t.Errorf("IsPostgresDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}
