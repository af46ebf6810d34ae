package favorites

import (
	"strings"
)

// IsPostgresDSN reports whether dsn names a PostgreSQL database rather than a file
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open opens the store named by dsn: PostgreSQL for postgres:// URLs, a
// SQLite file otherwise.
func Open(dsn string) (*Store, error) {
	if IsPostgresDSN(dsn) {
		backend, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return NewStore(backend), nil
	}

	backend, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}
