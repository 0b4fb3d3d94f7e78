package datasource

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"offsite/internal/config"

	"github.com/jmoiron/sqlx"
)

// Open builds the Client selected by cfg.Backend.Driver. local is the
// already-open SQLite store, used when the driver is "sqlite". The returned
// closer releases resources owned by the client (nil-safe to call).
func Open(cfg *config.Config, local *sqlx.DB, log *slog.Logger) (Client, io.Closer, error) {
	const op = "datasource.Open"

	switch cfg.Backend.Driver {
	case config.DriverREST:
		c, err := NewREST(cfg.Backend.URL, cfg.Backend.AnonKey)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return c, nopCloser{}, nil

	case config.DriverPostgres:
		pg := &PostgresConfig{
			DSN:          cfg.Backend.DSN,
			MaxOpenConns: 10,
			MaxIdleConns: 2,
			MaxLifetime:  time.Hour,
		}
		db, err := pg.OpenPostgres(log)
		if err != nil {
			return nil, nil, err
		}
		return NewSQL(db), db, nil

	case config.DriverSQLite:
		if local == nil {
			return nil, nil, fmt.Errorf("%s: sqlite backend needs the local store", op)
		}
		return NewSQL(local), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("%s: %w: unknown driver %q", op, config.ErrMissingCredentials, cfg.Backend.Driver)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
