package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"offsite/internal/lib/sl"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// SQL reads tables through sqlx. Column names map onto struct `db` tags.
type SQL struct {
	db *sqlx.DB
}

// NewSQL wraps an open database handle. Columns without a matching struct
// field are ignored, since hosted tables grow columns the site never reads.
func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db.Unsafe()}
}

// Select runs SELECT * FROM table [ORDER BY col dir].
func (c *SQL) Select(ctx context.Context, q Query, dest any) error {
	const op = "datasource.SQL.Select"

	if err := q.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkDest(dest); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// identifiers are validated above, so interpolation is safe here
	stmt := "SELECT * FROM " + q.Table
	if q.OrderBy != "" {
		stmt += " ORDER BY " + q.OrderBy + " " + q.direction()
	}

	if err := c.db.SelectContext(ctx, dest, stmt); err != nil {
		return fmt.Errorf("%s: %s: %w", op, q.Table, err)
	}
	return nil
}

// PostgresConfig opens the Postgres content backend.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// OpenPostgres opens and pings a lib/pq connection pool.
func (c *PostgresConfig) OpenPostgres(log *slog.Logger) (*sqlx.DB, error) {
	const op = "datasource.OpenPostgres"

	log = log.With(slog.String("op", op))

	db, err := sqlx.Open("postgres", c.DSN)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(
		"database parameters",
		slog.Int("max_open_conns", c.MaxOpenConns),
		slog.Int("max_idle_conns", c.MaxIdleConns),
		slog.Duration("max_lifetime", c.MaxLifetime),
	)

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.MaxLifetime)

	if err = db.Ping(); err != nil {
		log.Error("failed to ping database", sl.Err(err))
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}
