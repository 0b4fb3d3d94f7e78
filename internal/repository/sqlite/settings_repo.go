package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"offsite/internal/repository"

	"github.com/jmoiron/sqlx"
)

// SettingsRepo stores editable site copy as key/value rows.
type SettingsRepo struct {
	db *DB
}

func NewSettingsRepo(db *DB) repository.SettingsRepository {
	return &SettingsRepo{db: db}
}

// Lookup returns the stored values for keys. Keys without a row, or with a
// NULL value, are left out of the map.
func (r *SettingsRepo) Lookup(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT key, value FROM settings WHERE key IN (?)`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build settings lookup: %w", err)
	}

	var rows []struct {
		Key   string         `db:"key"`
		Value sql.NullString `db:"value"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to look up settings: %w", err)
	}
	for _, row := range rows {
		if row.Value.Valid {
			out[row.Key] = row.Value.String
		}
	}
	return out, nil
}

// Save upserts all values in one transaction.
func (r *SettingsRepo) Save(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settings update: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key, values[key]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
