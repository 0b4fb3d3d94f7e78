// Package datasource is the read-only handle to the hosted content tables.
//
// Every query is a full-table read ("select *"), optionally ordered by one
// column. Two implementations exist: REST talks to a PostgREST endpoint
// (project URL + anonymous key) and SQL reads the same tables through sqlx,
// either from Postgres or from the local SQLite store.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidIdentifier is returned for table or column names that are
	// not plain identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrInvalidDestination is returned when dest is not a pointer to a slice.
	ErrInvalidDestination = errors.New("destination must be a non-nil pointer to a slice")
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Query is a read-all request against one table.
type Query struct {
	Table      string
	OrderBy    string
	Descending bool
}

// Validate checks table and column names.
func (q Query) Validate() error {
	if !identRe.MatchString(q.Table) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, q.Table)
	}
	if q.OrderBy != "" && !identRe.MatchString(q.OrderBy) {
		return fmt.Errorf("%w: column %q", ErrInvalidIdentifier, q.OrderBy)
	}
	return nil
}

func (q Query) direction() string {
	if q.Descending {
		return "desc"
	}
	return "asc"
}

// Client runs read-all queries and decodes rows into dest, which must be a
// pointer to a slice of structs.
type Client interface {
	Select(ctx context.Context, q Query, dest any) error
}
