package datasource

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/supabase-community/postgrest-go"
)

// REST reads tables from a PostgREST-compatible hosted backend.
type REST struct {
	client *postgrest.Client
}

// NewREST builds a REST client for a project URL and its anonymous key.
func NewREST(projectURL, anonKey string) (*REST, error) {
	const op = "datasource.NewREST"

	u, err := url.Parse(projectURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, u.Scheme)
	}
	if anonKey == "" {
		return nil, fmt.Errorf("%s: anonymous key is empty", op)
	}

	client := postgrest.NewClient(strings.TrimRight(projectURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        anonKey,
		"Authorization": "Bearer " + anonKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("%s: %w", op, client.ClientError)
	}

	return &REST{client: client}, nil
}

// Select issues GET {url}/rest/v1/{table}?select=*[&order=col.dir].
func (c *REST) Select(ctx context.Context, q Query, dest any) error {
	const op = "datasource.REST.Select"

	if err := q.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkDest(dest); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req := c.client.From(q.Table).Select("*", "", false)
	if q.OrderBy != "" {
		req = req.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Descending})
	}

	if _, err := req.ExecuteToWithContext(ctx, dest); err != nil {
		return fmt.Errorf("%s: %s: %w", op, q.Table, err)
	}
	return nil
}

func checkDest(dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Slice {
		return ErrInvalidDestination
	}
	return nil
}
