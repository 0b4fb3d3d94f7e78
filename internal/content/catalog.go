package content

import (
	"context"
	"log/slog"

	"offsite/internal/datasource"
	"offsite/internal/domain"
)

// Table queries for each resource family.
var (
	AdsQuery        = datasource.Query{Table: "ads"}
	RegionsQuery    = datasource.Query{Table: "regions", OrderBy: "name"}
	ActivitiesQuery = datasource.Query{Table: "activities"}
)

// Table is a Source reading a whole table through the data client.
type Table[T any] struct {
	client datasource.Client
	query  datasource.Query
}

// NewTable returns a Source for q.
func NewTable[T any](client datasource.Client, q datasource.Query) *Table[T] {
	return &Table[T]{client: client, query: q}
}

func (t *Table[T]) Fetch(ctx context.Context) ([]T, error) {
	var items []T
	if err := t.client.Select(ctx, t.query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Catalog hands out fresh providers bound to one data client.
type Catalog struct {
	client datasource.Client
	log    *slog.Logger
}

// NewCatalog creates a Catalog.
func NewCatalog(client datasource.Client, log *slog.Logger) *Catalog {
	return &Catalog{client: client, log: log}
}

// Ads returns a new, unmounted ads provider.
func (c *Catalog) Ads() *Provider[domain.Ad] {
	return NewProvider[domain.Ad]("ads", NewTable[domain.Ad](c.client, AdsQuery), c.log)
}

// Regions returns a new, unmounted regions provider ordered by name.
func (c *Catalog) Regions() *Provider[domain.Region] {
	return NewProvider[domain.Region]("regions", NewTable[domain.Region](c.client, RegionsQuery), c.log)
}

// Activities returns a new, unmounted activities provider.
func (c *Catalog) Activities() *Provider[domain.Activity] {
	return NewProvider[domain.Activity]("activities", NewTable[domain.Activity](c.client, ActivitiesQuery), c.log)
}
