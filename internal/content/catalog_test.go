package content

import (
	"context"
	"testing"

	"offsite/internal/datasource"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCatalog_RegionsOrderedByName(t *testing.T) {
	db := openMemory(t)
	db.MustExec(`CREATE TABLE regions (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	for _, name := range []string{"Goa", "Bangalore", "Pune"} {
		db.MustExec(`INSERT INTO regions (name) VALUES (?)`, name)
	}

	catalog := NewCatalog(datasource.NewSQL(db), nil)
	regions := catalog.Regions()
	regions.Mount(context.Background())

	res, err := regions.Wait(context.Background())
	require.NoError(t, err)

	var names []string
	for _, r := range res.Items {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Bangalore", "Goa", "Pune"}, names)
}

func TestCatalog_AdsWithNullOverrides(t *testing.T) {
	db := openMemory(t)
	db.MustExec(`CREATE TABLE ads (
		id INTEGER PRIMARY KEY, slug TEXT, name TEXT, banner_image TEXT, heading TEXT,
		location TEXT, region_id INTEGER, priority INTEGER, extra_column TEXT)`)
	db.MustExec(`INSERT INTO ads (slug, name, banner_image, heading, location, region_id, priority)
		VALUES ('goa', 'Goa', 'https://cdn.test/goa.jpg', NULL, NULL, 1, NULL)`)

	ads := NewCatalog(datasource.NewSQL(db), nil).Ads()
	ads.Mount(context.Background())

	res, err := ads.Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	ad := res.Items[0]
	assert.Equal(t, "goa", ad.Slug)
	assert.Equal(t, "", ad.Heading.String())
	assert.Equal(t, "Goa", ad.Title())
	require.NotNil(t, ad.RegionID)
	assert.Equal(t, int64(1), *ad.RegionID)
	assert.Nil(t, ad.Priority)
}

func TestCatalog_MissingTableFailsSoft(t *testing.T) {
	db := openMemory(t)

	acts := NewCatalog(datasource.NewSQL(db), nil).Activities()
	acts.Mount(context.Background())

	res, err := acts.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Items)
	assert.Error(t, res.Err)
}
