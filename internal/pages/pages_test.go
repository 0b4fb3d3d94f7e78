package pages

import (
	"testing"

	"offsite/internal/content"
	"offsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func loaded[T any](items ...T) content.Snapshot[T] {
	return content.Snapshot[T]{Items: items, Status: content.StatusLoaded}
}

func TestDetail_LoadingNeverReportsNotFound(t *testing.T) {
	view := Detail(content.Snapshot[domain.Ad]{Items: []domain.Ad{}, Loading: true}, "missing")
	assert.Equal(t, ModeLoading, view.Mode)
}

func TestDetail_NotFoundAfterLoad(t *testing.T) {
	view := Detail(loaded(domain.Ad{Slug: "goa"}), "missing")
	assert.Equal(t, ModeNotFound, view.Mode)
	assert.Equal(t, "missing", view.Slug)

	failed := content.Snapshot[domain.Ad]{Items: []domain.Ad{}, Status: content.StatusFailed}
	assert.Equal(t, ModeNotFound, Detail(failed, "goa").Mode)
}

func TestDetail_FirstMatchWins(t *testing.T) {
	snap := loaded(
		domain.Ad{ID: 1, Slug: "pune", Name: "Pune"},
		domain.Ad{ID: 2, Slug: "goa", Name: "Goa north"},
		domain.Ad{ID: 3, Slug: "goa", Name: "Goa south"},
	)

	view := Detail(snap, "goa")
	require.Equal(t, ModeFound, view.Mode)
	assert.Equal(t, int64(2), view.Record.ID)
	assert.Equal(t, "Goa north", view.Record.Name)
}

func TestListing_FiltersByRegion(t *testing.T) {
	regions := loaded(domain.Region{ID: 1, Name: "Bangalore"}, domain.Region{ID: 2, Name: "Goa"})
	ads := loaded(
		domain.Ad{Slug: "a", RegionID: ptr(int64(2))},
		domain.Ad{Slug: "b"},
		domain.Ad{Slug: "c", RegionID: ptr(int64(1))},
		domain.Ad{Slug: "d", RegionID: ptr(int64(2))},
	)

	all := Listing(ads, regions, 0)
	assert.Len(t, all.Items, 4)
	assert.Nil(t, all.Region)

	goa := Listing(ads, regions, 2)
	require.NotNil(t, goa.Region)
	assert.Equal(t, "Goa", goa.Region.Name)
	require.Len(t, goa.Items, 2)
	assert.Equal(t, "a", goa.Items[0].Slug)
	assert.Equal(t, "d", goa.Items[1].Slug)
}

func TestListing_LoadingAndFailed(t *testing.T) {
	regions := loaded[domain.Region]()

	view := Listing(content.Snapshot[domain.Activity]{Loading: true}, regions, 0)
	assert.True(t, view.Loading)
	assert.Empty(t, view.Items)

	view = Listing(content.Snapshot[domain.Activity]{Items: []domain.Activity{}, Status: content.StatusFailed}, regions, 0)
	assert.False(t, view.Loading)
	assert.True(t, view.Failed)
}

func TestHome_FeaturedByPriorityStable(t *testing.T) {
	ads := loaded(
		domain.Ad{Slug: "low", Priority: ptr(1)},
		domain.Ad{Slug: "none"},
		domain.Ad{Slug: "high-a", Priority: ptr(5)},
		domain.Ad{Slug: "high-b", Priority: ptr(5)},
	)
	acts := loaded(domain.Activity{Slug: "kayak"}, domain.Activity{Slug: "escape", Priority: ptr(2)})

	view := Home(ads, loaded[domain.Region](), acts, 3, 1)

	require.Len(t, view.Featured, 3)
	assert.Equal(t, "high-a", view.Featured[0].Slug)
	assert.Equal(t, "high-b", view.Featured[1].Slug)
	assert.Equal(t, "low", view.Featured[2].Slug)
	require.Len(t, view.Activities, 1)
	assert.Equal(t, "escape", view.Activities[0].Slug)

	assert.Equal(t, "low", ads.Items[0].Slug, "input order untouched")
}

func TestHome_LoadingPerSection(t *testing.T) {
	ads := loaded(domain.Ad{Slug: "goa"})
	acts := content.Snapshot[domain.Activity]{Items: []domain.Activity{}, Loading: true}

	view := Home(ads, loaded[domain.Region](), acts, 3, 3)
	assert.False(t, view.Loading)
	assert.True(t, view.ActivitiesLoading)
	assert.Len(t, view.Featured, 1)
	assert.Empty(t, view.Activities)
}

func TestRegionName(t *testing.T) {
	regions := []domain.Region{{ID: 1, Name: "Bangalore"}}
	assert.Equal(t, "Bangalore", RegionName(regions, ptr(int64(1))))
	assert.Equal(t, "", RegionName(regions, ptr(int64(9))))
	assert.Equal(t, "", RegionName(regions, nil))
}
