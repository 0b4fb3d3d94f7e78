// Package pages composes provider snapshots into page view models. It does
// no I/O; handlers in internal/server feed it snapshots and render the result.
package pages

import (
	"sort"

	"offsite/internal/content"
	"offsite/internal/domain"
)

// Mode is what a detail page shows.
type Mode int

const (
	ModeLoading Mode = iota
	ModeNotFound
	ModeFound
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeNotFound:
		return "not_found"
	case ModeFound:
		return "found"
	}
	return "unknown"
}

// FindBySlug scans items in order and returns the first match. Slug
// uniqueness is assumed, not checked.
func FindBySlug[T domain.Record](items []T, slug string) (T, bool) {
	for _, it := range items {
		if it.RecordSlug() == slug {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// DetailView is the model for a detail page.
type DetailView[T domain.Record] struct {
	Mode   Mode
	Slug   string
	Record T
}

// Detail picks the record for slug. Not-found is only reported once the
// snapshot has finished loading.
func Detail[T domain.Record](snap content.Snapshot[T], slug string) DetailView[T] {
	if snap.Loading {
		return DetailView[T]{Mode: ModeLoading, Slug: slug}
	}
	rec, ok := FindBySlug(snap.Items, slug)
	if !ok {
		return DetailView[T]{Mode: ModeNotFound, Slug: slug}
	}
	return DetailView[T]{Mode: ModeFound, Slug: slug, Record: rec}
}

// ListingView is the model for a listing page.
type ListingView[T domain.Record] struct {
	Loading bool
	Failed  bool
	Items   []T
	Regions []domain.Region
	Region  *domain.Region
}

// Listing filters items by region when regionID is non-zero. Regions are
// passed through for the filter bar; a loading region list does not block
// the listing.
func Listing[T domain.Record](snap content.Snapshot[T], regions content.Snapshot[domain.Region], regionID int64) ListingView[T] {
	view := ListingView[T]{
		Loading: snap.Loading,
		Failed:  snap.Status == content.StatusFailed,
		Regions: regions.Items,
		Items:   []T{},
	}
	if snap.Loading {
		return view
	}

	if regionID != 0 {
		for i := range regions.Items {
			if regions.Items[i].ID == regionID {
				view.Region = &regions.Items[i]
				break
			}
		}
	}

	for _, it := range snap.Items {
		if regionID != 0 {
			rid := it.RecordRegion()
			if rid == nil || *rid != regionID {
				continue
			}
		}
		view.Items = append(view.Items, it)
	}
	return view
}

// HomeView is the model for the landing page.
type HomeView struct {
	Loading           bool
	ActivitiesLoading bool
	Featured          []domain.Ad
	Regions           []domain.Region
	Activities        []domain.Activity
}

// Home picks up to featuredCount ads and activityCount activities by
// priority, highest first. Equal priorities keep backend order.
func Home(ads content.Snapshot[domain.Ad], regions content.Snapshot[domain.Region], activities content.Snapshot[domain.Activity], featuredCount, activityCount int) HomeView {
	return HomeView{
		Loading:           ads.Loading,
		ActivitiesLoading: activities.Loading,
		Featured:          topRanked(ads.Items, featuredCount),
		Regions:           regions.Items,
		Activities:        topRanked(activities.Items, activityCount),
	}
}

func topRanked[T domain.Record](items []T, n int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank() > out[j].Rank()
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RegionName resolves a region id against a region list.
func RegionName(regions []domain.Region, id *int64) string {
	if id == nil {
		return ""
	}
	for _, r := range regions {
		if r.ID == *id {
			return r.Name
		}
	}
	return ""
}
