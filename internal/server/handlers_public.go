package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"offsite/internal/content"
	"offsite/internal/domain"
	"offsite/internal/lib/sl"
	"offsite/internal/pages"
	"offsite/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

const (
	homeFeaturedAds   = 6
	homeActivities    = 4
	qrCodeSize        = 256
	qrCodeCacheMaxAge = "public, max-age=86400"
)

type homeData struct {
	Hero HeroView
	View pages.HomeView
}

type listingData[T domain.Record] struct {
	View   pages.ListingView[T]
	Filter RegionFilter
}

type destinationData struct {
	Ad         domain.Ad
	Hero       HeroView
	RegionName string
}

type activityData struct {
	Activity   domain.Activity
	Hero       HeroView
	RegionName string
}

// mount mounts members for this request and waits for them up to the
// configured render wait. The caller closes the returned scope once the
// page is rendered.
func (s *Server) mount(r *http.Request, members ...content.Mountable) *content.Scope {
	scope := content.Mount(r.Context(), members...)

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Content.RenderWait)
	defer cancel()

	if err := scope.Await(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.log.Warn("content still loading at render time",
				slog.String("path", r.URL.Path),
				slog.Duration("wait", s.config.Content.RenderWait),
			)
		} else {
			s.log.Debug("content wait ended", slog.String("path", r.URL.Path), sl.Err(err))
		}
	}
	return scope
}

// handleHome renders the landing page
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ads, regions, activities := s.catalog.Ads(), s.catalog.Regions(), s.catalog.Activities()
	scope := s.mount(r, ads, regions, activities)
	defer scope.Close()

	view := pages.Home(ads.Snapshot(), regions.Snapshot(), activities.Snapshot(), homeFeaturedAds, homeActivities)

	data := s.newPageData(r, s.config.Business.Name)
	data.Description = s.config.Business.Tagline
	if view.Loading || view.ActivitiesLoading {
		data.Refresh = loadingRefresh
	}
	data.Data = homeData{
		Hero: s.homeHero(r.Context()),
		View: view,
	}
	s.render(w, r, http.StatusOK, "pages/home.html", data)
}

// homeHero reads the editable hero copy, falling back to the business tagline.
func (s *Server) homeHero(ctx context.Context) HeroView {
	hero := HeroView{
		Heading:  s.config.Business.Name,
		Subtext:  s.config.Business.Tagline,
		CTA:      "/destinations",
		CTALabel: "Explore destinations",
	}
	if s.repos == nil || s.repos.Settings == nil {
		return hero
	}

	fields := map[string]*string{
		repository.SettingHeroHeading: &hero.Heading,
		repository.SettingHeroSubtext: &hero.Subtext,
		repository.SettingHeroImage:   &hero.Image,
	}
	values, err := s.repos.Settings.Lookup(ctx,
		repository.SettingHeroHeading,
		repository.SettingHeroSubtext,
		repository.SettingHeroImage,
	)
	if err != nil {
		s.log.Error("failed to read hero settings", sl.Err(err))
		return hero
	}
	for key, dst := range fields {
		if v := values[key]; v != "" {
			*dst = v
		}
	}
	return hero
}

// handleDestinations renders the ads listing, optionally filtered by region
func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	ads, regions := s.catalog.Ads(), s.catalog.Regions()
	scope := s.mount(r, ads, regions)
	defer scope.Close()

	view := pages.Listing(ads.Snapshot(), regions.Snapshot(), regionParam(r))

	data := s.newPageData(r, "Destinations")
	data.Section = "destinations"
	if view.Loading {
		data.Refresh = loadingRefresh
	}
	data.Data = listingData[domain.Ad]{
		View:   view,
		Filter: RegionFilter{Base: "/destinations", Regions: view.Regions, Region: view.Region},
	}
	s.render(w, r, http.StatusOK, "pages/destinations.html", data)
}

// handleDestination renders one ad by slug
func (s *Server) handleDestination(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ads, regions := s.catalog.Ads(), s.catalog.Regions()
	scope := s.mount(r, ads, regions)
	defer scope.Close()

	detail := pages.Detail(ads.Snapshot(), slug)
	switch detail.Mode {
	case pages.ModeLoading:
		s.renderLoading(w, r, "Destinations")
		return
	case pages.ModeNotFound:
		s.renderNotFound(w, r, NotFoundView{
			Kind:      "destination",
			Slug:      slug,
			BackURL:   "/destinations",
			BackLabel: "all destinations",
		})
		return
	}

	ad := detail.Record
	data := s.newPageData(r, ad.Title())
	data.Section = "destinations"
	data.Description = string(ad.Subtext)
	data.LeadForm.Values.Message = "We're interested in " + ad.Name + "."
	data.Data = destinationData{
		Ad: ad,
		Hero: HeroView{
			Image:   string(ad.BannerImage),
			Heading: ad.Title(),
			Subtext: string(ad.Subtext),
		},
		RegionName: pages.RegionName(regions.Snapshot().Items, ad.RegionID),
	}
	s.render(w, r, http.StatusOK, "pages/destination.html", data)
}

// handleDestinationQR serves a PNG QR code linking to the destination page
func (s *Server) handleDestinationQR(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ads := s.catalog.Ads()
	scope := s.mount(r, ads)
	defer scope.Close()

	detail := pages.Detail(ads.Snapshot(), slug)
	switch detail.Mode {
	case pages.ModeLoading:
		w.Header().Set("Retry-After", "5")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	case pages.ModeNotFound:
		http.NotFound(w, r)
		return
	}

	link := strings.TrimRight(s.config.Business.PublicURL, "/") + "/destinations/" + detail.Record.Slug
	png, err := qrcode.Encode(link, qrcode.Medium, qrCodeSize)
	if err != nil {
		s.log.Error("failed to encode qr code", slog.String("slug", slug), sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", qrCodeCacheMaxAge)
	_, _ = w.Write(png)
}

// handleActivities renders the activities listing
func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	activities, regions := s.catalog.Activities(), s.catalog.Regions()
	scope := s.mount(r, activities, regions)
	defer scope.Close()

	view := pages.Listing(activities.Snapshot(), regions.Snapshot(), regionParam(r))

	data := s.newPageData(r, "Activities")
	data.Section = "activities"
	if view.Loading {
		data.Refresh = loadingRefresh
	}
	data.Data = listingData[domain.Activity]{
		View:   view,
		Filter: RegionFilter{Base: "/activities", Regions: view.Regions, Region: view.Region},
	}
	s.render(w, r, http.StatusOK, "pages/activities.html", data)
}

// handleActivity renders one activity by slug
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	activities, regions := s.catalog.Activities(), s.catalog.Regions()
	scope := s.mount(r, activities, regions)
	defer scope.Close()

	detail := pages.Detail(activities.Snapshot(), slug)
	switch detail.Mode {
	case pages.ModeLoading:
		s.renderLoading(w, r, "Activities")
		return
	case pages.ModeNotFound:
		s.renderNotFound(w, r, NotFoundView{
			Kind:      "activity",
			Slug:      slug,
			BackURL:   "/activities",
			BackLabel: "all activities",
		})
		return
	}

	act := detail.Record
	data := s.newPageData(r, act.Title())
	data.Section = "activities"
	data.Description = string(act.Subtext)
	data.LeadForm.Values.Message = "We'd like to add " + act.Name + " to our outing."
	data.Data = activityData{
		Activity: act,
		Hero: HeroView{
			Image:   string(act.Image),
			Heading: act.Title(),
			Subtext: string(act.Subtext),
		},
		RegionName: pages.RegionName(regions.Snapshot().Items, act.RegionID),
	}
	s.render(w, r, http.StatusOK, "pages/activity.html", data)
}

// regionParam parses ?region=; anything invalid means no filter.
func regionParam(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get("region"), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
