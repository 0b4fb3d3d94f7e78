package server

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"offsite/internal/config"
	"offsite/internal/domain"
	"offsite/internal/lib/sl"
	"offsite/internal/modal"
	"offsite/internal/templates"
)

// loadingRefresh is the meta refresh, in seconds, of pages rendered before
// their content settled.
const loadingRefresh = 3

// PageData holds common data for all page templates
type PageData struct {
	Title         string
	Description   string
	Section       string
	Refresh       int
	Business      config.Business
	Year          int
	Path          string
	Modal         *modal.Controller
	OpenModalURL  string
	CloseModalURL string
	Flash         *FlashMessage
	LeadForm      LeadForm
	Admin         *Claims
	Data          interface{}
}

// FlashMessage represents a flash message
type FlashMessage struct {
	Type    string // success, error
	Message string
}

// LeadForm is the state of the lead form: submitted values and field errors.
// RawTeamSize keeps team_size as typed, since it may not parse.
type LeadForm struct {
	ReturnTo    string
	Values      domain.Lead
	RawTeamSize string
	Errors      map[string]string
}

// HeroView feeds the hero partial.
type HeroView struct {
	Image    string
	Heading  string
	Subtext  string
	CTA      string
	CTALabel string
}

// RegionFilter feeds the region-filter partial.
type RegionFilter struct {
	Base    string
	Regions []domain.Region
	Region  *domain.Region
}

// NotFoundView feeds the not-found partial.
type NotFoundView struct {
	Kind      string
	Slug      string
	BackURL   string
	BackLabel string
}

// TemplateFuncs binds the image helpers to the configured placeholder.
func TemplateFuncs(cfg *config.Config) template.FuncMap {
	placeholder := cfg.Assets.PlaceholderImage
	return template.FuncMap{
		"img":         func(src any) string { return templates.ImageOr(src, placeholder) },
		"placeholder": func() string { return placeholder },
	}
}

// newPageData creates a new PageData with common fields
func (s *Server) newPageData(r *http.Request, title string) *PageData {
	ctrl := modal.MustFrom(r.Context())

	return &PageData{
		Title:         title,
		Business:      s.config.Business,
		Year:          time.Now().Year(),
		Path:          r.URL.Path,
		Modal:         ctrl,
		OpenModalURL:  modal.OpenURL(r.URL),
		CloseModalURL: modal.CloseURL(r.URL),
		LeadForm: LeadForm{
			ReturnTo: modal.CloseURL(r.URL),
			Errors:   map[string]string{},
		},
		Admin: getAdminClaims(r),
	}
}

// render renders a page template into a buffer first so a template error
// never leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, template string, data *PageData) {
	var buf bytes.Buffer
	if err := s.templates.Render(&buf, template, data); err != nil {
		s.log.Error("failed to render page",
			slog.String("template", template),
			slog.String("path", r.URL.Path),
			sl.Err(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Refresh > 0 {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderLoading renders the blocking spinner view that reloads itself.
func (s *Server) renderLoading(w http.ResponseWriter, r *http.Request, title string) {
	data := s.newPageData(r, title)
	data.Refresh = loadingRefresh
	s.render(w, r, http.StatusOK, "pages/loading.html", data)
}

// renderNotFound renders the 404 view with a link back to a listing.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, view NotFoundView) {
	data := s.newPageData(r, "Not found")
	data.Data = view
	s.render(w, r, http.StatusNotFound, "pages/not_found.html", data)
}
