package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	// Static files with cache headers
	r.Handle("/static/*", s.staticHandler())

	// Health check endpoint
	r.Get("/health", s.handleHealth)

	// Public pages
	r.Group(func(r chi.Router) {
		r.Get("/", s.handleHome)

		r.Get("/destinations", s.handleDestinations)
		r.Get("/destinations/{slug}", s.handleDestination)
		r.Get("/destinations/{slug}/qr.png", s.handleDestinationQR)

		r.Get("/activities", s.handleActivities)
		r.Get("/activities/{slug}", s.handleActivity)

		r.Get("/contact", s.handleContactPage)
		r.Post("/contact", s.handleContactSubmit)
	})

	// Lead inbox
	if s.config.AdminEnabled() {
		r.Get("/admin/login", s.handleLoginPage)
		r.Post("/admin/login", s.handleLogin)
		r.Post("/admin/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.adminAuth)
			r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
			})
			r.Get("/admin/leads", s.handleLeadsList)
		})
	}

	// Content snapshots as JSON
	r.Route("/api", func(r chi.Router) {
		r.Get("/ads", apiSnapshot(s, s.catalog.Ads))
		r.Get("/regions", apiSnapshot(s, s.catalog.Regions))
		r.Get("/activities", apiSnapshot(s, s.catalog.Activities))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderNotFound(w, r, NotFoundView{
			Kind:      "page",
			Slug:      r.URL.Path,
			BackURL:   "/",
			BackLabel: "the home page",
		})
	})
}

// staticHandler serves embedded static files with caching
func (s *Server) staticHandler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(s.static)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set cache headers for static assets (1 week in production)
		if !s.config.Debug {
			w.Header().Set("Cache-Control", "public, max-age=604800")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		files.ServeHTTP(w, r)
	})
}
