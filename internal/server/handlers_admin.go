package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"offsite/internal/domain"
	"offsite/internal/lib/sl"

	"golang.org/x/crypto/bcrypt"
)

const leadsPerPage = 25

type loginData struct {
	Email string
}

type leadsData struct {
	Leads    []domain.Lead
	Total    int
	Page     int
	PrevPage int
	NextPage int
}

// handleLoginPage renders the lead inbox login
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Sign in")
	data.Data = loginData{}
	s.render(w, r, http.StatusOK, "pages/admin/login.html", data)
}

// handleLogin checks the configured admin credentials
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if !s.checkAdmin(email, password) {
		s.log.Info("failed admin login", slog.String("remote_addr", r.RemoteAddr))
		data := s.newPageData(r, "Sign in")
		data.Flash = &FlashMessage{Type: "error", Message: "Invalid credentials"}
		data.Data = loginData{Email: email}
		s.render(w, r, http.StatusUnauthorized, "pages/admin/login.html", data)
		return
	}

	token, err := s.generateToken(s.config.Admin.Email)
	if err != nil {
		s.log.Error("failed to generate token", sl.Err(err))
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	s.setAuthCookie(w, token, s.config.Admin.ExpirationHours*3600)
	http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
}

// handleLogout clears the session cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLeadsList renders the lead inbox, newest first
func (s *Server) handleLeadsList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total, err := s.repos.Leads.Count(ctx)
	if err != nil {
		s.log.Error("failed to count leads", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	leads, err := s.repos.Leads.List(ctx, leadsPerPage, (page-1)*leadsPerPage)
	if err != nil {
		s.log.Error("failed to list leads", sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := leadsData{Leads: leads, Total: total, Page: page}
	if page > 1 {
		view.PrevPage = page - 1
	}
	if page*leadsPerPage < total {
		view.NextPage = page + 1
	}

	data := s.newPageData(r, "Leads")
	data.Data = view
	s.render(w, r, http.StatusOK, "pages/admin/leads.html", data)
}

// checkAdmin compares against the single configured inbox account
func (s *Server) checkAdmin(email, password string) bool {
	want := s.config.Admin.Email
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(want))) == 1
	// bcrypt runs even when the email differs
	passOK := bcrypt.CompareHashAndPassword([]byte(s.config.Admin.PasswordHash), []byte(password)) == nil
	return emailOK && passOK
}
