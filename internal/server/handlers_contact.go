package server

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"offsite/internal/domain"
	"offsite/internal/lib/sl"
	"offsite/internal/repository"

	"github.com/go-playground/validator/v10"
)

type contactData struct {
	Reference string
	Name      string
}

// jsonFieldName makes validator report fields by their form/json name.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// handleContactPage renders the stand-alone lead form, or the thank-you note
// when ref names a stored lead.
func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Plan an outing")
	data.LeadForm.ReturnTo = "/contact"
	data.Data = contactData{}

	if ref := strings.TrimSpace(r.URL.Query().Get("ref")); ref != "" {
		lead, err := s.repos.Leads.GetByReference(r.Context(), ref)
		switch {
		case err == nil:
			data.Data = contactData{Reference: lead.Reference, Name: lead.Name}
		case errors.Is(err, repository.ErrNotFound):
			s.log.Info("unknown lead reference", slog.String("reference", ref))
		default:
			s.log.Error("failed to look up lead", slog.String("reference", ref), sl.Err(err))
		}
	}

	s.render(w, r, http.StatusOK, "pages/contact.html", data)
}

// handleContactSubmit validates and stores a lead
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleContactSubmit"

	log := s.log.With(
		slog.String("op", op),
		slog.String("remote_addr", r.RemoteAddr),
	)

	if !s.leadLimit.Allow(clientIP(r)) {
		log.Warn("lead submission rate limited")
		data := s.newPageData(r, "Plan an outing")
		data.Flash = &FlashMessage{Type: "error", Message: "Too many enquiries from your network. Please try again in a minute."}
		data.LeadForm.ReturnTo = "/contact"
		data.Data = contactData{}
		w.Header().Set("Retry-After", "60")
		s.render(w, r, http.StatusTooManyRequests, "pages/contact.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	lead, fieldErrs := s.leadFromForm(r)
	if len(fieldErrs) > 0 {
		log.Info("lead form invalid", slog.Int("errors", len(fieldErrs)))
		data := s.newPageData(r, "Plan an outing")
		data.LeadForm = LeadForm{
			ReturnTo:    safeReturnPath(r.PostFormValue("return_to")),
			Values:      lead,
			RawTeamSize: strings.TrimSpace(r.PostFormValue("team_size")),
			Errors:      fieldErrs,
		}
		data.Data = contactData{}
		s.render(w, r, http.StatusUnprocessableEntity, "pages/contact.html", data)
		return
	}

	if err := s.repos.Leads.Create(r.Context(), &lead); err != nil {
		log.Error("failed to store lead", sl.Err(err))
		data := s.newPageData(r, "Plan an outing")
		data.Flash = &FlashMessage{Type: "error", Message: "We couldn't save your enquiry. Please try again."}
		data.LeadForm = LeadForm{
			ReturnTo:    lead.SourcePath,
			Values:      lead,
			RawTeamSize: strings.TrimSpace(r.PostFormValue("team_size")),
			Errors:      map[string]string{},
		}
		data.Data = contactData{}
		s.render(w, r, http.StatusInternalServerError, "pages/contact.html", data)
		return
	}

	log.Info("lead stored", slog.String("reference", lead.Reference), slog.String("source", lead.SourcePath))

	if s.notifier != nil {
		if err := s.notifier.LeadReceived(r.Context(), lead); err != nil {
			log.Error("failed to notify about lead", slog.String("reference", lead.Reference), sl.Err(err))
		}
	}

	http.Redirect(w, r, "/contact?ref="+url.QueryEscape(lead.Reference), http.StatusSeeOther)
}

// leadFromForm binds and validates the posted form. Field errors are keyed
// by form field name.
func (s *Server) leadFromForm(r *http.Request) (domain.Lead, map[string]string) {
	errs := map[string]string{}

	lead := domain.Lead{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
		Company:    strings.TrimSpace(r.PostFormValue("company")),
		Message:    strings.TrimSpace(r.PostFormValue("message")),
		SourcePath: safeReturnPath(r.PostFormValue("return_to")),
	}

	if raw := strings.TrimSpace(r.PostFormValue("team_size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["team_size"] = "Enter a number"
		} else {
			lead.TeamSize = n
		}
	}

	if err := s.validate.Struct(lead); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["form"] = "Invalid submission"
			return lead, errs
		}
		for _, fe := range verrs {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs[fe.Field()] = fieldMessage(fe)
		}
	}

	return lead, errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return "Too long (max " + fe.Param() + ")"
	case "min":
		return "Must be at least " + fe.Param()
	}
	return "Invalid value"
}

// safeReturnPath keeps only same-site absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/contact"
	}
	u, err := url.Parse(p)
	if err != nil {
		return "/contact"
	}
	return u.Path
}
