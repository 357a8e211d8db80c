// Package webhandler renders the registrar's HTML pages: the home page with
// the user's domains and requests, the request wizard and the domain page.
// Pages authenticate with the session cookie carrying the API token.
package webhandler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"registrar/internal/api/handler/v1handler"
	"registrar/internal/domains"
	"registrar/internal/requests"
	"registrar/internal/wizard"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{"home", "step", "domain", "error"} //nolint: gochecknoglobals

// Deps are the services behind the pages.
type Deps struct {
	Domains  domains.Domains
	Requests requests.Requests
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	deps  Deps
	pages map[string]*template.Template
}

func New(deps Deps) (*Handler, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}

			return t.Format("Jan 2, 2006")
		},
		"fieldErrors":  func(errs serrors.FieldErrors, field string) []string { return errs[field] },
		"indexed":      func(prefix string, i int) string { return fmt.Sprintf("%s.%d", prefix, i) },
		"isTrue":       func(b *bool) bool { return b != nil && *b },
		"isFalse":      func(b *bool) bool { return b != nil && !*b },
		"contactField": newContactField,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("could not parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{deps: deps, pages: pages}, nil
}

// Register mounts the pages on r behind authenticate.
func (h *Handler) Register(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.Home)
		r.Post("/request/", h.StartRequest)
		r.Get("/request/", h.ResumeRequest)
		r.Get("/request/{step}", h.ShowStep)
		r.Post("/request/{step}", h.SaveStep)
		r.Get("/domain-request/{requestID}/edit", h.EditRequest)
		r.Get("/domain/{domainID}", h.Domain)
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error(r.Context(), "could not render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorData struct {
	Status  int
	Title   string
	Message string
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := serrors.StatusCode(err)
	data := errorData{Status: status, Title: http.StatusText(status), Message: http.StatusText(status)}

	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" && status < http.StatusInternalServerError {
		data.Message = se.Message()
	}
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "page failed", zap.Error(err))
	}
	h.render(w, r, status, "error", data)
}

// contactField feeds the contact inputs sharing a name prefix.
type contactField struct {
	Prefix  string
	Contact domain.Contact
	Errors  serrors.FieldErrors
}

func newContactField(prefix string, c any, errs serrors.FieldErrors) contactField {
	f := contactField{Prefix: prefix, Errors: errs}
	switch c := c.(type) {
	case domain.Contact:
		f.Contact = c
	case *domain.Contact:
		if c != nil {
			f.Contact = *c
		}
	}

	return f
}

type domainRow struct {
	ID           string
	Name         string
	Expiration   time.Time
	StateDisplay string
	HelpText     string
}

type homeData struct {
	User     domain.User
	Domains  []domainRow
	Requests []storage.DomainRequestRow
}

// Home lists the first page of the viewer's domains and domain requests.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := v1handler.GetUserFromContext(ctx)

	domainPage, err := h.deps.Domains.Table(ctx, viewer, domains.TableQuery{
		ListQuery: storage.ListQuery{Page: 1, SortBy: string(storage.DomainSortName)},
	})
	if err != nil {
		h.renderError(w, r, err)

		return
	}
	requestPage, err := h.deps.Requests.Table(ctx, viewer, requests.TableQuery{
		ListQuery: storage.ListQuery{Page: 1, SortBy: string(storage.DomainRequestSortLastSubmittedDate), Desc: true},
	})
	if err != nil {
		h.renderError(w, r, err)

		return
	}

	now := h.deps.Now()
	data := homeData{User: viewer, Requests: requestPage.Items}
	for _, row := range domainPage.Items {
		data.Domains = append(data.Domains, domainRow{
			ID:           row.ID.String(),
			Name:         row.Name,
			Expiration:   row.ExpirationDate,
			StateDisplay: row.StateDisplay(now),
			HelpText:     row.StateHelpText(now),
		})
	}
	h.render(w, r, http.StatusOK, "home", data)
}

func stepURL(step wizard.Step) string { return "/request/" + string(step) }

// StartRequest creates a request and opens its first step.
func (h *Handler) StartRequest(w http.ResponseWriter, r *http.Request) {
	if _, err := h.deps.Requests.Start(r.Context(), v1handler.GetUserFromContext(r.Context()),
		domain.PortfolioID{}); err != nil {
		h.renderError(w, r, err)

		return
	}
	http.Redirect(w, r, stepURL(wizard.Steps[0]), http.StatusSeeOther)
}

// ResumeRequest opens the first incomplete step of the current request.
func (h *Handler) ResumeRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := v1handler.GetUserFromContext(ctx)
	current, err := h.deps.Requests.Current(ctx, viewer)
	if err != nil {
		h.renderError(w, r, err)

		return
	}
	steps, err := h.deps.Requests.Steps(ctx, viewer, current.ID)
	if err != nil {
		h.renderError(w, r, err)

		return
	}
	for _, s := range steps {
		if s.Visible && !s.Complete && s.Step != wizard.StepReview {
			http.Redirect(w, r, stepURL(s.Step), http.StatusSeeOther)

			return
		}
	}
	http.Redirect(w, r, stepURL(wizard.StepReview), http.StatusSeeOther)
}

type stepData struct {
	Request   domain.DomainRequest
	Step      wizard.Step
	Steps     []requests.StepState
	Errors    serrors.FieldErrors
	Message   string
	OrgTypes  []domain.OrganizationType
	Federal   []domain.FederalType
	States    map[string]string
	NextLabel string
}

func (h *Handler) step(w http.ResponseWriter, r *http.Request) (wizard.Step, *domain.DomainRequest, bool) {
	step, ok := wizard.ParseStep(chi.URLParam(r, "step"))
	if !ok {
		h.renderError(w, r, serrors.With(serrors.ErrNotFound, "unknown step %q", chi.URLParam(r, "step")))

		return "", nil, false
	}
	current, err := h.deps.Requests.Current(r.Context(), v1handler.GetUserFromContext(r.Context()))
	if err != nil {
		h.renderError(w, r, err)

		return "", nil, false
	}

	return step, current, true
}

func (h *Handler) renderStep(w http.ResponseWriter, r *http.Request, status int, step wizard.Step,
	req domain.DomainRequest, errs serrors.FieldErrors, message string) {
	steps, err := h.deps.Requests.Steps(r.Context(), v1handler.GetUserFromContext(r.Context()), req.ID)
	if err != nil {
		h.renderError(w, r, err)

		return
	}
	label := "Save and continue"
	if step == wizard.StepReview {
		label = "Submit your domain request"
	}
	h.render(w, r, status, "step", stepData{
		Request:   req,
		Step:      step,
		Steps:     steps,
		Errors:    errs,
		Message:   message,
		OrgTypes:  domain.OrganizationTypes,
		Federal:   []domain.FederalType{domain.FederalTypeExecutive, domain.FederalTypeJudicial, domain.FederalTypeLegislative},
		States:    domain.StatesAndTerritories,
		NextLabel: label,
	})
}

// ShowStep renders one wizard step of the current request.
func (h *Handler) ShowStep(w http.ResponseWriter, r *http.Request) {
	step, current, ok := h.step(w, r)
	if !ok {
		return
	}
	h.renderStep(w, r, http.StatusOK, step, *current, nil, "")
}

// SaveStep stores the submitted step and moves on to the next visible one.
// Invalid input re-renders the step with the messages next to the fields.
// Posting the review step submits the request.
func (h *Handler) SaveStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := v1handler.GetUserFromContext(ctx)
	step, current, ok := h.step(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form"))

		return
	}

	if step == wizard.StepReview {
		if _, err := h.deps.Requests.Submit(ctx, viewer, current.ID); err != nil {
			if fields := serrors.FieldsOf(err); !fields.Empty() {
				h.renderStep(w, r, http.StatusBadRequest, step, *current, fields, "Your request is missing information.")

				return
			}
			h.renderError(w, r, err)

			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	values := decodeStep(step, r.PostForm)
	saved, err := h.deps.Requests.SaveStep(ctx, viewer, current.ID, step, values)
	if err != nil {
		fields := serrors.FieldsOf(err)
		if fields.Empty() {
			h.renderError(w, r, err)

			return
		}
		shown := *current
		wizard.Apply(step, &shown, values)
		var se *serrors.Error
		msg := ""
		if errors.As(err, &se) {
			msg = se.Message()
		}
		h.renderStep(w, r, http.StatusBadRequest, step, shown, fields, msg)

		return
	}

	next := wizard.Next(*saved, step)
	if next == "" {
		next = wizard.StepReview
	}
	http.Redirect(w, r, stepURL(next), http.StatusSeeOther)
}

// EditRequest makes the request current and opens the wizard on it.
func (h *Handler) EditRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		h.renderError(w, r, serrors.With(serrors.ErrNotFound, "domain request not found"))

		return
	}
	if _, err := h.deps.Requests.Edit(r.Context(), v1handler.GetUserFromContext(r.Context()),
		domain.DomainRequestID(id)); err != nil {
		h.renderError(w, r, err)

		return
	}
	http.Redirect(w, r, stepURL(wizard.Steps[0]), http.StatusSeeOther)
}

type domainData struct {
	*domains.Detail
	StateDisplay string
	HelpText     string
}

// Domain renders the domain overview.
func (h *Handler) Domain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "domainID"))
	if err != nil {
		h.renderError(w, r, serrors.With(serrors.ErrNotFound, "domain not found"))

		return
	}
	detail, err := h.deps.Domains.Detail(r.Context(), v1handler.GetUserFromContext(r.Context()), domain.DomainID(id))
	if err != nil {
		h.renderError(w, r, err)

		return
	}
	now := h.deps.Now()
	h.render(w, r, http.StatusOK, "domain", domainData{
		Detail:       detail,
		StateDisplay: detail.Domain.StateDisplay(now),
		HelpText:     detail.Domain.StateHelpText(now),
	})
}
