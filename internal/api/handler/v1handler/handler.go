// Package v1handler serves the registrar's JSON API: the table endpoints
// feeding the client side tables, the request wizard, domain management and
// the staff back office.
package v1handler

import (
	"net/http"
	"time"

	"registrar/internal/admin"
	"registrar/internal/domains"
	"registrar/internal/members"
	"registrar/internal/requests"
	"registrar/internal/users"
	"registrar/pkg/controller"
	"registrar/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// Deps are the services behind the handlers.
type Deps struct {
	Users    users.Users
	Domains  domains.Domains
	Requests requests.Requests
	Members  members.Members
	Admin    admin.Admin
	Recorder *metrics.Recorder
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	deps Deps
	sec  *SecHandler
}

func New(deps Deps, sec *SecHandler) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Handler{deps: deps, sec: sec}
}

// Register mounts all routes on r. Everything but the availability check
// requires an authenticated user.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/available/", h.Available)

	r.Group(func(r chi.Router) {
		r.Use(h.sec.Authenticate(h.deps.Users))

		r.Get("/get-domains-json/", h.DomainsJSON)
		r.Get("/get-domain-requests-json/", h.DomainRequestsJSON)
		r.Get("/get-portfolio-members-json/", h.MembersJSON)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/users/me", h.Me)

			r.Route("/domain-requests", func(r chi.Router) {
				r.Post("/", h.StartRequest)
				r.Get("/current", h.CurrentRequest)
				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", h.GetRequest)
					r.Delete("/", h.DeleteRequest)
					r.Get("/steps", h.RequestSteps)
					r.Put("/steps/{step}", h.SaveStep)
					r.Post("/submit", h.SubmitRequest)
					r.Post("/withdraw", h.WithdrawRequest)
				})
			})

			r.Route("/domains/{domainID}", func(r chi.Router) {
				r.Get("/", h.GetDomain)
				r.Put("/nameservers", h.SetNameservers)
				r.Put("/dnssec", h.SetDSData)
				r.Put("/security-email", h.SetSecurityEmail)
				r.Post("/managers", h.AddManager)
				r.Delete("/managers/{userID}", h.RemoveManager)
			})
			r.Delete("/invitations/{invitationID}", h.CancelInvitation)

			r.Get("/reports/{report}", h.Report)
			r.Route("/admin", h.registerAdmin)
		})
	})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	controller.WriteJSON(w, http.StatusOK, GetUserFromContext(r.Context()))
}
