package v1handler

import (
	"bytes"
	"net/http"
	"time"

	"registrar/internal/admin"
	"registrar/pkg/controller"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/go-chi/chi/v5"
)

// listResponse is the envelope of the admin list endpoints.
type listResponse[T any] struct {
	Items []T `json:"items"`
	tablePage
}

func newListResponse[T any](page storage.Page[T]) listResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}

	return listResponse[T]{Items: items, tablePage: newTablePage(page.Page, page.UnfilteredTotal)}
}

type userStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

type transitionRequest struct {
	Transition domain.Transition `json:"transition"`
	Reason     string            `json:"reason"`
}

type expirationRequest struct {
	// ExpirationDate is formatted as 2006-01-02.
	ExpirationDate string `json:"expirationDate"`
}

func (h *Handler) registerAdmin(r chi.Router) {
	r.Get("/users", h.AdminUsers)
	r.Put("/users/{userID}/status", h.AdminSetUserStatus)

	r.Get("/contacts", h.AdminContacts)
	r.Post("/contacts", h.AdminCreateContact)
	r.Put("/contacts/{contactID}", h.AdminUpdateContact)
	r.Delete("/contacts/{contactID}", h.AdminDeleteContact)

	r.Get("/portfolios", h.AdminPortfolios)
	r.Post("/portfolios", h.AdminCreatePortfolio)
	r.Route("/portfolios/{portfolioID}", func(r chi.Router) {
		r.Put("/", h.AdminUpdatePortfolio)
		r.Get("/suborganizations", h.AdminSuborganizations)
		r.Post("/suborganizations", h.AdminCreateSuborganization)
		r.Put("/permissions", h.AdminGrantPermission)
		r.Post("/invitations", h.AdminInviteMember)
	})

	r.Get("/domain-requests", h.AdminDomainRequests)
	r.Get("/domain-requests/{requestID}", h.GetRequest)
	r.Post("/domain-requests/{requestID}/transitions", h.AdminTransition)

	r.Get("/domains", h.AdminDomains)
	r.Route("/domains/{domainID}", func(r chi.Router) {
		r.Get("/", h.GetDomain)
		r.Delete("/", h.AdminDeleteDomain)
		r.Post("/hold", h.AdminPlaceHold)
		r.Delete("/hold", h.AdminRemoveHold)
		r.Put("/expiration", h.AdminSetExpiration)
	})
}

func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		page, err := h.deps.Admin.Users(r.Context(), GetUserFromContext(r.Context()), listQuery(r))
		if err != nil {
			return nil, err
		}

		return newListResponse(page), nil
	})
}

func (h *Handler) AdminSetUserStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := pathUUID(r, "userID")
		if err != nil {
			return nil, err
		}
		var body userStatusRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Admin.SetUserStatus(r.Context(), GetUserFromContext(r.Context()), domain.UserID(id), body.Status)
	})
}

func (h *Handler) AdminContacts(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		page, err := h.deps.Admin.Contacts(r.Context(), GetUserFromContext(r.Context()), listQuery(r))
		if err != nil {
			return nil, err
		}

		return newListResponse(page), nil
	})
}

func (h *Handler) AdminCreateContact(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusCreated, func() (any, error) {
		var body domain.Contact
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Admin.CreateContact(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminUpdateContact(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := pathUUID(r, "contactID")
		if err != nil {
			return nil, err
		}
		var body domain.Contact
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		body.ID = domain.ContactID(id)

		return h.deps.Admin.UpdateContact(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminDeleteContact(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := pathUUID(r, "contactID")
		if err != nil {
			return nil, err
		}

		return nil, h.deps.Admin.DeleteContact(r.Context(), GetUserFromContext(r.Context()), domain.ContactID(id))
	})
}

func (h *Handler) AdminPortfolios(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		page, err := h.deps.Admin.Portfolios(r.Context(), GetUserFromContext(r.Context()), listQuery(r))
		if err != nil {
			return nil, err
		}

		return newListResponse(page), nil
	})
}

func (h *Handler) AdminCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusCreated, func() (any, error) {
		var body domain.Portfolio
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Admin.CreatePortfolio(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func portfolioID(r *http.Request) (domain.PortfolioID, error) {
	id, err := pathUUID(r, "portfolioID")

	return domain.PortfolioID(id), err
}

func (h *Handler) AdminUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := portfolioID(r)
		if err != nil {
			return nil, err
		}
		var body domain.Portfolio
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		body.ID = id

		return h.deps.Admin.UpdatePortfolio(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminSuborganizations(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := portfolioID(r)
		if err != nil {
			return nil, err
		}

		return h.deps.Admin.Suborganizations(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) AdminCreateSuborganization(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusCreated, func() (any, error) {
		id, err := portfolioID(r)
		if err != nil {
			return nil, err
		}
		var body domain.Suborganization
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		body.PortfolioID = id

		return h.deps.Admin.CreateSuborganization(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminGrantPermission(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := portfolioID(r)
		if err != nil {
			return nil, err
		}
		var body domain.UserPortfolioPermission
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		body.PortfolioID = id

		return nil, h.deps.Admin.GrantPortfolioPermission(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminInviteMember(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusCreated, func() (any, error) {
		id, err := portfolioID(r)
		if err != nil {
			return nil, err
		}
		var body domain.PortfolioInvitation
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		body.PortfolioID = id

		return h.deps.Admin.InvitePortfolioMember(r.Context(), GetUserFromContext(r.Context()), body)
	})
}

func (h *Handler) AdminDomainRequests(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		portfolio, err := portfolioParam(r)
		if err != nil {
			return nil, err
		}
		query := storage.DomainRequestQuery{
			ListQuery: listQuery(r, string(storage.DomainRequestSortID), string(storage.DomainRequestSortRequestedDomain),
				string(storage.DomainRequestSortLastSubmittedDate), string(storage.DomainRequestSortStatus),
				string(storage.DomainRequestSortCreatedAt)),
			PortfolioID: portfolio,
		}
		for _, s := range statuses(r) {
			query.Statuses = append(query.Statuses, domain.DomainRequestStatus(s))
		}
		page, err := h.deps.Admin.DomainRequests(r.Context(), GetUserFromContext(r.Context()), query)
		if err != nil {
			return nil, err
		}

		return newListResponse(page), nil
	})
}

func (h *Handler) AdminTransition(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		var body transitionRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Requests.Transition(r.Context(), GetUserFromContext(r.Context()), id, body.Transition, body.Reason)
	})
}

func (h *Handler) AdminDomains(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, func() (any, error) {
		portfolio, err := portfolioParam(r)
		if err != nil {
			return nil, err
		}
		page, err := h.deps.Admin.Domains(r.Context(), GetUserFromContext(r.Context()), storage.DomainQuery{
			ListQuery: listQuery(r, string(storage.DomainSortID), string(storage.DomainSortName),
				string(storage.DomainSortExpirationDate), string(storage.DomainSortStateDisplay)),
			PortfolioID: portfolio,
			Statuses:    statuses(r),
			Today:       h.deps.Now(),
		})
		if err != nil {
			return nil, err
		}

		return newListResponse(page), nil
	})
}

func (h *Handler) AdminPlaceHold(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		return h.deps.Domains.PlaceHold(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) AdminRemoveHold(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		return h.deps.Domains.RemoveHold(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) AdminDeleteDomain(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		return h.deps.Domains.Delete(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) AdminSetExpiration(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		var body expirationRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		date, err := time.Parse(dateLayout, body.ExpirationDate)
		if err != nil {
			return nil, serrors.Invalid(serrors.FieldErrors{"expirationDate": {"Enter a date like 2025-01-31."}},
				"invalid expiration date")
		}

		return h.deps.Domains.SetExpiration(r.Context(), GetUserFromContext(r.Context()), id, date)
	})
}

// Report streams one of the CSV reports. The report is rendered in full
// first so failures still produce a JSON error.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report := admin.Report(chi.URLParam(r, "report"))

	var buf bytes.Buffer
	if err := h.deps.Admin.WriteReport(ctx, GetUserFromContext(ctx), report, &buf); err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(report)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
