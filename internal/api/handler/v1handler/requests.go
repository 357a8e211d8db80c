package v1handler

import (
	"net/http"

	"registrar/internal/wizard"
	"registrar/pkg/controller"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"

	"github.com/go-chi/chi/v5"
)

type availableResponse struct {
	Available bool   `json:"available"`
	Domain    string `json:"domain,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
}

// Available checks whether a .gov name can still be requested.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := h.deps.Domains.Available(ctx, r.URL.Query().Get("domain"))
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	controller.WriteJSON(w, http.StatusOK, availableResponse{
		Available: a.Available,
		Domain:    a.Domain,
		Code:      a.Code,
		Message:   a.Message,
	})
}

type startRequest struct {
	PortfolioID *string `json:"portfolioId"`
}

// StartRequest creates a request and makes it the current wizard session.
func (h *Handler) StartRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body startRequest
	if r.ContentLength != 0 {
		if err := controller.DecodeJSON(r, &body); err != nil {
			controller.WriteError(ctx, w, err)

			return
		}
	}
	var portfolio domain.PortfolioID
	if body.PortfolioID != nil && *body.PortfolioID != "" {
		id, err := parseUUID(*body.PortfolioID, "portfolio")
		if err != nil {
			controller.WriteError(ctx, w, err)

			return
		}
		portfolio = domain.PortfolioID(id)
	}

	req, err := h.deps.Requests.Start(ctx, GetUserFromContext(ctx), portfolio)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	controller.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) CurrentRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := h.deps.Requests.Current(ctx, GetUserFromContext(ctx))
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	controller.WriteJSON(w, http.StatusOK, req)
}

func requestID(r *http.Request) (domain.DomainRequestID, error) {
	id, err := pathUUID(r, "requestID")

	return domain.DomainRequestID(id), err
}

// withRequest parses the request ID and runs fn.
func (h *Handler) withRequest(w http.ResponseWriter, r *http.Request,
	fn func(id domain.DomainRequestID) (any, error)) {
	respond(w, r, http.StatusOK, func() (any, error) {
		id, err := requestID(r)
		if err != nil {
			return nil, err
		}

		return fn(id)
	})
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		return h.deps.Requests.Get(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) RequestSteps(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		return h.deps.Requests.Steps(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

// SaveStep stores the fields of one wizard step. The body is a partial
// domain request; fields other steps own are ignored.
func (h *Handler) SaveStep(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		step, ok := wizard.ParseStep(chi.URLParam(r, "step"))
		if !ok {
			return nil, serrors.With(serrors.ErrNotFound, "unknown step %q", chi.URLParam(r, "step"))
		}
		var values domain.DomainRequest
		if err := controller.DecodeJSON(r, &values); err != nil {
			return nil, err
		}

		return h.deps.Requests.SaveStep(r.Context(), GetUserFromContext(r.Context()), id, step, values)
	})
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		return h.deps.Requests.Submit(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) WithdrawRequest(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		return h.deps.Requests.Withdraw(r.Context(), GetUserFromContext(r.Context()), id)
	})
}

func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	h.withRequest(w, r, func(id domain.DomainRequestID) (any, error) {
		return nil, h.deps.Requests.Delete(r.Context(), GetUserFromContext(r.Context()), id)
	})
}
