package v1handler

import (
	"net/http"

	"registrar/internal/domains"
	"registrar/pkg/controller"
	"registrar/pkg/domain"
)

type domainDetailResponse struct {
	Domain       domain.Domain             `json:"domain"`
	StateDisplay string                    `json:"stateDisplay"`
	Information  *domain.DomainInformation `json:"information"`
	Managers     []domain.User             `json:"managers"`
	Invitations  []domain.DomainInvitation `json:"invitations"`
	CanManage    bool                      `json:"canManage"`
}

type nameserversRequest struct {
	Nameservers []domain.Nameserver `json:"nameservers"`
}

type dsDataRequest struct {
	DSData []domain.DSData `json:"dsData"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type addManagerResponse struct {
	User       *domain.User             `json:"user,omitempty"`
	Invitation *domain.DomainInvitation `json:"invitation,omitempty"`
}

func domainID(r *http.Request) (domain.DomainID, error) {
	id, err := pathUUID(r, "domainID")

	return domain.DomainID(id), err
}

// withDomain parses the domain ID and runs fn.
func (h *Handler) withDomain(w http.ResponseWriter, r *http.Request, status int,
	fn func(id domain.DomainID) (any, error)) {
	respond(w, r, status, func() (any, error) {
		id, err := domainID(r)
		if err != nil {
			return nil, err
		}

		return fn(id)
	})
}

func (h *Handler) GetDomain(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		d, err := h.deps.Domains.Detail(r.Context(), GetUserFromContext(r.Context()), id)
		if err != nil {
			return nil, err
		}

		return newDomainDetailResponse(d, h), nil
	})
}

func newDomainDetailResponse(d *domains.Detail, h *Handler) domainDetailResponse {
	return domainDetailResponse{
		Domain:       d.Domain,
		StateDisplay: d.Domain.StateDisplay(h.deps.Now()),
		Information:  d.Information,
		Managers:     d.Managers,
		Invitations:  d.Invitations,
		CanManage:    d.CanManage,
	}
}

func (h *Handler) SetNameservers(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		var body nameserversRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Domains.SetNameservers(r.Context(), GetUserFromContext(r.Context()), id, body.Nameservers)
	})
}

func (h *Handler) SetDSData(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		var body dsDataRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Domains.SetDSData(r.Context(), GetUserFromContext(r.Context()), id, body.DSData)
	})
}

func (h *Handler) SetSecurityEmail(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		var body emailRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}

		return h.deps.Domains.SetSecurityEmail(r.Context(), GetUserFromContext(r.Context()), id, body.Email)
	})
}

// AddManager grants the role to an existing user or invites the email.
func (h *Handler) AddManager(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusCreated, func(id domain.DomainID) (any, error) {
		var body emailRequest
		if err := controller.DecodeJSON(r, &body); err != nil {
			return nil, err
		}
		res, err := h.deps.Domains.AddManager(r.Context(), GetUserFromContext(r.Context()), id, body.Email)
		if err != nil {
			return nil, err
		}

		return addManagerResponse{User: res.User, Invitation: res.Invitation}, nil
	})
}

func (h *Handler) RemoveManager(w http.ResponseWriter, r *http.Request) {
	h.withDomain(w, r, http.StatusOK, func(id domain.DomainID) (any, error) {
		userID, err := pathUUID(r, "userID")
		if err != nil {
			return nil, err
		}

		return nil, h.deps.Domains.RemoveManager(r.Context(), GetUserFromContext(r.Context()), id, domain.UserID(userID))
	})
}

func (h *Handler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathUUID(r, "invitationID")
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	if err := h.deps.Domains.CancelInvitation(ctx, GetUserFromContext(ctx), domain.InvitationID(id)); err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	w.WriteHeader(http.StatusNoContent)
}
