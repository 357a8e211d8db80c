package v1handler

import (
	"net/http"
	"time"

	"registrar/internal/domains"
	"registrar/internal/members"
	"registrar/internal/requests"
	"registrar/pkg/controller"
	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"
)

const dateLayout = "2006-01-02"

// tablePage is the pagination envelope every table response carries.
type tablePage struct {
	Page            int  `json:"page"`
	NumPages        int  `json:"num_pages"`
	HasNext         bool `json:"has_next"`
	HasPrevious     bool `json:"has_previous"`
	Total           int  `json:"total"`
	UnfilteredTotal int  `json:"unfiltered_total"`
}

func newTablePage(p pagination.Page, unfiltered int) tablePage {
	return tablePage{
		Page:            p.Number,
		NumPages:        p.NumPages,
		HasNext:         p.HasNext(),
		HasPrevious:     p.HasPrevious(),
		Total:           p.Total,
		UnfilteredTotal: unfiltered,
	}
}

func optionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)

	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

type domainItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ExpirationDate  *string `json:"expiration_date"`
	State           string  `json:"state"`
	StateDisplay    string  `json:"state_display"`
	StateHelpText   string  `json:"get_state_help_text"`
	ActionURL       string  `json:"action_url"`
	ActionLabel     string  `json:"action_label"`
	SvgIcon         string  `json:"svg_icon"`
	SubOrganization *string `json:"domain_info__sub_organization"`
}

type domainsResponse struct {
	Domains []domainItem `json:"domains"`
	tablePage
}

func newDomainItem(row storage.DomainRow, now time.Time) domainItem {
	label, icon := "Manage", "settings"
	if row.State == domain.DomainStateDeleted || row.State == domain.DomainStateOnHold {
		label, icon = "View", "visibility"
	}

	return domainItem{
		ID:              row.ID.String(),
		Name:            row.Name,
		ExpirationDate:  optionalDate(row.ExpirationDate),
		State:           string(row.State),
		StateDisplay:    row.StateDisplay(now),
		StateHelpText:   row.StateHelpText(now),
		ActionURL:       "/domain/" + row.ID.String(),
		ActionLabel:     label,
		SvgIcon:         icon,
		SubOrganization: optionalString(row.SubOrganizationName),
	}
}

// DomainsJSON feeds the domain table.
func (h *Handler) DomainsJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	portfolio, err := portfolioParam(r)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	page, err := h.deps.Domains.Table(ctx, GetUserFromContext(ctx), domains.TableQuery{
		ListQuery: listQuery(r, string(storage.DomainSortID), string(storage.DomainSortName),
			string(storage.DomainSortExpirationDate), string(storage.DomainSortStateDisplay)),
		PortfolioID: portfolio,
		Statuses:    statuses(r),
	})
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	now := h.deps.Now()
	items := make([]domainItem, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, newDomainItem(row, now))
	}
	h.deps.Recorder.TableServed(ctx, "domains", time.Since(start).Seconds())
	controller.WriteJSON(w, http.StatusOK, domainsResponse{
		Domains:   items,
		tablePage: newTablePage(page.Page, page.UnfilteredTotal),
	})
}

type domainRequestItem struct {
	ID                string  `json:"id"`
	RequestedDomain   *string `json:"requested_domain"`
	LastSubmittedDate *string `json:"last_submitted_date"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	IsDeletable       bool    `json:"is_deletable"`
	ActionURL         string  `json:"action_url"`
	ActionLabel       string  `json:"action_label"`
	SvgIcon           string  `json:"svg_icon"`
	Creator           string  `json:"creator"`
}

type domainRequestsResponse struct {
	DomainRequests []domainRequestItem `json:"domain_requests"`
	tablePage
}

func newDomainRequestItem(row storage.DomainRequestRow) domainRequestItem {
	id := row.ID.String()
	url, label, icon := "/domain-request/"+id, "Manage", "settings"
	if row.IsEditable() {
		url, label, icon = "/domain-request/"+id+"/edit", "Edit", "edit"
	}

	return domainRequestItem{
		ID:                id,
		RequestedDomain:   optionalString(row.RequestedDomain),
		LastSubmittedDate: optionalDate(row.LastSubmittedDate),
		Status:            row.Status.Label(),
		CreatedAt:         row.CreatedAt.UTC().Format(time.RFC3339),
		IsDeletable:       row.IsDeletable(),
		ActionURL:         url,
		ActionLabel:       label,
		SvgIcon:           icon,
		Creator:           row.CreatorEmail,
	}
}

// DomainRequestsJSON feeds the domain request table.
func (h *Handler) DomainRequestsJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	portfolio, err := portfolioParam(r)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	var filter []domain.DomainRequestStatus
	for _, s := range statuses(r) {
		filter = append(filter, domain.DomainRequestStatus(s))
	}
	page, err := h.deps.Requests.Table(ctx, GetUserFromContext(ctx), requests.TableQuery{
		ListQuery: listQuery(r, string(storage.DomainRequestSortID), string(storage.DomainRequestSortRequestedDomain),
			string(storage.DomainRequestSortLastSubmittedDate), string(storage.DomainRequestSortStatus),
			string(storage.DomainRequestSortCreatedAt)),
		PortfolioID: portfolio,
		Statuses:    filter,
	})
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	items := make([]domainRequestItem, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, newDomainRequestItem(row))
	}
	h.deps.Recorder.TableServed(ctx, "domain_requests", time.Since(start).Seconds())
	controller.WriteJSON(w, http.StatusOK, domainRequestsResponse{
		DomainRequests: items,
		tablePage:      newTablePage(page.Page, page.UnfilteredTotal),
	})
}

type memberItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	MemberDisplay string   `json:"member_display"`
	Roles         []string `json:"roles"`
	Permissions   []string `json:"permissions"`
	LastActive    *string  `json:"last_active"`
	ActionURL     string   `json:"action_url"`
	ActionLabel   string   `json:"action_label"`
	SvgIcon       string   `json:"svg_icon"`
	IsAdmin       bool     `json:"is_admin"`
	Type          string   `json:"type"`
}

type membersResponse struct {
	Members []memberItem `json:"members"`
	tablePage
}

func newMemberItem(m members.Member) memberItem {
	item := memberItem{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		MemberDisplay: m.Display(),
		Roles:         make([]string, 0, len(m.Roles)),
		Permissions:   make([]string, 0, len(m.Permissions)),
		ActionURL:     "/member/" + m.ID,
		ActionLabel:   "View",
		SvgIcon:       "visibility",
		IsAdmin:       m.IsAdmin,
		Type:          "member",
	}
	for _, role := range m.Roles {
		item.Roles = append(item.Roles, string(role))
	}
	for _, p := range m.Permissions {
		item.Permissions = append(item.Permissions, string(p))
	}
	if m.Editable {
		item.ActionLabel, item.SvgIcon = "Manage", "settings"
	}
	switch {
	case m.Invited:
		invited := "Invited"
		item.LastActive = &invited
		item.ActionURL = "/invitedmember/" + m.ID
		item.Type = "invitedmember"
	case !m.LastActive.IsZero():
		last := m.LastActive.UTC().Format(time.RFC3339)
		item.LastActive = &last
	}

	return item
}

// MembersJSON feeds the member table of a portfolio.
func (h *Handler) MembersJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	portfolio, err := portfolioParam(r)
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}
	page, err := h.deps.Members.Table(ctx, GetUserFromContext(ctx), portfolio,
		listQuery(r, members.SortMember, members.SortLastActive))
	if err != nil {
		controller.WriteError(ctx, w, err)

		return
	}

	items := make([]memberItem, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, newMemberItem(m))
	}
	h.deps.Recorder.TableServed(ctx, "members", time.Since(start).Seconds())
	controller.WriteJSON(w, http.StatusOK, membersResponse{
		Members:   items,
		tablePage: newTablePage(page.Page, page.UnfilteredTotal),
	})
}
