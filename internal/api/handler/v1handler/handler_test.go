package v1handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"registrar/internal/admin"
	mockadmin "registrar/internal/admin/mock"
	"registrar/internal/api/handler/v1handler"
	"registrar/internal/domains"
	mockdomains "registrar/internal/domains/mock"
	"registrar/internal/members"
	mockmembers "registrar/internal/members/mock"
	"registrar/internal/requests"
	mockrequests "registrar/internal/requests/mock"
	mockusers "registrar/internal/users/mock"
	"registrar/internal/wizard"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/pagination"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) //nolint: gochecknoglobals

type fixture struct {
	router   http.Handler
	token    string
	user     domain.User
	domains  *mockdomains.MockDomains
	requests *mockrequests.MockRequests
	members  *mockmembers.MockMembers
	admin    *mockadmin.MockAdmin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	priv, pubPEM := genRSAKeys(t)

	f := &fixture{
		user:     domain.User{ID: domain.UserID(uuid.New()), Email: "jo@city.gov"},
		domains:  mockdomains.NewMockDomains(ctrl),
		requests: mockrequests.NewMockRequests(ctrl),
		members:  mockmembers.NewMockMembers(ctrl),
		admin:    mockadmin.NewMockAdmin(ctrl),
	}
	users := mockusers.NewMockUsers(ctrl)
	users.EXPECT().Get(gomock.Any(), f.user.ID).Return(&f.user, nil).AnyTimes()

	issued := time.Now()
	f.token = signJWTRS256(t, priv, uuid.UUID(f.user.ID).String(), issued, issued.Add(time.Hour))

	h := v1handler.New(v1handler.Deps{
		Users:    users,
		Domains:  f.domains,
		Requests: f.requests,
		Members:  f.members,
		Admin:    f.admin,
		Now:      func() time.Time { return now },
	}, newSecHandlerForTest(t, pubPEM))
	r := chi.NewRouter()
	h.Register(r)
	f.router = r

	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))

	return out
}

func TestDomainsJSON(t *testing.T) {
	f := newFixture(t)
	id := domain.DomainID(uuid.New())
	held := domain.DomainID(uuid.New())

	f.domains.EXPECT().Table(gomock.Any(), f.user, domains.TableQuery{
		ListQuery: storage.ListQuery{Page: 2, Search: "city", SortBy: "name", Desc: true},
		Statuses:  []string{"ready", "expired"},
	}).Return(storage.Page[storage.DomainRow]{
		Items: []storage.DomainRow{
			{Domain: domain.Domain{
				ID: id, Name: "city.gov", State: domain.DomainStateReady,
				ExpirationDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			}, SubOrganizationName: "Field Office"},
			{Domain: domain.Domain{ID: held, Name: "held.gov", State: domain.DomainStateOnHold}},
		},
		Page:            pagination.New(2, 10, 12),
		UnfilteredTotal: 20,
	}, nil)

	rec := f.do(t, http.MethodGet,
		"/get-domains-json/?page=2&sort_by=name&order=desc&search_term=%20city&status=ready,expired", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.EqualValues(t, 2, body["page"])
	require.EqualValues(t, 2, body["num_pages"])
	require.Equal(t, false, body["has_next"])
	require.Equal(t, true, body["has_previous"])
	require.EqualValues(t, 12, body["total"])
	require.EqualValues(t, 20, body["unfiltered_total"])

	items := body["domains"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	require.Equal(t, "city.gov", first["name"])
	require.Equal(t, "2025-01-31", first["expiration_date"])
	require.Equal(t, "Ready", first["state_display"])
	require.Equal(t, "/domain/"+id.String(), first["action_url"])
	require.Equal(t, "Manage", first["action_label"])
	require.Equal(t, "settings", first["svg_icon"])
	require.Equal(t, "Field Office", first["domain_info__sub_organization"])

	second := items[1].(map[string]any)
	require.Nil(t, second["expiration_date"])
	require.Nil(t, second["domain_info__sub_organization"])
	require.Equal(t, "View", second["action_label"])
	require.Equal(t, "visibility", second["svg_icon"])
}

func TestDomainsJSON_DefaultsAndErrors(t *testing.T) {
	f := newFixture(t)

	f.domains.EXPECT().Table(gomock.Any(), f.user, domains.TableQuery{
		ListQuery: storage.ListQuery{Page: 1, SortBy: "id"},
	}).Return(storage.Page[storage.DomainRow]{Page: pagination.New(1, 10, 0)}, nil)
	rec := f.do(t, http.MethodGet, "/get-domains-json/?page=zero&sort_by=bogus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Empty(t, body["domains"])
	require.NotNil(t, body["domains"])

	rec = f.do(t, http.MethodGet, "/get-domains-json/?portfolio=nope", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	portfolio := domain.PortfolioID(uuid.New())
	f.domains.EXPECT().Table(gomock.Any(), f.user, gomock.Any()).
		DoAndReturn(func(_ any, _ domain.User, q domains.TableQuery) (storage.Page[storage.DomainRow], error) {
			require.Equal(t, portfolio, q.PortfolioID)

			return storage.Page[storage.DomainRow]{}, serrors.With(serrors.ErrForbidden, "no access")
		})
	rec = f.do(t, http.MethodGet, "/get-domains-json/?portfolio="+portfolio.String(), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "FORBIDDEN", decode(t, rec)["code"])
}

func TestDomainRequestsJSON(t *testing.T) {
	f := newFixture(t)
	started := domain.DomainRequestID(uuid.New())
	submitted := domain.DomainRequestID(uuid.New())

	f.requests.EXPECT().Table(gomock.Any(), f.user, requests.TableQuery{
		ListQuery: storage.ListQuery{Page: 1, SortBy: "requested_domain"},
		Statuses:  []domain.DomainRequestStatus{domain.DomainRequestStatusSubmitted},
	}).Return(storage.Page[storage.DomainRequestRow]{
		Items: []storage.DomainRequestRow{
			{DomainRequest: domain.DomainRequest{
				ID: started, Status: domain.DomainRequestStatusStarted, CreatedAt: now,
			}, CreatorEmail: "jo@city.gov"},
			{DomainRequest: domain.DomainRequest{
				ID: submitted, Status: domain.DomainRequestStatusSubmitted, RequestedDomain: "city.gov",
				LastSubmittedDate: now, CreatedAt: now,
			}, CreatorEmail: "jo@city.gov"},
		},
		Page:            pagination.New(1, 10, 2),
		UnfilteredTotal: 2,
	}, nil)

	rec := f.do(t, http.MethodGet, "/get-domain-requests-json/?sort_by=requested_domain&status=submitted", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["domain_requests"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	require.Nil(t, first["requested_domain"])
	require.Equal(t, "Started", first["status"])
	require.Equal(t, true, first["is_deletable"])
	require.Equal(t, "/domain-request/"+started.String()+"/edit", first["action_url"])
	require.Equal(t, "Edit", first["action_label"])
	require.Equal(t, "edit", first["svg_icon"])
	require.Equal(t, "jo@city.gov", first["creator"])

	second := items[1].(map[string]any)
	require.Equal(t, "city.gov", second["requested_domain"])
	require.Equal(t, "2024-05-10", second["last_submitted_date"])
	require.Equal(t, "2024-05-10T12:00:00Z", second["created_at"])
	require.Equal(t, false, second["is_deletable"])
	require.Equal(t, "/domain-request/"+submitted.String(), second["action_url"])
	require.Equal(t, "Manage", second["action_label"])
}

func TestMembersJSON(t *testing.T) {
	f := newFixture(t)
	portfolio := domain.PortfolioID(uuid.New())

	f.members.EXPECT().Table(gomock.Any(), f.user, portfolio, storage.ListQuery{Page: 1, SortBy: "last_active"}).
		Return(storage.Page[members.Member]{
			Items: []members.Member{
				{
					ID: "u1", Name: "Jo Mayor", Email: "jo@city.gov", LastActive: now, IsAdmin: true, Editable: true,
					Roles:       []domain.PortfolioRole{domain.PortfolioRoleAdmin},
					Permissions: []domain.PortfolioPermission{domain.PermissionViewMembers},
				},
				{ID: "i1", Email: "new@city.gov", Invited: true},
			},
			Page:            pagination.New(1, 10, 2),
			UnfilteredTotal: 2,
		}, nil)

	rec := f.do(t, http.MethodGet, "/get-portfolio-members-json/?portfolio="+portfolio.String()+"&sort_by=last_active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["members"].([]any)
	require.Len(t, items, 2)

	member := items[0].(map[string]any)
	require.Equal(t, "Jo Mayor", member["member_display"])
	require.Equal(t, "2024-05-10T12:00:00Z", member["last_active"])
	require.Equal(t, "/member/u1", member["action_url"])
	require.Equal(t, "Manage", member["action_label"])
	require.Equal(t, "member", member["type"])
	require.Equal(t, true, member["is_admin"])
	require.Equal(t, []any{"organization_admin"}, member["roles"])

	invited := items[1].(map[string]any)
	require.Equal(t, "new@city.gov", invited["member_display"])
	require.Equal(t, "Invited", invited["last_active"])
	require.Equal(t, "/invitedmember/i1", invited["action_url"])
	require.Equal(t, "View", invited["action_label"])
	require.Equal(t, "invitedmember", invited["type"])
	require.Equal(t, []any{}, invited["roles"])
}

func TestAvailable_NoAuth(t *testing.T) {
	f := newFixture(t)
	f.domains.EXPECT().Available(gomock.Any(), "city").Return(&domains.Availability{
		Domain: "city.gov", Code: wizard.DomainUnavailable, Message: wizard.DomainMessage(wizard.DomainUnavailable),
	}, nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available/?domain=city", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, false, body["available"])
	require.Equal(t, "unavailable", body["code"])

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-domains-json/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWizardRoutes(t *testing.T) {
	f := newFixture(t)
	id := domain.DomainRequestID(uuid.New())
	base := "/api/v1/domain-requests/" + id.String()

	t.Run("start", func(t *testing.T) {
		f.requests.EXPECT().Start(gomock.Any(), f.user, domain.PortfolioID{}).
			Return(&domain.DomainRequest{ID: id, Status: domain.DomainRequestStatusStarted}, nil)
		rec := f.do(t, http.MethodPost, "/api/v1/domain-requests", "")
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, id.String(), decode(t, rec)["id"])
	})

	t.Run("save step", func(t *testing.T) {
		f.requests.EXPECT().SaveStep(gomock.Any(), f.user, id, wizard.StepPurpose, gomock.Any()).
			DoAndReturn(func(_ any, _ domain.User, _ domain.DomainRequestID, _ wizard.Step,
				values domain.DomainRequest) (*domain.DomainRequest, error) {
				require.Equal(t, "Public services", values.Purpose)

				return &domain.DomainRequest{ID: id, Purpose: values.Purpose}, nil
			})
		rec := f.do(t, http.MethodPut, base+"/steps/purpose", `{"purpose":"Public services"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid step fields", func(t *testing.T) {
		fields := serrors.FieldErrors{}
		fields.Add("purpose", "Describe how you’ll use the .gov domain you’re requesting.")
		f.requests.EXPECT().SaveStep(gomock.Any(), f.user, id, wizard.StepPurpose, gomock.Any()).
			Return(nil, serrors.Invalid(fields, "invalid step"))
		rec := f.do(t, http.MethodPut, base+"/steps/purpose", `{"purpose":""}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decode(t, rec)["errors"], "purpose")
	})

	t.Run("unknown step", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, base+"/steps/nope", `{}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, base+"/steps/purpose", `{"nope":1}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/domain-requests/123/", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("submit and delete", func(t *testing.T) {
		f.requests.EXPECT().Submit(gomock.Any(), f.user, id).
			Return(&domain.DomainRequest{ID: id, Status: domain.DomainRequestStatusSubmitted}, nil)
		rec := f.do(t, http.MethodPost, base+"/submit", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "submitted", decode(t, rec)["status"])

		f.requests.EXPECT().Delete(gomock.Any(), f.user, id).Return(nil)
		rec = f.do(t, http.MethodDelete, base, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("current", func(t *testing.T) {
		f.requests.EXPECT().Current(gomock.Any(), f.user).
			Return(nil, serrors.With(serrors.ErrNotFound, "no request in progress"))
		rec := f.do(t, http.MethodGet, "/api/v1/domain-requests/current", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDomainRoutes(t *testing.T) {
	f := newFixture(t)
	id := domain.DomainID(uuid.New())
	base := "/api/v1/domains/" + id.String()

	f.domains.EXPECT().SetNameservers(gomock.Any(), f.user, id, []domain.Nameserver{
		{Host: "ns1.example.com"}, {Host: "ns2.example.com"},
	}).Return(&domain.Domain{ID: id, State: domain.DomainStateReady}, nil)
	rec := f.do(t, http.MethodPut, base+"/nameservers",
		`{"nameservers":[{"host":"ns1.example.com"},{"host":"ns2.example.com"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	invitation := &domain.DomainInvitation{Email: "new@city.gov", DomainID: id}
	f.domains.EXPECT().AddManager(gomock.Any(), f.user, id, "new@city.gov").
		Return(&domains.AddManagerResult{Invitation: invitation}, nil)
	rec = f.do(t, http.MethodPost, base+"/managers", `{"email":"new@city.gov"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body["invitation"])
	require.NotContains(t, body, "user")

	manager := domain.UserID(uuid.New())
	f.domains.EXPECT().RemoveManager(gomock.Any(), f.user, id, manager).
		Return(serrors.With(serrors.ErrConflict, "cannot remove the last manager"))
	rec = f.do(t, http.MethodDelete, base+"/managers/"+uuid.UUID(manager).String(), "")
	require.Equal(t, http.StatusConflict, rec.Code)

	inv := domain.InvitationID(uuid.New())
	f.domains.EXPECT().CancelInvitation(gomock.Any(), f.user, inv).Return(nil)
	rec = f.do(t, http.MethodDelete, "/api/v1/invitations/"+inv.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	f.domains.EXPECT().Detail(gomock.Any(), f.user, id).Return(&domains.Detail{
		Domain:    domain.Domain{ID: id, Name: "city.gov", State: domain.DomainStateDNSNeeded},
		CanManage: true,
	}, nil)
	rec = f.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Equal(t, "DNS needed", body["stateDisplay"])
	require.Equal(t, true, body["canManage"])
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(t)

	t.Run("list envelope", func(t *testing.T) {
		f.admin.EXPECT().Contacts(gomock.Any(), f.user, storage.ListQuery{Page: 1, Search: "mayor"}).
			Return(storage.Page[domain.Contact]{Page: pagination.New(1, 10, 0)}, nil)
		rec := f.do(t, http.MethodGet, "/api/v1/admin/contacts?search_term=mayor", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.Equal(t, []any{}, body["items"])
		require.EqualValues(t, 1, body["num_pages"])
	})

	t.Run("forbidden", func(t *testing.T) {
		f.admin.EXPECT().Users(gomock.Any(), f.user, gomock.Any()).
			Return(storage.Page[domain.User]{}, serrors.With(serrors.ErrForbidden, "staff only"))
		rec := f.do(t, http.MethodGet, "/api/v1/admin/users", "")
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("transition", func(t *testing.T) {
		id := domain.DomainRequestID(uuid.New())
		f.requests.EXPECT().Transition(gomock.Any(), f.user, id, domain.TransitionReject, "domain_not_available").
			Return(&domain.DomainRequest{ID: id, Status: domain.DomainRequestStatusRejected}, nil)
		rec := f.do(t, http.MethodPost, "/api/v1/admin/domain-requests/"+id.String()+"/transitions",
			`{"transition":"reject","reason":"domain_not_available"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "rejected", decode(t, rec)["status"])
	})

	t.Run("expiration", func(t *testing.T) {
		id := domain.DomainID(uuid.New())
		rec := f.do(t, http.MethodPut, "/api/v1/admin/domains/"+id.String()+"/expiration", `{"expirationDate":"31/01/2025"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decode(t, rec)["errors"], "expirationDate")

		date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		f.domains.EXPECT().SetExpiration(gomock.Any(), f.user, id, date).
			Return(&domain.Domain{ID: id, ExpirationDate: date}, nil)
		rec = f.do(t, http.MethodPut, "/api/v1/admin/domains/"+id.String()+"/expiration", `{"expirationDate":"2025-01-31"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("hold", func(t *testing.T) {
		id := domain.DomainID(uuid.New())
		f.domains.EXPECT().PlaceHold(gomock.Any(), f.user, id).
			Return(&domain.Domain{ID: id, State: domain.DomainStateOnHold}, nil)
		rec := f.do(t, http.MethodPost, "/api/v1/admin/domains/"+id.String()+"/hold", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "on hold", decode(t, rec)["state"])
	})

	t.Run("report", func(t *testing.T) {
		f.admin.EXPECT().WriteReport(gomock.Any(), f.user, admin.ReportCurrentFederal, gomock.Any()).
			DoAndReturn(func(_ any, _ domain.User, _ admin.Report, w io.Writer) error {
				_, err := io.WriteString(w, "Domain name,Status\nagency.gov,Ready\n")

				return err
			})
		rec := f.do(t, http.MethodGet, "/api/v1/reports/current-federal", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Contains(t, rec.Header().Get("Content-Disposition"), "current-federal.csv")
		require.Equal(t, "Domain name,Status\nagency.gov,Ready\n", rec.Body.String())

		f.admin.EXPECT().WriteReport(gomock.Any(), f.user, admin.Report("nope"), gomock.Any()).
			Return(serrors.With(serrors.ErrNotFound, "unknown report"))
		rec = f.do(t, http.MethodGet, "/api/v1/reports/nope", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/users/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jo@city.gov", decode(t, rec)["email"])
}
