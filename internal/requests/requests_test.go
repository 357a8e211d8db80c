package requests_test

import (
	"context"
	"testing"
	"time"

	"registrar/internal/requests"
	"registrar/internal/wizard"
	"registrar/internal/worker"
	"registrar/pkg/domain"
	"registrar/pkg/mail"
	"registrar/pkg/serrors"
	"registrar/pkg/session"
	"registrar/pkg/storage"
	"registrar/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) //nolint: gochecknoglobals

func ptr[T any](v T) *T { return &v }

type fixture struct {
	st       *memory.Memory
	sessions *session.Memory
	svc      requests.Requests
	creator  domain.User
	staff    domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	sessions := session.NewMemory(time.Hour)
	creator, err := st.UpsertUser(ctx, domain.User{Email: "jo@springfield.gov", FirstName: "Jo"})
	require.NoError(t, err)
	staff, err := st.UpsertUser(ctx, domain.User{Email: "analyst@cisa.gov", IsStaff: true})
	require.NoError(t, err)

	return &fixture{
		st:       st,
		sessions: sessions,
		svc: requests.New(st, sessions, nil, requests.Options{
			BaseURL: "https://manage.get.gov", EmailAttempts: 3, PageSize: 10,
			Now: func() time.Time { return now },
		}),
		creator: *creator,
		staff:   *staff,
	}
}

func completeRequest(creator domain.UserID, status domain.DomainRequestStatus) domain.DomainRequest {
	return domain.DomainRequest{
		CreatorID: creator,
		Status:    status,
		Organization: domain.Organization{
			Type: domain.OrganizationTypeCity, IsElectionBoard: ptr(false), OrganizationName: "City of Springfield",
			AddressLine1: "1 Main St", City: "Springfield", StateTerritory: "IL", Zipcode: "62701",
		},
		SeniorOfficial: &domain.Contact{
			FirstName: "Jo", LastName: "Mayor", Title: "Mayor", Email: "mayor@springfield.gov",
		},
		CurrentWebsites:  []string{"springfield.example.com"},
		RequestedDomain:  "springfield.gov",
		Purpose:          "City services",
		HasOtherContacts: ptr(true),
		OtherContacts: []domain.Contact{{
			FirstName: "Al", LastName: "Clerk", Title: "Clerk", Email: "al@springfield.gov", Phone: "555-555-0100",
		}},
		HasCISARepresentative: ptr(false),
		HasAnythingElse:       ptr(false),
		IsPolicyAcknowledged:  true,
	}
}

func (f *fixture) store(t *testing.T, status domain.DomainRequestStatus) domain.DomainRequest {
	t.Helper()
	r, err := f.st.StoreDomainRequest(context.Background(), completeRequest(f.creator.ID, status))
	require.NoError(t, err)

	return *r
}

func templates(st *memory.Memory) []string {
	var out []string
	for _, j := range st.Jobs() {
		if args, ok := j.Args.(worker.SendEmailArgs); ok {
			out = append(out, args.Template)
		}
	}

	return out
}

func TestRequests_StartAndSaveStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Start(ctx, domain.User{ID: domain.UserID{5}, Status: domain.UserStatusRestricted}, domain.PortfolioID{})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	r, err := f.svc.Start(ctx, f.creator, domain.PortfolioID{})
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusStarted, r.Status)

	current, err := f.svc.Current(ctx, f.creator)
	require.NoError(t, err)
	require.Equal(t, r.ID, current.ID)

	saved, err := f.svc.SaveStep(ctx, f.creator, r.ID, wizard.StepGenericOrgType,
		domain.DomainRequest{Organization: domain.Organization{Type: domain.OrganizationTypeTribal}})
	require.NoError(t, err)
	require.Equal(t, domain.OrganizationTypeTribal, saved.Type)

	_, err = f.svc.SaveStep(ctx, f.creator, r.ID, wizard.StepDotgovDomain,
		domain.DomainRequest{RequestedDomain: "not.a.label"})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Contains(t, serrors.FieldsOf(err), "requested_domain")

	saved, err = f.svc.SaveStep(ctx, f.creator, r.ID, wizard.StepDotgovDomain,
		domain.DomainRequest{RequestedDomain: "Springfield", Status: domain.DomainRequestStatusApproved})
	require.NoError(t, err)
	require.Equal(t, "springfield.gov", saved.RequestedDomain)
	require.Equal(t, domain.DomainRequestStatusStarted, saved.Status)

	_, err = f.svc.SaveStep(ctx, f.staff, r.ID, wizard.StepPurpose, domain.DomainRequest{Purpose: "x"})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	steps, err := f.svc.Steps(ctx, f.creator, r.ID)
	require.NoError(t, err)
	require.Len(t, steps, len(wizard.Steps))
	require.Equal(t, wizard.StepGenericOrgType, steps[0].Step)
	require.True(t, steps[0].Complete)
	require.True(t, steps[1].Visible)
	require.False(t, steps[1].Complete)
	require.False(t, steps[2].Visible)
}

func TestRequests_Submit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	started, err := f.svc.Start(ctx, f.creator, domain.PortfolioID{})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.creator, started.ID)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	r := f.store(t, domain.DomainRequestStatusStarted)
	require.NoError(t, f.sessions.SetCurrentRequest(ctx, f.creator.ID, r.ID))

	submitted, err := f.svc.Submit(ctx, f.creator, r.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusSubmitted, submitted.Status)
	require.Equal(t, domain.Today(now), submitted.LastSubmittedDate)
	require.Equal(t, domain.Today(now), submitted.FirstSubmittedDate)
	require.Equal(t, []string{mail.TemplateSubmissionConfirmation}, templates(f.st))

	_, err = f.svc.Current(ctx, f.creator)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = f.svc.Submit(ctx, f.creator, r.ID)
	require.ErrorIs(t, err, serrors.ErrConflict)

	restricted := f.creator
	restricted.Status = domain.UserStatusRestricted
	_, err = f.svc.Submit(ctx, restricted, r.ID)
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestRequests_WithdrawAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusSubmitted)

	require.ErrorIs(t, f.svc.Delete(ctx, f.creator, r.ID), serrors.ErrConflict)

	withdrawn, err := f.svc.Withdraw(ctx, f.creator, r.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusWithdrawn, withdrawn.Status)
	require.Equal(t, []string{mail.TemplateStatusWithdrawn}, templates(f.st))

	_, err = f.svc.Withdraw(ctx, f.creator, r.ID)
	require.ErrorIs(t, err, serrors.ErrConflict)

	require.ErrorIs(t, f.svc.Delete(ctx, f.staff, r.ID), serrors.ErrNotFound)
	require.NoError(t, f.svc.Delete(ctx, f.creator, r.ID))
	_, err = f.svc.Get(ctx, f.creator, r.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestRequests_Transition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusSubmitted)

	_, err := f.svc.Transition(ctx, f.creator, r.ID, domain.TransitionInReview, "")
	require.ErrorIs(t, err, serrors.ErrForbidden)
	_, err = f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionWithdraw, "")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	_, err = f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionReject, "")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	_, err = f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionReject, "eligibility")
	require.ErrorIs(t, err, serrors.ErrConflict)

	approved, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionApprove, "")
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusApproved, approved.Status)
	require.False(t, approved.ApprovedDomainID.IsZero())

	d, err := f.st.DomainByName(ctx, "springfield.gov")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, domain.DomainStateUnknown, d.State)
	require.Equal(t, approved.ApprovedDomainID, d.ID)
	has, err := f.st.HasDomainRole(ctx, f.creator.ID, d.ID)
	require.NoError(t, err)
	require.True(t, has)
	info, err := f.st.DomainInformationByDomain(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "City of Springfield", info.OrganizationName)
	official, err := f.st.ContactByID(ctx, info.SeniorOfficialID)
	require.NoError(t, err)
	require.Equal(t, "mayor@springfield.gov", official.Email)

	rejected, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionReject, "eligibility")
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusRejected, rejected.Status)
	require.Equal(t, "eligibility", rejected.RejectionReason)
	require.True(t, rejected.ApprovedDomainID.IsZero())
	d, err = f.st.DomainByName(ctx, "springfield.gov")
	require.NoError(t, err)
	require.Nil(t, d)

	approved, err = f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionApprove, "")
	require.NoError(t, err)
	d, err = f.st.DomainByID(ctx, approved.ApprovedDomainID)
	require.NoError(t, err)
	d.State = domain.DomainStateReady
	_, err = f.st.UpdateDomain(ctx, *d)
	require.NoError(t, err)

	review, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionInReview, "")
	require.NoError(t, err)
	require.Equal(t, d.ID, review.ApprovedDomainID)
	kept, err := f.st.DomainByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)

	again, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionApprove, "")
	require.NoError(t, err)
	require.Equal(t, d.ID, again.ApprovedDomainID)

	require.Equal(t, []string{
		mail.TemplateStatusApproved, mail.TemplateStatusRejected, mail.TemplateStatusApproved,
		mail.TemplateStatusInReview, mail.TemplateStatusApproved,
	}, templates(f.st))
}

func TestRequests_ApproveExistingDomain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusInReview)
	_, err := f.st.StoreDomain(ctx, domain.Domain{Name: "springfield.gov", State: domain.DomainStateReady})
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionApprove, "")
	require.ErrorIs(t, err, serrors.ErrConflict)

	stored, err := f.st.DomainRequestByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusInReview, stored.Status)
}

func TestRequests_RejectWithPrejudice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusInReview)

	out, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionRejectWithPrejudice, "")
	require.NoError(t, err)
	require.Equal(t, domain.DomainRequestStatusIneligible, out.Status)

	creator, err := f.st.UserByID(ctx, f.creator.ID)
	require.NoError(t, err)
	require.True(t, creator.IsRestricted())
	require.Empty(t, templates(f.st))
}

func TestRequests_ActionNeeded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusInReview)

	out, err := f.svc.Transition(ctx, f.staff, r.ID, domain.TransitionActionNeeded, "missing documentation")
	require.NoError(t, err)
	require.Equal(t, "missing documentation", out.ActionNeededReason)
	require.True(t, out.IsEditable())

	jobs := f.st.Jobs()
	require.Len(t, jobs, 1)
	args := jobs[0].Args.(worker.SendEmailArgs)
	require.Equal(t, []string{"jo@springfield.gov"}, args.To)
	require.Contains(t, args.Body, "missing documentation")
	require.Contains(t, args.Body, "https://manage.get.gov/domain-request/"+r.ID.String()+"/edit")
}

func TestRequests_Table(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store(t, domain.DomainRequestStatusSubmitted)
	f.store(t, domain.DomainRequestStatusApproved)
	p, err := f.st.StorePortfolio(ctx, domain.Portfolio{OrganizationName: "Springfield"})
	require.NoError(t, err)
	inPortfolio := completeRequest(f.staff.ID, domain.DomainRequestStatusStarted)
	inPortfolio.PortfolioID = p.ID
	_, err = f.st.StoreDomainRequest(ctx, inPortfolio)
	require.NoError(t, err)

	page, err := f.svc.Table(ctx, f.creator, requests.TableQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, page.UnfilteredTotal)
	require.Equal(t, domain.DomainRequestStatusSubmitted, page.Items[0].Status)

	_, err = f.svc.Table(ctx, f.creator, requests.TableQuery{PortfolioID: p.ID})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	require.NoError(t, f.st.UpsertPortfolioPermission(ctx, domain.UserPortfolioPermission{
		UserID: f.creator.ID, PortfolioID: p.ID,
		AdditionalPermissions: []domain.PortfolioPermission{domain.PermissionEditRequests},
	}))
	page, err = f.svc.Table(ctx, f.creator, requests.TableQuery{PortfolioID: p.ID})
	require.NoError(t, err)
	require.Equal(t, 0, page.UnfilteredTotal)

	require.NoError(t, f.st.UpsertPortfolioPermission(ctx, domain.UserPortfolioPermission{
		UserID: f.creator.ID, PortfolioID: p.ID, Roles: []domain.PortfolioRole{domain.PortfolioRoleAdmin},
	}))
	page, err = f.svc.Table(ctx, f.creator, requests.TableQuery{
		PortfolioID: p.ID, ListQuery: storage.ListQuery{Search: "spring"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "analyst@cisa.gov", page.Items[0].CreatorEmail)
}

func TestRequests_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.store(t, domain.DomainRequestStatusActionNeeded)

	_, err := f.svc.Edit(ctx, f.staff, r.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	edited, err := f.svc.Edit(ctx, f.creator, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, edited.ID)
	current, err := f.svc.Current(ctx, f.creator)
	require.NoError(t, err)
	require.Equal(t, r.ID, current.ID)

	submitted := f.store(t, domain.DomainRequestStatusSubmitted)
	_, err = f.svc.Edit(ctx, f.creator, submitted.ID)
	require.ErrorIs(t, err, serrors.ErrConflict)
}
