// Package requests implements the domain request wizard and its review.
package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registrar/internal/access"
	"registrar/internal/wizard"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/metrics"
	"registrar/pkg/serrors"
	"registrar/pkg/session"
	"registrar/pkg/storage"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options configure the requests service.
type Options struct {
	// BaseURL prefixes links in emails.
	BaseURL string
	// EmailAttempts bounds delivery attempts of queued emails.
	EmailAttempts int
	// PageSize is the default table page size.
	PageSize int
	Limits   wizard.Limits
	// Now defaults to time.Now.
	Now func() time.Time
}

type requests struct {
	storage   storage.Storage
	sessions  session.Store
	recorder  *metrics.Recorder
	validator *wizard.Validator
	opts      Options
}

// New creates the requests service. recorder may be nil.
func New(storage storage.Storage, sessions session.Store, recorder *metrics.Recorder, opts Options) Requests {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &requests{
		storage:   storage,
		sessions:  sessions,
		recorder:  recorder,
		validator: wizard.NewValidator(storage, opts.Limits),
		opts:      opts,
	}
}

func (s *requests) today() time.Time { return domain.Today(s.opts.Now()) }

func (s *requests) Start(ctx context.Context, viewer domain.User,
	portfolioID domain.PortfolioID) (*domain.DomainRequest, error) {
	if viewer.IsRestricted() {
		return nil, serrors.With(serrors.ErrForbidden, "your account can't start domain requests")
	}
	if !portfolioID.IsZero() {
		grant, err := access.PortfolioGrant(ctx, s.storage, viewer, portfolioID)
		if err != nil {
			return nil, err
		}
		if !grant.Has(domain.PermissionEditRequests) {
			return nil, serrors.With(serrors.ErrForbidden, "you may not create requests for this portfolio")
		}
	}

	r, err := s.storage.StoreDomainRequest(ctx, domain.DomainRequest{
		CreatorID:   viewer.ID,
		Status:      domain.DomainRequestStatusStarted,
		PortfolioID: portfolioID,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store domain request: %w", err)
	}
	if err := s.sessions.SetCurrentRequest(ctx, viewer.ID, r.ID); err != nil {
		return nil, fmt.Errorf("could not start wizard session: %w", err)
	}

	logger.Info(ctx, "started domain request",
		zap.String("requestID", r.ID.String()), zap.String("userID", viewer.ID.String()))

	return r, nil
}

func (s *requests) Current(ctx context.Context, viewer domain.User) (*domain.DomainRequest, error) {
	id, err := s.sessions.CurrentRequest(ctx, viewer.ID)
	if errors.Is(err, session.ErrNoSession) {
		return nil, serrors.With(serrors.ErrNotFound, "no domain request in progress")
	}
	if err != nil {
		return nil, fmt.Errorf("could not get wizard session: %w", err)
	}

	return s.Get(ctx, viewer, id)
}

func (s *requests) load(ctx context.Context, st storage.AllStorage,
	id domain.DomainRequestID) (*domain.DomainRequest, error) {
	r, err := st.DomainRequestByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get domain request: %w", err)
	}
	if r == nil {
		return nil, serrors.With(serrors.ErrNotFound, "domain request not found")
	}

	return r, nil
}

// canView grants read access to the creator, staff and portfolio members
// who may see all of the portfolio's requests.
func (s *requests) canView(ctx context.Context, viewer domain.User, r *domain.DomainRequest) (bool, error) {
	if viewer.IsStaff || r.CreatorID == viewer.ID {
		return true, nil
	}
	if r.PortfolioID.IsZero() {
		return false, nil
	}
	grant, err := s.storage.PortfolioPermission(ctx, viewer.ID, r.PortfolioID)
	if err != nil {
		return false, fmt.Errorf("could not get portfolio permission: %w", err)
	}

	return grant != nil && grant.Has(domain.PermissionViewAllRequests), nil
}

func (s *requests) Get(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error) {
	r, err := s.load(ctx, s.storage, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canView(ctx, viewer, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "domain request not found")
	}

	return r, nil
}

func (s *requests) Edit(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error) {
	r, err := s.owned(ctx, s.storage, viewer, id)
	if err != nil {
		return nil, err
	}
	if !r.IsEditable() {
		return nil, serrors.With(serrors.ErrConflict, "a request that is %s can't be edited", r.Status.Label())
	}
	if err := s.sessions.SetCurrentRequest(ctx, viewer.ID, id); err != nil {
		return nil, fmt.Errorf("could not set wizard session: %w", err)
	}

	return r, nil
}

// owned loads a request the viewer created.
func (s *requests) owned(ctx context.Context, st storage.AllStorage, viewer domain.User,
	id domain.DomainRequestID) (*domain.DomainRequest, error) {
	r, err := s.load(ctx, st, id)
	if err != nil {
		return nil, err
	}
	if r.CreatorID != viewer.ID {
		return nil, serrors.With(serrors.ErrNotFound, "domain request not found")
	}

	return r, nil
}

func (s *requests) SaveStep(ctx context.Context, viewer domain.User, id domain.DomainRequestID, step wizard.Step,
	values domain.DomainRequest) (*domain.DomainRequest, error) {
	var out *domain.DomainRequest
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		r, err := s.owned(ctx, tx, viewer, id)
		if err != nil {
			return err
		}
		if !r.IsEditable() {
			return serrors.With(serrors.ErrConflict, "a request that is %s can't be edited", r.Status.Label())
		}

		wizard.Apply(step, r, values)
		errs, err := s.validator.ValidateStep(ctx, step, *r)
		if err != nil {
			return err
		}
		if !errs.Empty() {
			return serrors.Invalid(errs, "please correct the errors on the %s step", step.Title())
		}

		out, err = tx.UpdateDomainRequest(ctx, *r)
		if err != nil {
			return fmt.Errorf("could not update domain request: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SetCurrentRequest(ctx, viewer.ID, id); err != nil {
		logger.Warn(ctx, "could not refresh wizard session", zap.Error(err))
	}

	return out, nil
}

func (s *requests) Steps(ctx context.Context, viewer domain.User, id domain.DomainRequestID) ([]StepState, error) {
	r, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	out := make([]StepState, 0, len(wizard.Steps))
	for _, step := range wizard.Steps {
		state := StepState{Step: step, Title: step.Title(), Visible: step.Visible(*r)}
		if state.Visible && step != wizard.StepReview {
			errs, err := s.validator.ValidateStep(ctx, step, *r)
			if err != nil {
				return nil, err
			}
			state.Complete = errs.Empty()
		}
		out = append(out, state)
	}

	return out, nil
}

func (s *requests) Submit(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error) {
	if viewer.IsRestricted() {
		return nil, serrors.With(serrors.ErrForbidden, "your account can't submit domain requests")
	}

	ctx, span := metrics.StartSpan(ctx, "requests.Submit", attribute.String("requestID", id.String()))
	var out *domain.DomainRequest
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		r, err := s.owned(ctx, tx, viewer, id)
		if err != nil {
			return err
		}
		to, ok := domain.TransitionSubmit.Target(r.Status)
		if !ok {
			return serrors.With(serrors.ErrConflict, "a request that is %s can't be submitted", r.Status.Label())
		}
		errs, err := s.validator.ValidateAll(ctx, *r)
		if err != nil {
			return err
		}
		if !errs.Empty() {
			return serrors.Invalid(errs, "the request is incomplete")
		}

		today := s.today()
		r.Status = to
		r.LastSubmittedDate = today
		if r.FirstSubmittedDate.IsZero() {
			r.FirstSubmittedDate = today
		}
		r.LastStatusUpdate = today
		out, err = tx.UpdateDomainRequest(ctx, *r)
		if err != nil {
			return fmt.Errorf("could not update domain request: %w", err)
		}

		return s.notify(ctx, tx, *out, domain.TransitionSubmit, viewer.Email)
	})
	metrics.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Clear(ctx, viewer.ID); err != nil {
		logger.Warn(ctx, "could not clear wizard session", zap.Error(err))
	}
	s.recorder.RequestSubmitted(ctx)
	s.recorder.Transition(ctx, string(domain.TransitionSubmit), string(out.Status))
	logger.Info(ctx, "submitted domain request",
		zap.String("requestID", id.String()), zap.String("domain", out.RequestedDomain))

	return out, nil
}

func (s *requests) Withdraw(ctx context.Context, viewer domain.User,
	id domain.DomainRequestID) (*domain.DomainRequest, error) {
	var out *domain.DomainRequest
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		r, err := s.owned(ctx, tx, viewer, id)
		if err != nil {
			return err
		}
		to, ok := domain.TransitionWithdraw.Target(r.Status)
		if !ok {
			return serrors.With(serrors.ErrConflict, "a request that is %s can't be withdrawn", r.Status.Label())
		}
		r.Status = to
		r.LastStatusUpdate = s.today()
		out, err = tx.UpdateDomainRequest(ctx, *r)
		if err != nil {
			return fmt.Errorf("could not update domain request: %w", err)
		}

		return s.notify(ctx, tx, *out, domain.TransitionWithdraw, viewer.Email)
	})
	if err != nil {
		return nil, err
	}
	s.recorder.Transition(ctx, string(domain.TransitionWithdraw), string(out.Status))

	return out, nil
}

func (s *requests) Delete(ctx context.Context, viewer domain.User, id domain.DomainRequestID) error {
	r, err := s.owned(ctx, s.storage, viewer, id)
	if err != nil {
		return err
	}
	if !r.IsDeletable() {
		return serrors.With(serrors.ErrConflict, "a request that is %s can't be deleted", r.Status.Label())
	}
	if _, err := s.storage.DeleteDomainRequest(ctx, id); err != nil {
		return fmt.Errorf("could not delete domain request: %w", err)
	}

	current, err := s.sessions.CurrentRequest(ctx, viewer.ID)
	if err == nil && current == id {
		if err := s.sessions.Clear(ctx, viewer.ID); err != nil {
			logger.Warn(ctx, "could not clear wizard session", zap.Error(err))
		}
	}

	return nil
}

func (s *requests) Table(ctx context.Context, viewer domain.User,
	query TableQuery) (storage.Page[storage.DomainRequestRow], error) {
	q := storage.DomainRequestQuery{ListQuery: query.ListQuery, Statuses: query.Statuses, ExcludeApproved: true}
	if q.PageSize <= 0 {
		q.PageSize = s.opts.PageSize
	}

	switch {
	case !query.PortfolioID.IsZero():
		grant, err := access.PortfolioGrant(ctx, s.storage, viewer, query.PortfolioID)
		if err != nil {
			return storage.Page[storage.DomainRequestRow]{}, err
		}
		q.PortfolioID = query.PortfolioID
		switch {
		case grant.Has(domain.PermissionViewAllRequests):
		case grant.Has(domain.PermissionEditRequests):
			q.CreatorID = viewer.ID
		default:
			return storage.Page[storage.DomainRequestRow]{}, serrors.With(serrors.ErrForbidden,
				"you may not view the requests of this portfolio")
		}
	default:
		q.CreatorID = viewer.ID
	}

	page, err := s.storage.DomainRequests(ctx, q)
	if err != nil {
		return storage.Page[storage.DomainRequestRow]{}, fmt.Errorf("could not list domain requests: %w", err)
	}

	return page, nil
}
