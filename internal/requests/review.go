package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"registrar/internal/access"
	"registrar/internal/worker"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/mail"
	"registrar/pkg/metrics"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const submittedDateLayout = "January 2, 2006"

// reviewTransitions are the transitions staff may apply.
var reviewTransitions = map[domain.Transition]bool{ //nolint: gochecknoglobals
	domain.TransitionInReview:            true,
	domain.TransitionActionNeeded:        true,
	domain.TransitionApprove:             true,
	domain.TransitionReject:              true,
	domain.TransitionRejectWithPrejudice: true,
}

// statusTemplates maps a transition onto the email telling the creator about it.
var statusTemplates = map[domain.Transition]string{ //nolint: gochecknoglobals
	domain.TransitionSubmit:       mail.TemplateSubmissionConfirmation,
	domain.TransitionInReview:     mail.TemplateStatusInReview,
	domain.TransitionActionNeeded: mail.TemplateStatusActionNeeded,
	domain.TransitionApprove:      mail.TemplateStatusApproved,
	domain.TransitionReject:       mail.TemplateStatusRejected,
	domain.TransitionWithdraw:     mail.TemplateStatusWithdrawn,
}

// notify queues the status email of t inside tx.
func (s *requests) notify(ctx context.Context, tx storage.AllStorage, r domain.DomainRequest,
	t domain.Transition, to string) error {
	template, ok := statusTemplates[t]
	if !ok {
		return nil
	}
	creator, err := tx.UserByID(ctx, r.CreatorID)
	if err != nil {
		return fmt.Errorf("could not get request creator: %w", err)
	}
	firstName := ""
	if creator != nil {
		firstName = creator.FirstName
		if to == "" {
			to = creator.Email
		}
	}

	reason := r.RejectionReason
	if t == domain.TransitionActionNeeded {
		reason = r.ActionNeededReason
	}
	data := map[string]any{
		"FirstName":       firstName,
		"RequestedDomain": r.RequestedDomain,
		"SubmittedDate":   r.LastSubmittedDate.Format(submittedDateLayout),
		"BaseURL":         s.opts.BaseURL,
		"RequestID":       r.ID.String(),
		"DomainID":        r.ApprovedDomainID.String(),
		"Reason":          reason,
	}

	event := string(t) + "@" + r.UpdatedAt.UTC().Format(time.RFC3339Nano)

	return worker.EnqueueEventEmail(ctx, tx, s.opts.EmailAttempts, event, template, data, to)
}

func (s *requests) Transition(ctx context.Context, viewer domain.User, id domain.DomainRequestID,
	t domain.Transition, reason string) (*domain.DomainRequest, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if !reviewTransitions[t] {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown transition %q", t)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" && (t == domain.TransitionActionNeeded || t == domain.TransitionReject) {
		return nil, serrors.Invalid(serrors.FieldErrors{"reason": {"Select a reason."}}, "a reason is required")
	}

	ctx, span := metrics.StartSpan(ctx, "requests.Transition",
		attribute.String("requestID", id.String()), attribute.String("transition", string(t)))
	var out *domain.DomainRequest
	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		r, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		to, ok := t.Target(r.Status)
		if !ok {
			return serrors.With(serrors.ErrConflict, "can't %s a request that is %s",
				strings.ReplaceAll(string(t), "_", " "), r.Status.Label())
		}

		if r.Status == domain.DomainRequestStatusApproved && to != domain.DomainRequestStatusApproved {
			if err := s.unapprove(ctx, tx, r); err != nil {
				return err
			}
		}

		switch t { //nolint: exhaustive
		case domain.TransitionApprove:
			if err := s.approve(ctx, tx, r); err != nil {
				return err
			}
		case domain.TransitionActionNeeded:
			r.ActionNeededReason = reason
		case domain.TransitionReject:
			r.RejectionReason = reason
		case domain.TransitionRejectWithPrejudice:
			if err := tx.SetUserStatus(ctx, r.CreatorID, domain.UserStatusRestricted); err != nil {
				return fmt.Errorf("could not restrict request creator: %w", err)
			}
		}

		r.Status = to
		r.LastStatusUpdate = s.today()
		out, err = tx.UpdateDomainRequest(ctx, *r)
		if err != nil {
			return fmt.Errorf("could not update domain request: %w", err)
		}

		return s.notify(ctx, tx, *out, t, "")
	})
	metrics.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	s.recorder.Transition(ctx, string(t), string(out.Status))
	logger.Info(ctx, "transitioned domain request",
		zap.String("requestID", id.String()), zap.String("transition", string(t)),
		zap.String("status", string(out.Status)), zap.String("staff", viewer.Email))

	return out, nil
}

// approve creates the domain with its information record and makes the
// creator its manager. A domain kept from an earlier approval is reused.
func (s *requests) approve(ctx context.Context, tx storage.AllStorage, r *domain.DomainRequest) error {
	if !r.ApprovedDomainID.IsZero() {
		kept, err := tx.DomainByID(ctx, r.ApprovedDomainID)
		if err != nil {
			return fmt.Errorf("could not get approved domain: %w", err)
		}
		if kept != nil {
			return nil
		}
	}

	d, err := tx.StoreDomain(ctx, domain.Domain{Name: r.RequestedDomain, State: domain.DomainStateUnknown})
	if errors.Is(err, storage.ErrDuplicate) {
		return serrors.With(serrors.ErrConflict, "cannot approve: the domain %s already exists", r.RequestedDomain)
	}
	if err != nil {
		return fmt.Errorf("could not store domain: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(r.OtherContacts)+1)
	if r.SeniorOfficial != nil {
		contacts = append(contacts, *r.SeniorOfficial)
	}
	contacts = append(contacts, r.OtherContacts...)
	for i := range contacts {
		contacts[i].ID = domain.ContactID{}
	}
	stored, err := tx.StoreContacts(ctx, contacts...)
	if err != nil {
		return fmt.Errorf("could not store contacts: %w", err)
	}

	info := domain.DomainInformation{
		DomainID:          d.ID,
		CreatorID:         r.CreatorID,
		DomainRequestID:   r.ID,
		PortfolioID:       r.PortfolioID,
		SubOrganizationID: r.SubOrganizationID,
		Organization:      r.Organization,
		Purpose:           r.Purpose,
		AnythingElse:      r.AnythingElse,
	}
	if r.SeniorOfficial != nil && len(stored) > 0 {
		info.SeniorOfficialID = stored[0].ID
	}
	if _, err := tx.StoreDomainInformation(ctx, info); err != nil {
		return fmt.Errorf("could not store domain information: %w", err)
	}
	if err := tx.AddDomainRole(ctx, domain.UserDomainRole{
		UserID: r.CreatorID, DomainID: d.ID, Role: domain.DomainRoleManager,
	}); err != nil {
		return fmt.Errorf("could not add domain role: %w", err)
	}
	r.ApprovedDomainID = d.ID

	return nil
}

// unapprove removes the domain created by an earlier approval unless it is
// already in use.
func (s *requests) unapprove(ctx context.Context, tx storage.AllStorage, r *domain.DomainRequest) error {
	if r.ApprovedDomainID.IsZero() {
		return nil
	}
	d, err := tx.DomainByID(ctx, r.ApprovedDomainID)
	if err != nil {
		return fmt.Errorf("could not get approved domain: %w", err)
	}
	if d == nil {
		r.ApprovedDomainID = domain.DomainID{}

		return nil
	}
	if d.State == domain.DomainStateReady {
		logger.Warn(ctx, "keeping approved domain that is already ready",
			zap.String("domain", d.Name), zap.String("requestID", r.ID.String()))

		return nil
	}
	if _, err := tx.DeleteDomain(ctx, d.ID); err != nil {
		return fmt.Errorf("could not delete approved domain: %w", err)
	}
	r.ApprovedDomainID = domain.DomainID{}

	return nil
}
