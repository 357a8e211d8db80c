package migration

import (
	"context"
	"fmt"
	"slices"

	"registrar/internal/worker"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/mail"
	"registrar/pkg/storage"

	"go.uber.org/zap"
)

// InvitationEmail is one user's transition email.
type InvitationEmail struct {
	Username string
	Domains  []string
}

// SendSummary counts the outcome of SendDomainInvitations.
type SendSummary struct {
	Emails []InvitationEmail
	Queued int
	Failed int
}

// EmailOptions configure the transition emails.
type EmailOptions struct {
	// BaseURL is linked from the email body.
	BaseURL     string
	MaxAttempts int
}

// SendDomainInvitations queues one email per username listing all its
// transition domains whose email was not sent yet, then marks them sent.
// A dry run only reports the emails it would queue.
func (m *Migrator) SendDomainInvitations(ctx context.Context, opts EmailOptions) (SendSummary, error) {
	var sum SendSummary

	rows, err := m.storage.TransitionDomains(ctx, storage.TransitionDomainFilter{OnlyEmailUnsent: true})
	if err != nil {
		return sum, fmt.Errorf("could not list transition domains: %w", err)
	}

	// rows arrive ordered by username
	var ids []domain.TransitionDomainID
	for i, td := range rows {
		n := len(sum.Emails)
		if n == 0 || sum.Emails[n-1].Username != td.Username {
			if m.opts.Limit > 0 && n == m.opts.Limit {
				break
			}
			sum.Emails = append(sum.Emails, InvitationEmail{Username: td.Username})
			n++
			ids = ids[:0]
		}
		sum.Emails[n-1].Domains = append(sum.Emails[n-1].Domains, td.DomainName)
		ids = append(ids, td.ID)

		last := i == len(rows)-1 || rows[i+1].Username != td.Username
		if !last || m.opts.DryRun {
			continue
		}
		if err := m.queueInvitation(ctx, opts, sum.Emails[n-1], slices.Clone(ids)); err != nil {
			sum.Failed++
			logger.Error(ctx, "could not queue transition email", zap.String("username", td.Username), zap.Error(err))

			continue
		}
		sum.Queued++
	}

	logger.Info(ctx, "transition emails handled",
		zap.Int("users", len(sum.Emails)), zap.Int("queued", sum.Queued), zap.Int("failed", sum.Failed),
		zap.Bool("dryRun", m.opts.DryRun))

	return sum, nil
}

func (m *Migrator) queueInvitation(ctx context.Context, opts EmailOptions, email InvitationEmail,
	ids []domain.TransitionDomainID) error {
	data := struct {
		Domains []string
		BaseURL string
	}{Domains: email.Domains, BaseURL: opts.BaseURL}

	return m.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := worker.EnqueueEmail(ctx, tx, opts.MaxAttempts, mail.TemplateTransitionDomains, data,
			email.Username); err != nil {
			return err
		}

		return tx.MarkTransitionDomainsEmailSent(ctx, ids...)
	})
}

// InvitationLoadSummary counts the outcome of LoadDomainInvitations.
type InvitationLoadSummary struct {
	Parsed          int
	Created         int
	MissingContacts int
	MissingDomains  int
	Malformed       int
}

// LoadDomainInvitations invites the contacts of the domain contacts file to
// the domains that already exist, skipping the transition domain staging.
func (m *Migrator) LoadDomainInvitations(ctx context.Context) (InvitationLoadSummary, error) {
	var sum InvitationLoadSummary
	sep := m.opts.sep()

	contactRows, err := readFile(m.opts.path(m.opts.ContactsFile, FileContacts), sep)
	if err != nil {
		return sum, err
	}
	linkRows, err := readFile(m.opts.path(m.opts.DomainContactsFile, FileDomainContacts), sep)
	if err != nil {
		return sum, err
	}
	contacts, bad := parseContacts(contactRows)
	sum.Malformed += bad
	links, bad := parseDomainContacts(linkRows)
	sum.Malformed += bad

	domainIDs := map[string]domain.DomainID{}
	var invitations []domain.DomainInvitation
	for i, link := range links {
		if m.opts.Limit > 0 && i >= m.opts.Limit {
			break
		}
		sum.Parsed++

		contact, ok := contacts[link.UserID]
		if !ok || contact.Email == "" {
			sum.MissingContacts++

			continue
		}
		id, ok := domainIDs[link.DomainName]
		if !ok {
			d, err := m.storage.DomainByName(ctx, link.DomainName)
			if err != nil {
				return sum, fmt.Errorf("could not get domain %s: %w", link.DomainName, err)
			}
			if d != nil {
				id = d.ID
			}
			domainIDs[link.DomainName] = id
		}
		if id.IsZero() {
			sum.MissingDomains++
			logger.Debug(ctx, "domain does not exist, skipping invitation", zap.String("domain", link.DomainName))

			continue
		}
		invitations = append(invitations, domain.DomainInvitation{
			Email:    contact.Email,
			DomainID: id,
			Status:   domain.InvitationStatusInvited,
		})
	}

	if m.opts.DryRun {
		sum.Created = len(invitations)

		return sum, nil
	}
	inserted, err := m.storage.StoreDomainInvitations(ctx, invitations...)
	if err != nil {
		return sum, fmt.Errorf("could not store domain invitations: %w", err)
	}
	sum.Created = len(inserted)

	m.recorder.RowsLoaded(ctx, "load_domain_invitations", "domain_invitations", int64(sum.Created))
	logger.Info(ctx, "domain invitations loaded",
		zap.Int("parsed", sum.Parsed), zap.Int("created", sum.Created),
		zap.Int("missingContacts", sum.MissingContacts), zap.Int("missingDomains", sum.MissingDomains),
		zap.Int("malformed", sum.Malformed))

	return sum, nil
}
