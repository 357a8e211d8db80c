package migration

import (
	"context"
	"fmt"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/storage"

	"go.uber.org/zap"
)

// TransferSummary counts the outcome of TransferTransitionDomains.
type TransferSummary struct {
	Processed          int
	DomainsCreated     int
	DomainsUpdated     int
	InformationCreated int
	InvitationsCreated int
	Skipped            int
	Failed             int
}

// TransferTransitionDomains turns unprocessed transition domains into
// domains, information records and invitations for their usernames. Each
// row is transferred in its own transaction; failed rows stay unprocessed.
func (m *Migrator) TransferTransitionDomains(ctx context.Context) (TransferSummary, error) {
	var sum TransferSummary

	rows, err := m.storage.TransitionDomains(ctx, storage.TransitionDomainFilter{OnlyUnprocessed: true})
	if err != nil {
		return sum, fmt.Errorf("could not list transition domains: %w", err)
	}

	for i, td := range rows {
		if m.opts.Limit > 0 && i >= m.opts.Limit {
			break
		}
		rowCtx := logger.WithFields(ctx, zap.String("domain", td.DomainName), zap.String("username", td.Username))
		if !strings.HasSuffix(td.DomainName, "."+domain.TopLevelDomain) {
			sum.Skipped++
			logger.Warn(rowCtx, "transition domain is not a .gov name, skipping")

			continue
		}
		if m.opts.DryRun {
			sum.Processed++
			logger.Debug(rowCtx, "would transfer transition domain")

			continue
		}

		var res transferResult
		err := m.storage.WithTx(rowCtx, func(tx storage.AllStorage) error {
			var err error
			res, err = transferOne(rowCtx, tx, td)

			return err
		})
		if err != nil {
			sum.Failed++
			logger.Error(rowCtx, "could not transfer transition domain", zap.Error(err))

			continue
		}
		sum.Processed++
		if res.domainCreated {
			sum.DomainsCreated++
		} else if res.domainUpdated {
			sum.DomainsUpdated++
		}
		if res.informationCreated {
			sum.InformationCreated++
		}
		if res.invitationCreated {
			sum.InvitationsCreated++
		}
	}

	m.recorder.RowsLoaded(ctx, "transfer_transition_domains_to_domains", "domains", int64(sum.DomainsCreated))
	m.recorder.RowsLoaded(ctx, "transfer_transition_domains_to_domains", "domain_invitations",
		int64(sum.InvitationsCreated))
	logger.Info(ctx, "transition domains transferred",
		zap.Int("processed", sum.Processed), zap.Int("domainsCreated", sum.DomainsCreated),
		zap.Int("domainsUpdated", sum.DomainsUpdated), zap.Int("informationCreated", sum.InformationCreated),
		zap.Int("invitationsCreated", sum.InvitationsCreated), zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed), zap.Bool("dryRun", m.opts.DryRun))

	return sum, nil
}

type transferResult struct {
	domainCreated      bool
	domainUpdated      bool
	informationCreated bool
	invitationCreated  bool
}

func transferOne(ctx context.Context, tx storage.AllStorage, td domain.TransitionDomain) (transferResult, error) {
	var res transferResult
	state := td.Status.DomainState()

	d, err := tx.DomainByName(ctx, td.DomainName)
	if err != nil {
		return res, fmt.Errorf("could not get domain: %w", err)
	}
	switch {
	case d == nil:
		d, err = tx.StoreDomain(ctx, domain.Domain{
			Name:           td.DomainName,
			State:          state,
			ExpirationDate: td.EPPExpirationDate,
		})
		if err != nil {
			return res, fmt.Errorf("could not store domain: %w", err)
		}
		res.domainCreated = true
	case d.State != state || (!td.EPPExpirationDate.IsZero() && !d.ExpirationDate.Equal(td.EPPExpirationDate)):
		d.State = state
		if !td.EPPExpirationDate.IsZero() {
			d.ExpirationDate = td.EPPExpirationDate
		}
		if d, err = tx.UpdateDomain(ctx, *d); err != nil {
			return res, fmt.Errorf("could not update domain: %w", err)
		}
		res.domainUpdated = true
	}

	info, err := tx.DomainInformationByDomain(ctx, d.ID)
	if err != nil {
		return res, fmt.Errorf("could not get domain information: %w", err)
	}
	if info == nil {
		_, err = tx.StoreDomainInformation(ctx, domain.DomainInformation{
			DomainID: d.ID,
			Organization: domain.Organization{
				Type:             domain.OrganizationType(td.OrganizationType),
				FederalType:      domain.FederalType(td.FederalType),
				FederalAgency:    td.FederalAgency,
				OrganizationName: td.OrganizationName,
				AddressLine1:     td.AddressLine,
				City:             td.City,
				StateTerritory:   td.StateTerritory,
				Zipcode:          td.Zipcode,
			},
		})
		if err != nil {
			return res, fmt.Errorf("could not store domain information: %w", err)
		}
		res.informationCreated = true
	}

	inserted, err := tx.StoreDomainInvitations(ctx, domain.DomainInvitation{
		Email:    td.Username,
		DomainID: d.ID,
		Status:   domain.InvitationStatusInvited,
	})
	if err != nil {
		return res, fmt.Errorf("could not store domain invitation: %w", err)
	}
	res.invitationCreated = len(inserted) > 0

	if err := tx.MarkTransitionDomainsProcessed(ctx, td.ID); err != nil {
		return res, fmt.Errorf("could not mark transition domain processed: %w", err)
	}

	return res, nil
}
