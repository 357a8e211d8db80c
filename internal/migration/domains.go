package migration

import (
	"context"
	"fmt"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/logger"

	"go.uber.org/zap"
)

// DomainsSummary counts the outcome of LoadDomainsData.
type DomainsSummary struct {
	Parsed    int
	Created   int
	Updated   int
	Malformed int
}

// LoadDomainsData creates or updates domains from a name|state|expiration
// file. Unknown states and unparsable dates make a row malformed.
func (m *Migrator) LoadDomainsData(ctx context.Context, file string) (DomainsSummary, error) {
	var sum DomainsSummary

	rows, err := readFile(filePath(m.opts.Directory, file), m.opts.sep())
	if err != nil {
		return sum, err
	}

	for i, rec := range rows {
		if m.opts.Limit > 0 && i >= m.opts.Limit {
			break
		}
		sum.Parsed++

		name := normalizeDomainName(column(rec, 0))
		state := domain.DomainState(strings.ToLower(column(rec, 1)))
		expiration, dateOK := parseDate(column(rec, 2))
		if name == "" || !state.Valid() || (column(rec, 2) != "" && !dateOK) {
			sum.Malformed++
			logger.Warn(ctx, "malformed domain row, skipping", zap.Int("line", i+1), zap.Strings("row", rec))

			continue
		}
		if m.opts.DryRun {
			continue
		}

		existing, err := m.storage.DomainByName(ctx, name)
		if err != nil {
			return sum, fmt.Errorf("could not get domain %s: %w", name, err)
		}
		if existing == nil {
			if _, err := m.storage.StoreDomain(ctx, domain.Domain{
				Name: name, State: state, ExpirationDate: expiration,
			}); err != nil {
				return sum, fmt.Errorf("could not store domain %s: %w", name, err)
			}
			sum.Created++

			continue
		}
		existing.State = state
		if dateOK {
			existing.ExpirationDate = expiration
		}
		if _, err := m.storage.UpdateDomain(ctx, *existing); err != nil {
			return sum, fmt.Errorf("could not update domain %s: %w", name, err)
		}
		sum.Updated++
	}

	m.recorder.RowsLoaded(ctx, "load_domains_data", "domains", int64(sum.Created+sum.Updated))
	logger.Info(ctx, "domains loaded",
		zap.Int("parsed", sum.Parsed), zap.Int("created", sum.Created), zap.Int("updated", sum.Updated),
		zap.Int("malformed", sum.Malformed), zap.Bool("dryRun", m.opts.DryRun))

	return sum, nil
}

// MasterSummary collects the summaries of a full migration run.
type MasterSummary struct {
	Load     LoadSummary
	Transfer TransferSummary
	Send     *SendSummary
}

// RunAll loads the escrow files, transfers the transition domains and,
// when sendEmails is set, queues the invitation emails.
func (m *Migrator) RunAll(ctx context.Context, sendEmails bool, emails EmailOptions) (MasterSummary, error) {
	var sum MasterSummary
	var err error

	if sum.Load, err = m.LoadTransitionDomains(ctx); err != nil {
		return sum, fmt.Errorf("could not load transition domains: %w", err)
	}
	if sum.Transfer, err = m.TransferTransitionDomains(ctx); err != nil {
		return sum, fmt.Errorf("could not transfer transition domains: %w", err)
	}
	if !sendEmails {
		return sum, nil
	}
	send, err := m.SendDomainInvitations(ctx, emails)
	if err != nil {
		return sum, fmt.Errorf("could not send domain invitations: %w", err)
	}
	sum.Send = &send

	return sum, nil
}
