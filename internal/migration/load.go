package migration

import (
	"context"
	"fmt"

	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/metrics"
	"registrar/pkg/storage"

	"go.uber.org/zap"
)

// Options are the flags shared by the migration commands.
type Options struct {
	// Directory holds the input files.
	Directory string
	// Separator delimits columns; zero means DefaultSeparator.
	Separator rune
	// Limit stops after that many domain contact rows; zero reads all.
	Limit int
	// ResetTable deletes all transition domains before loading.
	ResetTable bool
	// DryRun computes the outcome without writing anything.
	DryRun bool

	// File names; empty values use the defaults.
	DomainContactsFile string
	ContactsFile       string
	StatusesFile       string
	DomainsFile        string
	AdditionalFile     string
	AgenciesFile       string
	OrganizationsFile  string
	AuthoritiesFile    string
}

func (o Options) sep() rune {
	if o.Separator == 0 {
		return DefaultSeparator
	}

	return o.Separator
}

func (o Options) path(name, fallback string) string {
	if name == "" {
		name = fallback
	}

	return filePath(o.Directory, name)
}

// LoadSummary counts the outcome of LoadTransitionDomains.
type LoadSummary struct {
	Parsed          int
	Created         int
	Updated         int
	Duplicates      int
	MissingContacts int
	Malformed       int
}

// Migrator runs the legacy data migration against a storage.
type Migrator struct {
	storage  storage.Storage
	recorder *metrics.Recorder
	opts     Options
}

func New(st storage.Storage, recorder *metrics.Recorder, opts Options) *Migrator {
	return &Migrator{storage: st, recorder: recorder, opts: opts}
}

type orgLookup struct {
	additional    map[string]additionalInfo
	agencies      map[string][]string
	organizations map[string][]string
	authorities   map[string][]string
}

func (m *Migrator) readLookups(ctx context.Context) (orgLookup, error) {
	var l orgLookup
	sep := m.opts.sep()

	rows, err := readOptional(ctx, m.opts.path(m.opts.AdditionalFile, FileAdditional), sep)
	if err != nil {
		return l, err
	}
	l.additional = parseAdditional(rows)

	if rows, err = readOptional(ctx, m.opts.path(m.opts.AgenciesFile, FileAgencies), sep); err != nil {
		return l, err
	}
	l.agencies = keyed(rows)

	if rows, err = readOptional(ctx, m.opts.path(m.opts.OrganizationsFile, FileOrganizations), sep); err != nil {
		return l, err
	}
	l.organizations = keyed(rows)

	if rows, err = readOptional(ctx, m.opts.path(m.opts.AuthoritiesFile, FileAuthorities), sep); err != nil {
		return l, err
	}
	l.authorities = keyed(rows)

	return l, nil
}

// apply fills the organization fields of td from the adhoc files.
func (l orgLookup) apply(td *domain.TransitionDomain) {
	info, ok := l.additional[td.DomainName]
	if !ok {
		return
	}
	orgType, federal := parseDomainType(info.DomainType)
	td.OrganizationType = string(orgType)
	td.FederalType = string(federal)

	if auth, ok := l.authorities[info.AuthorityID]; ok {
		// authority_id | first | middle | last | email | phone | agency | address
		if agency, ok := l.agencies[column(auth, 6)]; ok {
			td.FederalAgency = column(agency, 1)
		}
	}
	if org, ok := l.organizations[info.OrgID]; ok {
		td.OrganizationName = column(org, 1)
		if td.City == "" {
			td.City = column(org, 2)
			td.StateTerritory = column(org, 3)
			td.Zipcode = column(org, 4)
		}
	}
}

// LoadTransitionDomains joins the escrow files into transition domain rows,
// one per (username, domain name). Rows already stored are updated.
func (m *Migrator) LoadTransitionDomains(ctx context.Context) (LoadSummary, error) {
	var sum LoadSummary
	sep := m.opts.sep()

	contactRows, err := readFile(m.opts.path(m.opts.ContactsFile, FileContacts), sep)
	if err != nil {
		return sum, err
	}
	domainContactRows, err := readFile(m.opts.path(m.opts.DomainContactsFile, FileDomainContacts), sep)
	if err != nil {
		return sum, err
	}
	statusRows, err := readFile(m.opts.path(m.opts.StatusesFile, FileDomainStatuses), sep)
	if err != nil {
		return sum, err
	}
	escrowRows, err := readOptional(ctx, m.opts.path(m.opts.DomainsFile, FileDomains), sep)
	if err != nil {
		return sum, err
	}
	lookups, err := m.readLookups(ctx)
	if err != nil {
		return sum, err
	}

	contacts, bad := parseContacts(contactRows)
	sum.Malformed += bad
	links, bad := parseDomainContacts(domainContactRows)
	sum.Malformed += bad
	statuses, bad := parseStatuses(statusRows)
	sum.Malformed += bad
	escrow, bad := parseEscrowDomains(escrowRows)
	sum.Malformed += bad

	if m.opts.ResetTable && !m.opts.DryRun {
		n, err := m.storage.DeleteTransitionDomains(ctx)
		if err != nil {
			return sum, fmt.Errorf("could not reset transition domains: %w", err)
		}
		logger.Info(ctx, "transition domains reset", zap.Int64("deleted", n))
	}

	seen := make(map[[2]string]bool, len(links))
	for i, link := range links {
		if m.opts.Limit > 0 && i >= m.opts.Limit {
			break
		}
		sum.Parsed++

		contact, ok := contacts[link.UserID]
		if !ok || contact.Email == "" {
			sum.MissingContacts++
			logger.Warn(ctx, "no contact for domain contact row",
				zap.String("domain", link.DomainName), zap.String("userID", link.UserID))

			continue
		}
		key := [2]string{contact.Email, link.DomainName}
		if seen[key] {
			sum.Duplicates++
			logger.Debug(ctx, "duplicate transition domain",
				zap.String("username", contact.Email), zap.String("domain", link.DomainName))

			continue
		}
		seen[key] = true

		status, ok := statuses[link.DomainName]
		if !ok {
			logger.Debug(ctx, "no status for domain, assuming ready", zap.String("domain", link.DomainName))
			status = domain.TransitionDomainStatusReady
		}
		td := domain.TransitionDomain{
			Username:          contact.Email,
			DomainName:        link.DomainName,
			Status:            status,
			EPPCreationDate:   escrow[link.DomainName].Created,
			EPPExpirationDate: escrow[link.DomainName].Expiration,
			FirstName:         contact.FirstName,
			MiddleName:        contact.MiddleName,
			LastName:          contact.LastName,
			Title:             contact.Title,
			Email:             contact.Email,
			Phone:             contact.Phone,
			AddressLine:       contact.Address,
			City:              contact.City,
			StateTerritory:    contact.State,
			Zipcode:           contact.Zipcode,
		}
		lookups.apply(&td)

		if m.opts.DryRun {
			sum.Created++

			continue
		}
		_, created, err := m.storage.UpsertTransitionDomain(ctx, td)
		if err != nil {
			return sum, fmt.Errorf("could not store transition domain %s: %w", td.DomainName, err)
		}
		if created {
			sum.Created++
		} else {
			sum.Updated++
		}
		logger.Debug(ctx, "transition domain stored",
			zap.String("username", td.Username), zap.String("domain", td.DomainName), zap.Bool("created", created))
	}

	m.recorder.RowsLoaded(ctx, "load_transition_domain", "transition_domains", int64(sum.Created+sum.Updated))
	logger.Info(ctx, "transition domains loaded",
		zap.Int("parsed", sum.Parsed), zap.Int("created", sum.Created), zap.Int("updated", sum.Updated),
		zap.Int("duplicates", sum.Duplicates), zap.Int("missingContacts", sum.MissingContacts),
		zap.Int("malformed", sum.Malformed), zap.Bool("dryRun", m.opts.DryRun))

	return sum, nil
}
