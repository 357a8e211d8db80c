// Package migration moves domains and their managers out of the legacy
// registrar's escrow exports. Files are read into transition domain rows
// first, which are then transferred into domains and invitations.
package migration

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"

	"go.uber.org/zap"
)

// Default names of the legacy escrow and adhoc files.
const (
	FileDomainContacts = "escrow_domain_contacts.daily.gov.GOV.txt"
	FileContacts       = "escrow_contacts.daily.gov.GOV.txt"
	FileDomainStatuses = "escrow_domain_statuses.daily.gov.GOV.txt"
	FileDomains        = "escrow_domains.daily.gov.GOV.txt"
	FileAdditional     = "domain_additional.csv"
	FileAgencies       = "agency.adhoc.dotgov.txt"
	FileOrganizations  = "organization.adhoc.dotgov.txt"
	FileAuthorities    = "authority.adhoc.dotgov.txt"
)

// DefaultSeparator delimits the columns of every escrow file.
const DefaultSeparator = '|'

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006"} //nolint: gochecknoglobals

// ErrMissingFile is returned when a required input file does not exist.
var ErrMissingFile = serrors.With(serrors.ErrNotFound, "missing input file")

// readFile returns the records of a delimited file. Rows of a different
// width are kept; the typed parsers decide what they need.
func readFile(path string, sep rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}

		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var out [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", path, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		out = append(out, rec)
	}

	return out, nil
}

// readOptional is readFile for inputs that may be absent.
func readOptional(ctx context.Context, path string, sep rune) ([][]string, error) {
	rows, err := readFile(path, sep)
	if errors.Is(err, ErrMissingFile) {
		logger.Info(ctx, "optional file not found, skipping", zap.String("path", path))

		return nil, nil
	}

	return rows, err
}

func column(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}

	return ""
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Today(t), true
		}
	}

	return time.Time{}, false
}

func normalizeDomainName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func filePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(dir, name)
}

type escrowContact struct {
	UserID     string
	FirstName  string
	MiddleName string
	LastName   string
	Title      string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	Zipcode    string
}

func parseContacts(rows [][]string) (map[string]escrowContact, int) {
	out := make(map[string]escrowContact, len(rows))
	bad := 0
	for _, rec := range rows {
		if len(rec) < 6 || rec[0] == "" {
			bad++

			continue
		}
		out[rec[0]] = escrowContact{
			UserID:     rec[0],
			FirstName:  column(rec, 1),
			MiddleName: column(rec, 2),
			LastName:   column(rec, 3),
			Title:      column(rec, 4),
			Email:      domain.NormalizeEmail(column(rec, 5)),
			Phone:      column(rec, 6),
			Address:    column(rec, 7),
			City:       column(rec, 8),
			State:      column(rec, 9),
			Zipcode:    column(rec, 10),
		}
	}

	return out, bad
}

type domainContact struct {
	DomainName  string
	UserID      string
	ContactType string
}

func parseDomainContacts(rows [][]string) ([]domainContact, int) {
	out := make([]domainContact, 0, len(rows))
	bad := 0
	for _, rec := range rows {
		if len(rec) < 2 || rec[0] == "" || rec[1] == "" {
			bad++

			continue
		}
		out = append(out, domainContact{
			DomainName:  normalizeDomainName(rec[0]),
			UserID:      rec[1],
			ContactType: strings.ToLower(column(rec, 2)),
		})
	}

	return out, bad
}

// parseStatus maps a registry status onto the transition status. Both hold
// flavors put the domain on hold; everything else is ready.
func parseStatus(s string) domain.TransitionDomainStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serverhold", "clienthold":
		return domain.TransitionDomainStatusOnHold
	default:
		return domain.TransitionDomainStatusReady
	}
}

func parseStatuses(rows [][]string) (map[string]domain.TransitionDomainStatus, int) {
	out := make(map[string]domain.TransitionDomainStatus, len(rows))
	bad := 0
	for _, rec := range rows {
		if len(rec) < 2 || rec[0] == "" {
			bad++

			continue
		}
		name := normalizeDomainName(rec[0])
		st := parseStatus(rec[1])
		// a domain carries several statuses; any hold wins
		if prev, ok := out[name]; ok && prev == domain.TransitionDomainStatusOnHold {
			continue
		}
		out[name] = st
	}

	return out, bad
}

type escrowDomain struct {
	Created    time.Time
	Expiration time.Time
}

func parseEscrowDomains(rows [][]string) (map[string]escrowDomain, int) {
	out := make(map[string]escrowDomain, len(rows))
	bad := 0
	for _, rec := range rows {
		if len(rec) < 3 || rec[0] == "" {
			bad++

			continue
		}
		created, _ := parseDate(rec[1])
		expiration, ok := parseDate(rec[2])
		if !ok {
			bad++

			continue
		}
		out[normalizeDomainName(rec[0])] = escrowDomain{Created: created, Expiration: expiration}
	}

	return out, bad
}

type additionalInfo struct {
	DomainType  string
	AuthorityID string
	OrgID       string
}

func parseAdditional(rows [][]string) map[string]additionalInfo {
	out := make(map[string]additionalInfo, len(rows))
	for _, rec := range rows {
		if len(rec) < 2 || rec[0] == "" {
			continue
		}
		out[normalizeDomainName(rec[0])] = additionalInfo{
			DomainType:  column(rec, 1),
			AuthorityID: column(rec, 2),
			OrgID:       column(rec, 3),
		}
	}

	return out
}

// keyed indexes rows by their first column and keeps the remaining values.
func keyed(rows [][]string) map[string][]string {
	out := make(map[string][]string, len(rows))
	for _, rec := range rows {
		if len(rec) > 1 && rec[0] != "" {
			out[rec[0]] = rec
		}
	}

	return out
}

// parseDomainType splits a legacy type like "Federal - Executive" into the
// organization type and the federal branch.
func parseDomainType(s string) (domain.OrganizationType, domain.FederalType) {
	head, tail, _ := strings.Cut(s, "-")
	orgType := domain.OrganizationType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(head)), " ", "_"))
	if orgType == "state" || orgType == "state_or_territory" {
		orgType = domain.OrganizationTypeStateOrTerritory
	}
	if !orgType.Valid() {
		orgType = ""
	}
	federal := domain.FederalType(strings.ToLower(strings.TrimSpace(tail)))
	if !federal.Valid() {
		federal = ""
	}

	return orgType, federal
}
