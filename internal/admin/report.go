package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"registrar/internal/access"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
)

const reportDateLayout = "2006-01-02"

var reportHeader = []string{ //nolint: gochecknoglobals
	"Domain name",
	"Status",
	"Expiration date",
	"Domain type",
	"Agency",
	"Organization name",
	"City",
	"State",
	"Security contact email",
}

// domainType renders the organization type, with the federal branch when known.
func domainType(org domain.Organization) string {
	label := org.Type.Label()
	if org.Type == domain.OrganizationTypeFederal && org.FederalType != "" {
		label += " - " + org.FederalType.Label()
	}

	return label
}

func (a *admin) WriteReport(ctx context.Context, viewer domain.User, report Report, w io.Writer) error {
	if err := access.RequireStaff(viewer); err != nil {
		return err
	}
	if !report.Valid() {
		return serrors.With(serrors.ErrNotFound, "unknown report %q", report)
	}

	all, err := a.storage.ReportDomains(ctx)
	if err != nil {
		return fmt.Errorf("could not list domains: %w", err)
	}

	now := a.now()
	out := csv.NewWriter(w)
	if err := out.Write(reportHeader); err != nil {
		return fmt.Errorf("could not write report header: %w", err)
	}
	for _, d := range all {
		if d.State == domain.DomainStateDeleted {
			continue
		}
		org := d.Organization
		if report == ReportCurrentFederal && org.Type != domain.OrganizationTypeFederal {
			continue
		}

		expiration := ""
		if !d.ExpirationDate.IsZero() {
			expiration = d.ExpirationDate.Format(reportDateLayout)
		}
		if err := out.Write([]string{
			d.Name,
			d.StateDisplay(now),
			expiration,
			domainType(org),
			org.FederalAgency,
			org.OrganizationName,
			org.City,
			org.StateTerritory,
			d.SecurityContactEmail,
		}); err != nil {
			return fmt.Errorf("could not write report row: %w", err)
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}
