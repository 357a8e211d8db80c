package migration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"registrar/internal/migration"
	"registrar/internal/worker"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
	"registrar/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

var escrowFiles = map[string]string{ //nolint: gochecknoglobals
	migration.FileContacts: `u1|Jo|Q|Mayor|Mayor|JO@City.gov|555-0100|1 Main St|Springfield|IL|62701
u2|Al||Clerk|Clerk|al@city.gov|555-0101|2 Main St|Springfield|IL|62701
bad
`,
	migration.FileDomainContacts: `CITY.GOV|u1|admin
city.gov|u1|tech
county.gov|u2|admin
county.gov|u1|admin
ghost.gov|u9|admin
`,
	migration.FileDomainStatuses: `city.gov|ok
county.gov|serverHold
county.gov|ok
`,
	migration.FileDomains:       "city.gov|2010-01-01|2025-06-30\n",
	migration.FileAdditional:    "city.gov|City|a1|o1\ncounty.gov|Federal - Executive|a1|o1\n",
	migration.FileAgencies:      "ag1|Department of Examples|true\n",
	migration.FileAuthorities:   "a1|Ann||Auth|ann@agency.gov|555-0102|ag1|3 Main St\n",
	migration.FileOrganizations: "o1|City of Springfield|Springfield|IL|62701\n",
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return dir
}

func TestLoadTransitionDomains(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	dir := writeFiles(t, escrowFiles)
	m := migration.New(st, nil, migration.Options{Directory: dir})

	sum, err := m.LoadTransitionDomains(ctx)
	require.NoError(t, err)
	require.Equal(t, migration.LoadSummary{
		Parsed: 5, Created: 3, Duplicates: 1, MissingContacts: 1, Malformed: 1,
	}, sum)

	rows, err := st.TransitionDomains(ctx, storage.TransitionDomainFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "al@city.gov", rows[0].Username)
	require.Equal(t, "county.gov", rows[0].DomainName)
	require.Equal(t, domain.TransitionDomainStatusOnHold, rows[0].Status)
	require.Equal(t, "federal", rows[0].OrganizationType)
	require.Equal(t, "executive", rows[0].FederalType)
	require.Equal(t, "Department of Examples", rows[0].FederalAgency)

	city := rows[1]
	require.Equal(t, "jo@city.gov", city.Username)
	require.Equal(t, "city.gov", city.DomainName)
	require.Equal(t, domain.TransitionDomainStatusReady, city.Status)
	require.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), city.EPPExpirationDate)
	require.Equal(t, "city", city.OrganizationType)
	require.Equal(t, "City of Springfield", city.OrganizationName)
	require.Equal(t, "Jo", city.FirstName)
	require.Equal(t, "Springfield", city.City)

	t.Run("reload updates rows", func(t *testing.T) {
		sum, err := m.LoadTransitionDomains(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, sum.Created)
		require.Equal(t, 3, sum.Updated)
	})

	t.Run("reset table", func(t *testing.T) {
		reset := migration.New(st, nil, migration.Options{Directory: dir, ResetTable: true, Limit: 2})
		sum, err := reset.LoadTransitionDomains(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, sum.Parsed)
		require.Equal(t, 1, sum.Created)
		require.Equal(t, 1, sum.Duplicates)

		rows, err := st.TransitionDomains(ctx, storage.TransitionDomainFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}

func TestLoadTransitionDomains_DryRunAndErrors(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	sum, err := migration.New(st, nil, migration.Options{Directory: writeFiles(t, escrowFiles), DryRun: true}).
		LoadTransitionDomains(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, sum.Created)
	rows, err := st.TransitionDomains(ctx, storage.TransitionDomainFilter{})
	require.NoError(t, err)
	require.Empty(t, rows)

	_, err = migration.New(st, nil, migration.Options{Directory: t.TempDir()}).LoadTransitionDomains(ctx)
	require.ErrorIs(t, err, migration.ErrMissingFile)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	semicolon := map[string]string{
		migration.FileContacts:       "u1;Jo;;Mayor;Mayor;jo@city.gov\n",
		migration.FileDomainContacts: "city.gov;u1;admin\n",
		migration.FileDomainStatuses: "city.gov;clientHold\n",
	}
	sum, err = migration.New(st, nil, migration.Options{Directory: writeFiles(t, semicolon), Separator: ';'}).
		LoadTransitionDomains(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Created)
	rows, err = st.TransitionDomains(ctx, storage.TransitionDomainFilter{})
	require.NoError(t, err)
	require.Equal(t, domain.TransitionDomainStatusOnHold, rows[0].Status)
}

func TestTransferTransitionDomains(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := migration.New(st, nil, migration.Options{Directory: writeFiles(t, escrowFiles)})
	_, err := m.LoadTransitionDomains(ctx)
	require.NoError(t, err)

	sum, err := m.TransferTransitionDomains(ctx)
	require.NoError(t, err)
	require.Equal(t, migration.TransferSummary{
		Processed: 3, DomainsCreated: 2, InformationCreated: 2, InvitationsCreated: 3,
	}, sum)

	city, err := st.DomainByName(ctx, "city.gov")
	require.NoError(t, err)
	require.NotNil(t, city)
	require.Equal(t, domain.DomainStateReady, city.State)
	require.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), city.ExpirationDate)

	county, err := st.DomainByName(ctx, "county.gov")
	require.NoError(t, err)
	require.Equal(t, domain.DomainStateOnHold, county.State)

	info, err := st.DomainInformationByDomain(ctx, county.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrganizationTypeFederal, info.Type)
	require.Equal(t, domain.FederalTypeExecutive, info.FederalType)
	require.Equal(t, "Department of Examples", info.FederalAgency)

	invitations, err := st.DomainInvitations(ctx, county.ID)
	require.NoError(t, err)
	require.Len(t, invitations, 2)

	unprocessed, err := st.TransitionDomains(ctx, storage.TransitionDomainFilter{OnlyUnprocessed: true})
	require.NoError(t, err)
	require.Empty(t, unprocessed)

	sum, err = m.TransferTransitionDomains(ctx)
	require.NoError(t, err)
	require.Equal(t, migration.TransferSummary{}, sum)
}

func TestSendDomainInvitations(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	dir := writeFiles(t, escrowFiles)
	_, err := migration.New(st, nil, migration.Options{Directory: dir}).LoadTransitionDomains(ctx)
	require.NoError(t, err)
	emails := migration.EmailOptions{BaseURL: "https://manage.get.gov", MaxAttempts: 3}

	t.Run("dry run", func(t *testing.T) {
		sum, err := migration.New(st, nil, migration.Options{DryRun: true}).SendDomainInvitations(ctx, emails)
		require.NoError(t, err)
		require.Equal(t, []migration.InvitationEmail{
			{Username: "al@city.gov", Domains: []string{"county.gov"}},
			{Username: "jo@city.gov", Domains: []string{"city.gov", "county.gov"}},
		}, sum.Emails)
		require.Zero(t, sum.Queued)
		require.Empty(t, st.Jobs())
	})

	t.Run("queues one email per user", func(t *testing.T) {
		m := migration.New(st, nil, migration.Options{})
		sum, err := m.SendDomainInvitations(ctx, emails)
		require.NoError(t, err)
		require.Equal(t, 2, sum.Queued)

		jobs := st.Jobs()
		require.Len(t, jobs, 2)
		args, ok := jobs[1].Args.(worker.SendEmailArgs)
		require.True(t, ok)
		require.Equal(t, []string{"jo@city.gov"}, args.To)
		require.Contains(t, args.Body, "city.gov")
		require.Contains(t, args.Body, "county.gov")
		require.Contains(t, args.Body, "https://manage.get.gov/")
		require.True(t, strings.Contains(args.Body, "domains"))

		sum, err = m.SendDomainInvitations(ctx, emails)
		require.NoError(t, err)
		require.Empty(t, sum.Emails)
		require.Len(t, st.Jobs(), 2)
	})
}

func TestLoadDomainInvitations(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	_, err := st.StoreDomain(ctx, domain.Domain{Name: "city.gov", State: domain.DomainStateReady})
	require.NoError(t, err)

	m := migration.New(st, nil, migration.Options{Directory: writeFiles(t, escrowFiles)})
	sum, err := m.LoadDomainInvitations(ctx)
	require.NoError(t, err)
	require.Equal(t, migration.InvitationLoadSummary{
		Parsed: 5, Created: 1, MissingContacts: 1, MissingDomains: 2, Malformed: 1,
	}, sum)
}

func TestLoadDomainsData(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	_, err := st.StoreDomain(ctx, domain.Domain{Name: "city.gov", State: domain.DomainStateUnknown})
	require.NoError(t, err)

	dir := writeFiles(t, map[string]string{
		"domains.txt": "city.gov|ready|2025-01-31\nnew.gov|on hold|\nbad.gov|flying|2025-01-01\n|ready|\n",
	})
	sum, err := migration.New(st, nil, migration.Options{Directory: dir}).LoadDomainsData(ctx, "domains.txt")
	require.NoError(t, err)
	require.Equal(t, migration.DomainsSummary{Parsed: 4, Created: 1, Updated: 1, Malformed: 2}, sum)

	city, err := st.DomainByName(ctx, "city.gov")
	require.NoError(t, err)
	require.Equal(t, domain.DomainStateReady, city.State)
	require.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), city.ExpirationDate)

	held, err := st.DomainByName(ctx, "new.gov")
	require.NoError(t, err)
	require.Equal(t, domain.DomainStateOnHold, held.State)
	require.True(t, held.ExpirationDate.IsZero())
}

func TestRunAll(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := migration.New(st, nil, migration.Options{Directory: writeFiles(t, escrowFiles)})

	sum, err := m.RunAll(ctx, true, migration.EmailOptions{BaseURL: "https://manage.get.gov"})
	require.NoError(t, err)
	require.Equal(t, 3, sum.Load.Created)
	require.Equal(t, 3, sum.Transfer.Processed)
	require.NotNil(t, sum.Send)
	require.Equal(t, 2, sum.Send.Queued)

	sum, err = m.RunAll(ctx, false, migration.EmailOptions{})
	require.NoError(t, err)
	require.Nil(t, sum.Send)
	require.Equal(t, 3, sum.Load.Updated)
}
