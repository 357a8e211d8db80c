package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"registrar/internal/config"
	"registrar/internal/migration"
	"registrar/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrationFlags are shared by every data migration command.
type migrationFlags struct {
	debug      bool
	limit      int
	resetTable bool
	dryRun     bool
	directory  string
	sep        string
	sendEmails bool
	file       string
}

func (f *migrationFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log every parsed row")
	cmd.Flags().IntVar(&f.limit, "limitParse", 0, "Stop after this many rows, 0 reads everything")
	cmd.Flags().BoolVar(&f.resetTable, "resetTable", false, "Delete all transition domains before loading")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().StringVar(&f.directory, "directory", "migrationdata", "Directory holding the input files")
	cmd.Flags().StringVar(&f.sep, "sep", string(migration.DefaultSeparator), "Column separator of the input files")
}

func (f *migrationFlags) options() (migration.Options, error) {
	sep, size := utf8.DecodeRuneInString(f.sep)
	if f.sep == "" || size != len(f.sep) {
		return migration.Options{}, fmt.Errorf("separator must be a single character, got %q", f.sep)
	}

	return migration.Options{
		Directory:  f.directory,
		Separator:  sep,
		Limit:      f.limit,
		ResetTable: f.resetTable,
		DryRun:     f.dryRun,
	}, nil
}

// migrationCommand builds a data migration subcommand around run, which
// returns the summary printed once the command finishes.
func migrationCommand(cfg *config.Config, use, short string,
	run func(ctx context.Context, m *migration.Migrator, f *migrationFlags) (any, error)) (*cobra.Command,
	*migrationFlags) {
	f := &migrationFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if f.debug {
				logger.EnableDebug()
			}
			ctx = logger.WithFields(ctx, zap.String("command", use))

			opts, err := f.options()
			if err != nil {
				return err
			}
			st, _, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			summary, err := run(ctx, migration.New(st, nil, opts), f)
			if err != nil {
				logger.Error(ctx, "migration failed", zap.Error(err))

				return err
			}
			fmt.Printf("%s: %+v\n", use, summary) //nolint: forbidigo

			return nil
		},
	}
	f.register(cmd)

	return cmd, f
}

func migrationCommands(cfg *config.Config) []*cobra.Command {
	emails := migration.EmailOptions{BaseURL: cfg.Registrar.BaseURL, MaxAttempts: cfg.Worker.MaxAttempts}

	load, _ := migrationCommand(cfg, "load_transition_domain",
		"Loads the escrow files into transition domains",
		func(ctx context.Context, m *migration.Migrator, _ *migrationFlags) (any, error) {
			return m.LoadTransitionDomains(ctx)
		})

	transfer, _ := migrationCommand(cfg, "transfer_transition_domains_to_domains",
		"Creates domains, domain information and invitations from transition domains",
		func(ctx context.Context, m *migration.Migrator, _ *migrationFlags) (any, error) {
			return m.TransferTransitionDomains(ctx)
		})

	send, _ := migrationCommand(cfg, "send_domain_invitations",
		"Queues one email per transition domain user listing their domains",
		func(ctx context.Context, m *migration.Migrator, f *migrationFlags) (any, error) {
			sum, err := m.SendDomainInvitations(ctx, emails)
			if err == nil && f.dryRun {
				for _, e := range sum.Emails {
					fmt.Printf("would email %s about %v\n", e.Username, e.Domains) //nolint: forbidigo
				}
			}

			return sum, err
		})

	invitations, _ := migrationCommand(cfg, "load_domain_invitations",
		"Invites escrow contacts to their existing domains",
		func(ctx context.Context, m *migration.Migrator, _ *migrationFlags) (any, error) {
			return m.LoadDomainInvitations(ctx)
		})

	domainsData, domainsFlags := migrationCommand(cfg, "load_domains_data",
		"Creates or updates domains from a name|state|expiration file",
		func(ctx context.Context, m *migration.Migrator, f *migrationFlags) (any, error) {
			return m.LoadDomainsData(ctx, f.file)
		})
	domainsData.Flags().StringVar(&domainsFlags.file, "file", "domains.txt", "Domains file, relative to --directory")

	master, masterFlags := migrationCommand(cfg, "master_domain_migrations",
		"Runs the load, transfer and optionally the invitation email steps",
		func(ctx context.Context, m *migration.Migrator, f *migrationFlags) (any, error) {
			return m.RunAll(ctx, f.sendEmails, emails)
		})
	master.Flags().BoolVar(&masterFlags.sendEmails, "sendEmails", false, "Queue the invitation emails")

	return []*cobra.Command{load, transfer, send, invitations, domainsData, master}
}
