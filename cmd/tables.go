package main

import (
	"context"
	"errors"
	"fmt"

	"registrar/internal/config"
	"registrar/internal/tables"
	"registrar/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func tableCommand(cfg *config.Config, use, short string,
	run func(ctx context.Context, m *tables.Manager) (any, error)) *cobra.Command {
	var opts tables.Options
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithFields(cmd.Context(), zap.String("command", use))
			if cfg.Database.Driver == config.DatabaseDriverMemory {
				return errors.New("table commands need the postgres driver")
			}
			pgsql, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			summary, err := run(ctx, tables.New(pgsql, nil, opts))
			if err != nil {
				logger.Error(ctx, "table command failed", zap.Error(err))

				return err
			}
			fmt.Printf("%s: %v\n", use, summary) //nolint: forbidigo

			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Directory, "directory", tables.DefaultDirectory, "Directory of the CSV files")
	cmd.Flags().StringSliceVar(&opts.Tables, "tables", nil, "Tables to handle, all when empty")

	return cmd
}

func tableCommands(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		tableCommand(cfg, "export_tables", "Exports every table to a CSV file",
			func(ctx context.Context, m *tables.Manager) (any, error) { return m.Export(ctx) }),
		tableCommand(cfg, "import_tables", "Imports the CSV files written by export_tables",
			func(ctx context.Context, m *tables.Manager) (any, error) { return m.Import(ctx) }),
		tableCommand(cfg, "clean_tables", "Deletes every row of the tables",
			func(ctx context.Context, m *tables.Manager) (any, error) { return m.Clean(ctx, cfg.Environment) }),
	}
}
