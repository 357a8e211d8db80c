// Package main provides the CLI entrypoint for the registrar.
// It wires subcommands (serve, migrate, jwt, data migrations and table
// maintenance), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strings"

	"registrar/internal/config"
	"registrar/pkg/logger"
	"registrar/pkg/storage"
	"registrar/pkg/storage/memory"
	"registrar/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getStorage opens the configured storage backend. The memory backend loses
// everything on exit and only makes sense for local runs.
func getStorage(ctx context.Context, cfg *config.Config, opts ...memory.Option) (storage.Storage, *postgres.PgSQL,
	func()) {
	if cfg.Database.Driver == config.DatabaseDriverMemory {
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")

		return memory.New(opts...), nil, func() {}
	}
	pgsql, closeStrg := getPostgres(ctx, cfg)

	return pgsql, pgsql, closeStrg
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("config file %s not found, reading environment only", path)

		return config.LoadEnv()
	}

	return config.Load(path)
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "registrar",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(nopWriter{})
	configPath := flags.String("c", "config.yml", "The config file path")
	_ = flags.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		JWTCommand(cfg),
	)
	rootCmd.AddCommand(migrationCommands(cfg)...)
	rootCmd.AddCommand(tableCommands(cfg)...)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs keeps only the -c/--config flag so the standard flag package
// does not trip over the subcommand flags.
func configArgs(args []string) []string {
	for i, a := range args {
		if a == "-c" || a == "--config" {
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}

			return nil
		}
		for _, prefix := range []string{"-c=", "--config="} {
			if v, ok := strings.CutPrefix(a, prefix); ok {
				return []string{"-c", v}
			}
		}
	}

	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
