package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"registrar/internal/admin"
	"registrar/internal/api"
	"registrar/internal/api/handler/v1handler"
	"registrar/internal/config"
	"registrar/internal/domains"
	"registrar/internal/members"
	"registrar/internal/requests"
	"registrar/internal/users"
	"registrar/internal/wizard"
	"registrar/internal/worker"
	"registrar/pkg/logger"
	"registrar/pkg/mail"
	"registrar/pkg/metrics"
	"registrar/pkg/session"
	"registrar/pkg/storage"
	"registrar/pkg/storage/memory"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"riverqueue.com/riverui"
)

// emailsPerSecond stays under the default SES sending quota.
const emailsPerSecond = 10

func setupSender(ctx context.Context, cfg *config.Config) mail.Sender {
	if cfg.Email.Backend != config.EmailBackendSES {
		return mail.LogSender{}
	}
	sender, err := mail.NewSESSender(ctx, cfg.Email.AWSRegion, cfg.Email.From)
	if err != nil {
		logger.Fatal(ctx, "could not create ses sender", zap.Error(err))
	}

	return sender
}

func setupSessions(ctx context.Context, cfg *config.Config) (session.Store, func()) {
	if cfg.Redis.URL == "" {
		return session.NewMemory(cfg.Redis.SessionTTL), func() {}
	}
	store, err := session.NewRedis(ctx, session.RedisOptions{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		TTL:          cfg.Redis.SessionTTL,
	})
	if err != nil {
		logger.Fatal(ctx, "could not connect to redis", zap.Error(err))
	}

	return store, func() {
		logger.Info(ctx, "closing redis client...")
		if err := store.Close(); err != nil {
			logger.Warn(ctx, "could not close redis client", zap.Error(err))
		}
	}
}

// deliverInProcess sends the jobs queued on the memory storage directly,
// since there is no River client without a database.
func deliverInProcess(ctx context.Context, email *worker.SendEmailWorker) memory.JobHandler {
	return func(_ context.Context, job memory.Job) {
		args, ok := job.Args.(worker.SendEmailArgs)
		if !ok {
			logger.Warn(ctx, "no in-process handler for job", zap.String("kind", job.Kind))

			return
		}
		go func() {
			if err := email.Deliver(ctx, args); err != nil {
				logger.Error(ctx, "could not deliver email", zap.Strings("to", args.To), zap.Error(err))
			}
		}()
	}
}

func setupJobsUI(ctx context.Context, client *river.Client[pgx.Tx]) http.Handler {
	handler, err := riverui.NewHandler(&riverui.HandlerOpts{
		Endpoints: riverui.NewEndpoints(client, nil),
		Logger:    logger.Slog(ctx),
		Prefix:    api.JobsPrefix,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create job dashboard", zap.Error(err))
	}
	if err := handler.Start(ctx); err != nil {
		logger.Fatal(ctx, "could not start job dashboard", zap.Error(err))
	}

	return handler
}

func setupServices(cfg *config.Config, st storage.Storage, sessions session.Store,
	recorder *metrics.Recorder) v1handler.Deps {
	now := time.Now

	return v1handler.Deps{
		Users: users.New(st, now),
		Domains: domains.New(st, domains.Options{
			BaseURL:       cfg.Registrar.BaseURL,
			EmailAttempts: cfg.Worker.MaxAttempts,
			PageSize:      cfg.Registrar.PageSize,
			Now:           now,
		}),
		Requests: requests.New(st, sessions, recorder, requests.Options{
			BaseURL:       cfg.Registrar.BaseURL,
			EmailAttempts: cfg.Worker.MaxAttempts,
			PageSize:      cfg.Registrar.PageSize,
			Limits: wizard.Limits{
				MaxAlternativeDomains: cfg.Registrar.MaxAlternativeDomains,
				MaxOtherContacts:      cfg.Registrar.MaxOtherContacts,
			},
			Now: now,
		}),
		Members:  members.New(st, cfg.Registrar.PageSize),
		Admin:    admin.New(st, cfg.Registrar.PageSize, now),
		Recorder: recorder,
		Now:      now,
	}
}

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(ctx, deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the web server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			recorder, err := metrics.NewRecorder(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
			}

			emailWorker := worker.NewSendEmailWorker(setupSender(ctx, cfg), recorder, emailsPerSecond)

			st, pgsql, closeStrg := getStorage(ctx, cfg, memory.WithJobHandler(deliverInProcess(ctx, emailWorker)))
			defer closeStrg()

			sessions, closeSessions := setupSessions(ctx, cfg)
			defer closeSessions()

			deps := api.Deps{Deps: setupServices(cfg, st, sessions, recorder)}

			var riverClient *river.Client[pgx.Tx]
			if pgsql != nil {
				riverClient, err = worker.Start(ctx, pgsql.Pool, emailWorker, worker.Options{
					MaxWorkers: cfg.Worker.MaxWorkers,
				})
				if err != nil {
					logger.Fatal(ctx, "could not start workers", zap.Error(err))
				}
				deps.Jobs = setupJobsUI(ctx, riverClient)
			}

			stopWebserver := setupServer(ctx, cfg, deps)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			if riverClient != nil {
				logger.Info(shutdownCtx, "stopping workers...")
				if err := riverClient.Stop(shutdownCtx); err != nil {
					logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
				}
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
