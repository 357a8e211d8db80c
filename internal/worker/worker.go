// Package worker runs the registrar's background jobs on River.
package worker

import (
	"context"
	"fmt"

	"registrar/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const defaultMaxWorkers = 10

// Options configure the River client.
type Options struct {
	// MaxWorkers bounds the jobs worked concurrently on the default queue.
	MaxWorkers int
}

// Start registers the workers and starts a River client on the pool.
func Start(ctx context.Context, dbPool *pgxpool.Pool, email *SendEmailWorker,
	opts Options) (*river.Client[pgx.Tx], error) {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = defaultMaxWorkers
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, email)

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		Logger:  logger.Slog(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
