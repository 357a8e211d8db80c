package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs. The insert participates in the
// surrounding transaction when the backend supports it, so a job becomes
// visible to workers only after the data it refers to is committed.
//
// Example:
//
//	ok, err := storage.AddJob(ctx, worker.SendEmailArgs{To: "someone@example.gov"}, nil)
type JobStorage interface {
	// AddJob enqueues a new job. It reports false when a unique job with the
	// same arguments already exists and the insert was skipped.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
