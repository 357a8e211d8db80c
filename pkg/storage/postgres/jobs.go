package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"registrar/pkg/storage"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
)

var (
	inserterOnce sync.Once              //nolint: gochecknoglobals
	inserter     *river.Client[*sql.Tx] //nolint: gochecknoglobals
	inserterErr  error                  //nolint: gochecknoglobals
)

// insertClient returns an insert-only River client. It has no workers and no
// queues, so it never fetches jobs; only InsertTx is used on it.
func insertClient() (*river.Client[*sql.Tx], error) {
	inserterOnce.Do(func() {
		inserter, inserterErr = river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
	})
	if inserterErr != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", inserterErr)
	}

	return inserter, nil
}

// AddJob enqueues a River job through the current database handle. Inside a
// transaction the job is inserted with it and becomes visible on commit.
// Outside a transaction a short one is opened for the insert.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	client, err := insertClient()
	if err != nil {
		return false, err
	}

	insert := func(tx *sql.Tx) (bool, error) {
		res, err := client.InsertTx(ctx, tx, args, opts)
		if err != nil {
			return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
		}

		return !res.UniqueSkippedAsDuplicate, nil
	}

	if tx, ok := p.DB.(*sql.Tx); ok {
		return insert(tx)
	}

	var inserted bool
	err = p.WithTx(ctx, func(s storage.AllStorage) error {
		var err error
		inserted, err = insert(s.(*PgSQL).DB.(*sql.Tx))

		return err
	})

	return inserted, err
}

