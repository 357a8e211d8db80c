package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/riverqueue/river"
)

// AddJob records the job. Unique options are honored by args and period,
// like River does for the database backed queue. Outside a transaction the
// job handler runs before AddJob returns.
func (m *Memory) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	insertOpts := river.InsertOpts{}
	if withOpts, ok := args.(river.JobArgsWithInsertOpts); ok {
		insertOpts = withOpts.InsertOpts()
	}
	if opts != nil {
		insertOpts = *opts
	}

	key := ""
	if insertOpts.UniqueOpts.ByArgs {
		encoded, err := json.Marshal(args)
		if err != nil {
			return false, fmt.Errorf("could not encode %s job args: %w", args.Kind(), err)
		}
		key = args.Kind() + ":" + string(encoded)
	}

	job := Job{Kind: args.Kind(), Args: args, Opts: insertOpts, UniqueKey: key, InsertedAt: m.timestamp()}
	inserted := false
	_ = m.write(func(st *state) error {
		if key != "" {
			for _, existing := range st.jobs {
				if existing.UniqueKey != key {
					continue
				}
				period := insertOpts.UniqueOpts.ByPeriod
				if period == 0 || job.InsertedAt.Sub(existing.InsertedAt) < period {
					return nil
				}
			}
		}
		st.jobs = append(st.jobs, job)
		if m.parent != nil {
			m.pending = append(m.pending, job)
		}
		inserted = true

		return nil
	})

	if inserted && m.parent == nil {
		m.dispatch(ctx, []Job{job})
	}

	return inserted, nil
}

func (m *Memory) dispatch(ctx context.Context, jobs []Job) {
	if m.onJob == nil {
		return
	}
	for _, job := range jobs {
		m.onJob(ctx, job)
	}
}

// Jobs returns all jobs added so far, oldest first.
func (m *Memory) Jobs() []Job {
	var out []Job
	m.read(func(st *state) {
		out = append([]Job(nil), st.jobs...)
	})

	return out
}
