// Package tables dumps whole tables to CSV files and loads them back. It is
// used to copy data between environments.
package tables

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"registrar/pkg/logger"
	"registrar/pkg/metrics"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDirectory receives exports and feeds imports when none is given.
const DefaultDirectory = "tmp"

var (
	// ErrProduction is returned when cleaning is attempted in production.
	ErrProduction = serrors.With(serrors.ErrForbidden, "tables cannot be cleaned in production")
	// ErrUnknownTable is returned for a table that is not exportable.
	ErrUnknownTable = serrors.With(serrors.ErrBadRequest, "unknown table")
)

// Options select the directory and the tables to work on.
type Options struct {
	Directory string
	// Tables restricts the run; empty means storage.Tables.
	Tables []string
	// Concurrency bounds the parallel table reads of an export.
	Concurrency int
}

// Manager runs table exports, imports and cleanups.
type Manager struct {
	storage  storage.TableStorage
	recorder *metrics.Recorder
	opts     Options
}

func New(st storage.TableStorage, recorder *metrics.Recorder, opts Options) *Manager {
	if opts.Directory == "" {
		opts.Directory = DefaultDirectory
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	return &Manager{storage: st, recorder: recorder, opts: opts}
}

// tables returns the selected tables in dependency order.
func (m *Manager) tables() ([]string, error) {
	if len(m.opts.Tables) == 0 {
		return storage.Tables, nil
	}
	for _, t := range m.opts.Tables {
		if !slices.Contains(storage.Tables, t) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, t)
		}
	}
	out := make([]string, 0, len(m.opts.Tables))
	for _, t := range storage.Tables {
		if slices.Contains(m.opts.Tables, t) {
			out = append(out, t)
		}
	}

	return out, nil
}

func (m *Manager) file(table string) string {
	return filepath.Join(m.opts.Directory, table+".csv")
}

// Export writes one CSV file per table, header row first.
func (m *Manager) Export(ctx context.Context) (map[string]int, error) {
	tables, err := m.tables()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.opts.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", m.opts.Directory, err)
	}

	counts := make([]int, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)
	for i, table := range tables {
		g.Go(func() error {
			columns, rows, err := m.storage.ReadTable(gctx, table)
			if err != nil {
				return err
			}
			if err := writeCSV(m.file(table), columns, rows); err != nil {
				return err
			}
			counts[i] = len(rows)
			logger.Info(gctx, "table exported", zap.String("table", table), zap.Int("rows", len(rows)))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(tables))
	for i, table := range tables {
		out[table] = counts[i]
		m.recorder.RowsLoaded(ctx, "export_tables", table, int64(counts[i]))
	}

	return out, nil
}

// Import loads every table file found in the directory, parents first.
// Missing files are skipped.
func (m *Manager) Import(ctx context.Context) (map[string]int64, error) {
	tables, err := m.tables()
	if err != nil {
		return nil, err
	}

	out := map[string]int64{}
	for _, table := range tables {
		columns, rows, err := readCSV(m.file(table))
		if errors.Is(err, os.ErrNotExist) {
			logger.Info(ctx, "no file for table, skipping", zap.String("table", table))

			continue
		}
		if err != nil {
			return out, err
		}
		n, err := m.storage.WriteTable(ctx, table, columns, rows)
		if err != nil {
			return out, fmt.Errorf("could not import %s: %w", table, err)
		}
		out[table] = n
		m.recorder.RowsLoaded(ctx, "import_tables", table, n)
		logger.Info(ctx, "table imported", zap.String("table", table),
			zap.Int("rows", len(rows)), zap.Int64("inserted", n))
	}

	return out, nil
}

// Clean empties the tables, children first. It refuses to run in production.
func (m *Manager) Clean(ctx context.Context, environment string) (map[string]int64, error) {
	if environment == logger.ProductionEnvironment {
		return nil, ErrProduction
	}
	tables, err := m.tables()
	if err != nil {
		return nil, err
	}

	out := map[string]int64{}
	for _, table := range slices.Backward(tables) {
		n, err := m.storage.ClearTable(ctx, table)
		if err != nil {
			return out, fmt.Errorf("could not clean %s: %w", table, err)
		}
		out[table] = n
		logger.Info(ctx, "table cleaned", zap.String("table", table), zap.Int64("deleted", n))
	}

	return out, nil
}

func writeCSV(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		_ = f.Close()

		return fmt.Errorf("could not write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()

		return fmt.Errorf("could not write %s: %w", path, err)
	}

	return f.Close()
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", path)
	}

	return records[0], records[1:], nil
}
