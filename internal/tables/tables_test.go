package tables_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"registrar/internal/tables"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

type table struct {
	columns []string
	rows    [][]string
}

type fakeTables struct {
	mu      sync.Mutex
	data    map[string]table
	cleared []string
	failOn  string
}

func (f *fakeTables) ReadTable(_ context.Context, name string) ([]string, [][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == f.failOn {
		return nil, nil, errors.New("boom")
	}
	t := f.data[name]

	return t.columns, t.rows, nil
}

func (f *fakeTables) WriteTable(_ context.Context, name string, columns []string, rows [][]string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.data[name]
	t.columns = columns
	t.rows = append(t.rows, rows...)
	f.data[name] = t

	return int64(len(rows)), nil
}

func (f *fakeTables) ClearTable(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, name)
	n := int64(len(f.data[name].rows))
	delete(f.data, name)

	return n, nil
}

var _ storage.TableStorage = (*fakeTables)(nil)

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "dump")
	src := &fakeTables{data: map[string]table{
		"users":   {columns: []string{"id", "email"}, rows: [][]string{{"1", "a@city.gov"}, {"2", "b,c@city.gov"}}},
		"domains": {columns: []string{"id", "name"}, rows: [][]string{{"9", "city.gov"}}},
	}}

	counts, err := tables.New(src, nil, tables.Options{Directory: dir}).Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts["users"])
	require.Equal(t, 1, counts["domains"])
	require.Len(t, counts, len(storage.Tables))

	raw, err := os.ReadFile(filepath.Join(dir, "users.csv"))
	require.NoError(t, err)
	require.Equal(t, "id,email\n1,a@city.gov\n2,\"b,c@city.gov\"\n", string(raw))

	// only users and domains carry rows; drop the empty dumps to exercise skipping
	for _, name := range storage.Tables {
		if name != "users" && name != "domains" {
			require.NoError(t, os.Remove(filepath.Join(dir, name+".csv")))
		}
	}

	dst := &fakeTables{data: map[string]table{}}
	inserted, err := tables.New(dst, nil, tables.Options{Directory: dir}).Import(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"users": 2, "domains": 1}, inserted)
	require.Equal(t, src.data["users"], dst.data["users"])
}

func TestExport_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := tables.New(&fakeTables{data: map[string]table{}}, nil,
		tables.Options{Directory: t.TempDir(), Tables: []string{"nope"}}).Export(ctx)
	require.ErrorIs(t, err, tables.ErrUnknownTable)

	_, err = tables.New(&fakeTables{data: map[string]table{}, failOn: "domains"}, nil,
		tables.Options{Directory: t.TempDir()}).Export(ctx)
	require.ErrorContains(t, err, "boom")
}

func TestImport_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), nil, 0o600))

	_, err := tables.New(&fakeTables{data: map[string]table{}}, nil,
		tables.Options{Directory: dir, Tables: []string{"users"}}).Import(context.Background())
	require.ErrorContains(t, err, "no header row")
}

func TestClean(t *testing.T) {
	ctx := context.Background()
	st := &fakeTables{data: map[string]table{
		"users":   {rows: [][]string{{"1"}}},
		"domains": {rows: [][]string{{"1"}, {"2"}}},
	}}
	m := tables.New(st, nil, tables.Options{Tables: []string{"domains", "users"}})

	_, err := m.Clean(ctx, logger.ProductionEnvironment)
	require.ErrorIs(t, err, tables.ErrProduction)
	require.Equal(t, serrors.ErrForbidden, serrors.KindOf(err))
	require.Empty(t, st.cleared)

	deleted, err := m.Clean(ctx, logger.DevelopmentEnvironment)
	require.NoError(t, err)
	require.Equal(t, []string{"domains", "users"}, st.cleared)
	require.Equal(t, map[string]int64{"domains": 2, "users": 1}, deleted)
}
