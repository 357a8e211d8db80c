package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const writeBatchSize = 500

func checkTable(table string) error {
	if !slices.Contains(storage.Tables, table) {
		return fmt.Errorf("unknown table %q", table)
	}

	return nil
}

func (p *PgSQL) ReadTable(ctx context.Context, table string) ([]string, [][]string, error) {
	if err := checkTable(table); err != nil {
		return nil, nil, err
	}
	query, _, err := p.Builder.From(table).Order(goqu.L("1").Asc()).ToSQL()
	if err != nil {
		return nil, nil, fmt.Errorf("could not build select for %s: %w", table, err)
	}

	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read columns of %s: %w", table, err)
	}

	var out [][]string
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("could not scan row of %s: %w", table, err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = v.String
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("could not iterate rows of %s: %w", table, err)
	}

	return columns, out, nil
}

func (p *PgSQL) WriteTable(ctx context.Context, table string, columns []string, rows [][]string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}

	var inserted int64
	for start := 0; start < len(rows); start += writeBatchSize {
		end := min(start+writeBatchSize, len(rows))
		vals := make([][]any, 0, end-start)
		for _, row := range rows[start:end] {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("row of %s has %d values, expected %d", table, len(row), len(columns))
			}
			v := make([]any, len(row))
			for i, s := range row {
				if s == "" {
					v[i] = goqu.L("DEFAULT")
				} else {
					v[i] = s
				}
			}
			vals = append(vals, v)
		}

		res, err := p.Builder.Insert(table).
			Cols(cols...).
			Vals(vals...).
			OnConflict(goqu.DoNothing()).
			Executor().ExecContext(ctx)
		if err != nil {
			return inserted, fmt.Errorf("could not write table %s: %w", table, err)
		}
		inserted += affected(res)
	}

	return inserted, nil
}

func (p *PgSQL) ClearTable(ctx context.Context, table string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	res, err := p.Builder.Delete(table).Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not clear table %s: %w", table, err)
	}

	return affected(res), nil
}
