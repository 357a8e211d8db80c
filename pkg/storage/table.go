package storage

import "context"

// Tables lists the exportable tables in dependency order: a table only
// references tables listed before it. Cleaning walks the list backwards.
var Tables = []string{ //nolint: gochecknoglobals
	"users",
	"contacts",
	"portfolios",
	"suborganizations",
	"user_portfolio_permissions",
	"portfolio_invitations",
	"domains",
	"domain_requests",
	"domain_information",
	"user_domain_roles",
	"domain_invitations",
	"transition_domains",
}

// TableStorage gives untyped access to whole tables for bulk export and
// import. Values travel as text; an empty value stands for NULL on export and
// for the column default on import.
type TableStorage interface {
	// ReadTable returns the column names and every row of the table.
	ReadTable(ctx context.Context, table string) (columns []string, rows [][]string, err error)
	// WriteTable inserts rows, skipping rows that collide with existing keys.
	// It returns how many rows were inserted.
	WriteTable(ctx context.Context, table string, columns []string, rows [][]string) (int64, error)
	// ClearTable deletes every row and returns how many were removed.
	ClearTable(ctx context.Context, table string) (int64, error)
}
