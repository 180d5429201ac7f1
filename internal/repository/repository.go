package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dinhviettung/citizen-registry/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// sqlStateNoDataFound is raised by procedures that find nothing to act on.
const sqlStateNoDataFound = "P0002"

func isNoDataFound(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateNoDataFound
}

// callProcedure runs a set-returning stored function and returns its first row, or nil
// when it produced none.
func callProcedure(ctx context.Context, db *sql.DB, name string, args ...any) (domain.Record, error) {
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("SELECT * FROM %s(%s)", name, strings.Join(placeholders, ", "))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return firstRecord(rows)
}

func firstRecord(rows *sql.Rows) (domain.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		return nil, rows.Err()
	}

	values := make([]any, len(columns))
	targets := make([]any, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	record := make(domain.Record, len(columns))
	for i, column := range columns {
		if raw, ok := values[i].([]byte); ok {
			record[column] = string(raw)
			continue
		}
		record[column] = values[i]
	}
	return record, rows.Err()
}
