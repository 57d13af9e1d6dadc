package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// exec runs a statement on tx when one is provided, otherwise on the pool.
// Lets single repository methods participate in caller-managed transactions.
func exec(ctx context.Context, pool *pgxpool.Pool, tx pgx.Tx, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return pool.Exec(ctx, sql, args...)
}

// queryRow is the query-returning counterpart of exec
func queryRow(ctx context.Context, pool *pgxpool.Pool, tx pgx.Tx, sql string, args ...any) pgx.Row {
	if tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return pool.QueryRow(ctx, sql, args...)
}
