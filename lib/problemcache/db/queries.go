package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const getProblem = `
SELECT record, expires_at FROM problem WHERE slug = ?
`

type GetProblemRow struct {
	Record    []byte
	ExpiresAt int64
}

func (q *Queries) GetProblem(ctx context.Context, slug string) (GetProblemRow, error) {
	row := q.db.QueryRowContext(ctx, getProblem, slug)
	var out GetProblemRow
	err := row.Scan(&out.Record, &out.ExpiresAt)
	return out, err
}

const putProblem = `
INSERT INTO problem (slug, record, expires_at)
VALUES (?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET record = excluded.record, expires_at = excluded.expires_at
`

type PutProblemParams struct {
	Slug      string
	Record    []byte
	ExpiresAt int64
}

func (q *Queries) PutProblem(ctx context.Context, arg PutProblemParams) error {
	_, err := q.db.ExecContext(ctx, putProblem, arg.Slug, arg.Record, arg.ExpiresAt)
	return err
}

const deleteProblem = `
DELETE FROM problem WHERE slug = ?
`

func (q *Queries) DeleteProblem(ctx context.Context, slug string) error {
	_, err := q.db.ExecContext(ctx, deleteProblem, slug)
	return err
}

const pruneExpired = `
DELETE FROM problem WHERE expires_at <= ?
`

func (q *Queries) PruneExpired(ctx context.Context, now int64) error {
	_, err := q.db.ExecContext(ctx, pruneExpired, now)
	return err
}
