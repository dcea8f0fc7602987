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

const createCollection = `
INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')
`

type CreateCollectionParams struct {
	Crt    int64
	Mod    int64
	Scm    int64
	Conf   string
	Models string
	Decks  string
	Dconf  string
}

func (q *Queries) CreateCollection(ctx context.Context, arg CreateCollectionParams) error {
	_, err := q.db.ExecContext(ctx, createCollection,
		arg.Crt, arg.Mod, arg.Scm,
		arg.Conf, arg.Models, arg.Decks, arg.Dconf,
	)
	return err
}

const createNote = `
INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')
`

type CreateNoteParams struct {
	ID   int64
	Guid string
	Mid  int64
	Mod  int64
	Tags string
	Flds string
	Sfld string
	Csum int64
}

func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) error {
	_, err := q.db.ExecContext(ctx, createNote,
		arg.ID, arg.Guid, arg.Mid, arg.Mod,
		arg.Tags, arg.Flds, arg.Sfld, arg.Csum,
	)
	return err
}

const createCard = `
INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')
`

type CreateCardParams struct {
	ID  int64
	Nid int64
	Did int64
	Ord int64
	Mod int64
	Due int64
}

func (q *Queries) CreateCard(ctx context.Context, arg CreateCardParams) error {
	_, err := q.db.ExecContext(ctx, createCard,
		arg.ID, arg.Nid, arg.Did, arg.Ord, arg.Mod, arg.Due,
	)
	return err
}

const countNotes = `
SELECT count(*) FROM notes
`

func (q *Queries) CountNotes(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countNotes)
	var count int64
	err := row.Scan(&count)
	return count, err
}
