package sqliteutil

import (
	"database/sql"
)

// OpenDB opens a sqlite database at path and applies the given
// schema. Reopening an existing database requires the schema to be
// idempotent (CREATE TABLE IF NOT EXISTS and friends).
func OpenDB(schema, path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(schema)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
