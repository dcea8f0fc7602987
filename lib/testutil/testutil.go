package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"leetdeck/lib/telemetry"

	_ "modernc.org/sqlite"
)

type SetupParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type SetupResult struct {
	DB *sql.DB
}

func Setup(t testing.TB, params SetupParams) (SetupResult, func()) {
	cleanup := telemetry.SetupForTesting(fmt.Sprintf("test:%s", params.Name))

	if params.DbSchema == "" {
		return SetupResult{}, cleanup
	}

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return SetupResult{
		DB: sqlite,
	}, cleanup
}
