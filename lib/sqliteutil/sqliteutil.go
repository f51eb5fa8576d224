package sqliteutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens a database at `path` and ensures `schema` has been applied.
// `path` may be ":memory:", a plain file path, or a libsql:// URL pointing
// at a remote replica.
func OpenDB(schema, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	var db *sql.DB
	var err error

	if strings.HasPrefix(path, "libsql://") {
		db, err = sql.Open("libsql", path)
		if err != nil {
			return nil, err
		}
	} else {
		if path != ":memory:" {
			_, statErr := os.Stat(path)
			if os.IsNotExist(statErr) {
				f, err := os.Create(path)
				if err != nil {
					return nil, err
				}
				f.Close()
			}
		}

		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, err
		}
		// see this stackoverflow post for information on why the following
		// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
		db.SetMaxOpenConns(1)
		if path != ":memory:" {
			_, err = db.Exec("PRAGMA journal_mode=WAL")
			if err != nil {
				return nil, err
			}
		}
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
