package patterns

import (
	// Registers the "sqlite3" and "postgres" database/sql drivers used by
	// OpenSQLite and OpenPostgresDSN.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)
