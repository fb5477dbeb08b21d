package patterns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Common errors returned by the SQL-backed pattern stores.
var (
	ErrNotFound = errors.New("pattern not found")
	ErrConflict = errors.New("duplicate (kind, term) pair")
)

// DB is the subset of *sql.DB the store needs; satisfied by both
// github.com/mattn/go-sqlite3 and github.com/lib/pq connections.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLStore is a pattern-library backing store over a generic SQL
// connection. OpenSQLite and OpenPostgres construct one bound to the
// appropriate driver; the query text itself is identical across both,
// only the placeholder style differs (sqlite3 takes "?", lib/pq takes
// "$1"-style), so Upsert renders its own placeholders per dialect.
type SQLStore struct {
	db       DB
	numbered bool // true for Postgres ("$1"), false for SQLite ("?")
}

// OpenSQLite opens (and, on a fresh file, schema-initializes) a SQLite
// pattern store.
func OpenSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// OpenPostgres wraps an already-open Postgres connection as a pattern
// store. The caller is responsible for having applied migrations
// (schemaDDL is SQLite-flavored and is not run here).
func OpenPostgres(db DB) *SQLStore {
	return &SQLStore{db: db, numbered: true}
}

// OpenPostgresDSN opens a Postgres pattern store from a connection string.
func OpenPostgresDSN(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return OpenPostgres(db), nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS patterns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	term TEXT NOT NULL,
	aliases TEXT NOT NULL DEFAULT '',
	regex TEXT NOT NULL DEFAULT '',
	priority INTEGER NOT NULL DEFAULT 0,
	format_type TEXT NOT NULL DEFAULT '',
	active BOOLEAN NOT NULL DEFAULT 1,
	UNIQUE(kind, term)
);
`

// LoadAll reads every pattern row and returns a validated, ready-to-serve
// in-memory snapshot. Called at startup and on every hot-reload tick.
func (s *SQLStore) LoadAll(ctx context.Context) (*MemoryLibrary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, term, aliases, regex, priority, format_type, active FROM patterns`)
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()

	var raw []Pattern
	for rows.Next() {
		var kind, term, aliasesCSV, regex, formatType string
		var priority int
		var active bool
		if err := rows.Scan(&kind, &term, &aliasesCSV, &regex, &priority, &formatType, &active); err != nil {
			return nil, fmt.Errorf("scan pattern row: %w", err)
		}
		raw = append(raw, Pattern{
			Kind:       Kind(kind),
			Term:       term,
			Aliases:    splitAliases(aliasesCSV),
			Regex:      regex,
			Priority:   priority,
			FormatType: FormatType(formatType),
			Active:     active,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pattern rows: %w", err)
	}

	return NewMemoryLibrary(raw)
}

// Upsert inserts or replaces a single pattern row, identified by its
// (kind, term) key.
func (s *SQLStore) Upsert(ctx context.Context, p Pattern) error {
	query := `INSERT INTO patterns (kind, term, aliases, regex, priority, format_type, active)
		 VALUES (` + s.placeholders(7) + `)
		 ON CONFLICT(kind, term) DO UPDATE SET
			aliases=excluded.aliases, regex=excluded.regex, priority=excluded.priority,
			format_type=excluded.format_type, active=excluded.active`

	_, err := s.db.ExecContext(ctx, query,
		string(p.Kind), p.Term, joinAliases(p.Aliases), p.Regex, p.Priority, string(p.FormatType), p.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert pattern %s/%s: %w", p.Kind, p.Term, err)
	}
	return nil
}

// placeholders renders n SQL bind placeholders in the store's dialect:
// "$1, $2, ..." for Postgres, "?, ?, ..." for SQLite.
func (s *SQLStore) placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if s.numbered {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}

func splitAliases(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == '|' {
			if i > start {
				out = append(out, csv[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func joinAliases(aliases []string) string {
	out := ""
	for i, a := range aliases {
		if i > 0 {
			out += "|"
		}
		out += a
	}
	return out
}
