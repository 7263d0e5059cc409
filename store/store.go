package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a Store.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// ErrUnknownDriver is returned by Open for drivers other than sqlite and postgres.
var ErrUnknownDriver = errors.New("unknown database driver")

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Options selects and locates the backing database.
type Options struct {
	Driver Dialect
	// Path is the SQLite database file, or MemoryPath.
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// Store is the single handle a refresh holds for its whole run.
type Store struct {
	db      *sql.DB
	dialect Dialect
	path    string
}

// Open connects to the configured database and verifies it is reachable.
// The pool is pinned to one connection: there is exactly one writer, and
// SQLite session pragmas only apply to the connection that ran them.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch opts.Driver {
	case SQLite, "":
		if opts.Path == "" {
			return nil, errors.New("sqlite store requires a database path")
		}
		if opts.Path != MemoryPath {
			if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
				return nil, fmt.Errorf("error creating database directory: %w", err)
			}
		}
		opts.Driver = SQLite
		db, err = sql.Open("sqlite", opts.Path)
	case Postgres:
		db, err = sql.Open("postgres", opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening %s store: %w", opts.Driver, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s store: %w", opts.Driver, err)
	}

	if opts.Driver == SQLite {
		// Referential integrity is enforced by the importer's filter instead.
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
			db.Close()
			return nil, fmt.Errorf("error disabling foreign keys: %w", err)
		}
	}

	return &Store{db: db, dialect: opts.Driver, path: opts.Path}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the connection for schema management.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Path returns the SQLite file backing the store, if any.
func (s *Store) Path() string {
	return s.path
}

// UnitIDs returns the identifiers currently committed to institutions.
func (s *Store) UnitIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT unitid FROM institutions WHERE unitid IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("error querying institution ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning institution id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading institution ids: %w", err)
	}
	return ids, nil
}

// Append inserts rows into table inside a single transaction. Each row holds
// one value per entry in columns; nil values are stored as NULL.
func (s *Store) Append(ctx context.Context, table string, columns []string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.insertStatement(table, columns))
	if err != nil {
		return 0, fmt.Errorf("error preparing insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("error inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing %s: %w", table, err)
	}
	return len(rows), nil
}

func (s *Store) insertStatement(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = s.dialect.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))
}

// CountRows returns the number of rows in table.
func (s *Store) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return n, nil
}

// Size reports the on-disk footprint of the store in bytes. In-memory
// SQLite databases report zero.
func (s *Store) Size(ctx context.Context) (int64, error) {
	switch s.dialect {
	case Postgres:
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT pg_database_size(current_database())").Scan(&n); err != nil {
			return 0, fmt.Errorf("error reading database size: %w", err)
		}
		return n, nil
	default:
		if s.path == MemoryPath {
			return 0, nil
		}
		info, err := os.Stat(s.path)
		if err != nil {
			return 0, fmt.Errorf("error reading database size: %w", err)
		}
		return info.Size(), nil
	}
}
