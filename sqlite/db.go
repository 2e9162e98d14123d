// Package sqlite implements todo's Database and TokenStore interfaces
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var Migrations embed.FS

type database struct {
	conn *sql.DB
}

var _ todo.Database = (*database)(nil)

// Open opens the sqlite database at url, creating parent directories of a
// plain file path.
func Open(url string) (*database, error) {
	if url != ":memory:" && !strings.HasPrefix(url, "file:") {
		if err := os.MkdirAll(path.Dir(url), 0o700); err != nil {
			return nil, err
		}
	}
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return &database{
		conn: conn,
	}, nil
}

func (db *database) Migrate(migrations fs.FS) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (db *database) DB() *sql.DB {
	return db.conn
}

func (db *database) Close() error {
	return db.conn.Close()
}
