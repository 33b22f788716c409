// ABOUTME: Connection handling and schema management for the directory backend.
// ABOUTME: Opens SQLite or Postgres pools and applies tables and the tag view.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/libdir/internal/config"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// schema takes the dialect's id default expression.
const schema = `
CREATE TABLE IF NOT EXISTS libraries (
    id TEXT PRIMARY KEY DEFAULT %s,
    name TEXT NOT NULL,
    slug TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    framework TEXT NOT NULL DEFAULT '',
    website_url TEXT NOT NULL DEFAULT '',
    logo_url TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS libraries_created_at_idx ON libraries (created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS libraries_slug_idx ON libraries (slug);

CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS library_tags (
    library_id TEXT NOT NULL REFERENCES libraries(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (library_id, tag_id)
);
`

const sqliteView = `
CREATE VIEW IF NOT EXISTS library_with_tags AS
SELECT l.id, l.name, l.slug, l.description, l.framework, l.website_url, l.logo_url, l.created_at,
    COALESCE((
        SELECT json_group_array(t.name)
        FROM library_tags lt JOIN tags t ON t.id = lt.tag_id
        WHERE lt.library_id = l.id
    ), '[]') AS tags
FROM libraries l;
`

const postgresView = `
CREATE OR REPLACE VIEW library_with_tags AS
SELECT l.id, l.name, l.slug, l.description, l.framework, l.website_url, l.logo_url, l.created_at,
    COALESCE(ARRAY(
        SELECT t.name
        FROM library_tags lt JOIN tags t ON t.id = lt.tag_id
        WHERE lt.library_id = l.id
        ORDER BY t.name
    ), ARRAY[]::text[]) AS tags
FROM libraries l;
`

// ErrNotConfigured is returned by helpers called on a nil connection.
var ErrNotConfigured = errors.New("storage is not configured")

// Conn is a pool bound to the dialect it speaks.
type Conn struct {
	DB      *sql.DB
	Dialect Dialect
}

func (c *Conn) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func (c *Conn) rebind(query string) string {
	return c.Dialect.Rebind(query)
}

// Backend holds the read and write pools. Either may be nil when that path is disabled.
type Backend struct {
	Read  *Conn
	Write *Conn
}

func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	if b.Read != nil {
		errs = append(errs, b.Read.Close())
	}
	if b.Write != nil && b.Write != b.Read {
		errs = append(errs, b.Write.Close())
	}
	return errors.Join(errs...)
}

// OpenBackend opens the pools that cfg enables. It returns a nil Backend when both are disabled.
func OpenBackend(cfg config.Config) (*Backend, error) {
	if !cfg.ReadEnabled() && !cfg.WriteEnabled() {
		return nil, nil
	}

	dialect, err := DialectFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if dialect.Name == SQLite.Name || hasUser(cfg.DatabaseURL) {
		conn, err := Open(cfg.DatabaseURL, config.Credentials{})
		if err != nil {
			return nil, err
		}
		b := &Backend{Write: conn}
		if cfg.ReadEnabled() {
			b.Read = conn
		}
		return b, nil
	}

	b := &Backend{}
	if cfg.ReadEnabled() {
		if b.Read, err = Open(cfg.DatabaseURL, cfg.ReadCredentials()); err != nil {
			return nil, err
		}
	}
	if cfg.WriteEnabled() {
		if b.Write, err = Open(cfg.DatabaseURL, cfg.WriteCredentials()); err != nil {
			_ = b.Close()
			return nil, err
		}
	}
	return b, nil
}

// DialectFor picks the dialect from the URL scheme. Anything that is not Postgres is a SQLite path.
func DialectFor(rawURL string) (Dialect, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Dialect{}, errors.New("database url is empty")
	}
	if strings.HasPrefix(rawURL, "postgres://") || strings.HasPrefix(rawURL, "postgresql://") {
		return Postgres, nil
	}
	return SQLite, nil
}

// Open opens a pool for rawURL. For Postgres URLs without a user, creds become the user and password.
func Open(rawURL string, creds config.Credentials) (*Conn, error) {
	dialect, err := DialectFor(rawURL)
	if err != nil {
		return nil, err
	}

	var dsn string
	if dialect.Name == Postgres.Name {
		dsn, err = postgresDSN(rawURL, creds)
	} else {
		if err := registerSQLiteFunctions(); err != nil {
			return nil, fmt.Errorf("register sqlite functions: %w", err)
		}
		dsn, err = sqliteDSN(rawURL)
	}
	if err != nil {
		return nil, err
	}

	pool, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Conn{DB: pool, Dialect: dialect}, nil
}

// Migrate creates the tables and, when withView is set, the library_with_tags view.
func Migrate(ctx context.Context, c *Conn, withView bool) error {
	if c == nil {
		return ErrNotConfigured
	}
	if _, err := c.DB.ExecContext(ctx, fmt.Sprintf(schema, c.Dialect.idDefault)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if withView {
		if _, err := c.DB.ExecContext(ctx, c.Dialect.view); err != nil {
			return fmt.Errorf("create view: %w", err)
		}
	}
	return nil
}

func sqliteDSN(rawURL string) (string, error) {
	path := strings.TrimPrefix(rawURL, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}
	if path == "" {
		return "", errors.New("sqlite path is empty")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("create data directory: %w", err)
		}
	}

	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if query != "" {
		pragmas = query + "&" + pragmas
	}
	return path + "?" + pragmas, nil
}

func postgresDSN(rawURL string, creds config.Credentials) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if u.User == nil && creds.Role != "" {
		if creds.Key != "" {
			u.User = url.UserPassword(creds.Role, creds.Key)
		} else {
			u.User = url.User(creds.Role)
		}
	}
	return u.String(), nil
}

func hasUser(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && u.User != nil && u.User.Username() != ""
}

func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "libdir", "libdir.db")
}
