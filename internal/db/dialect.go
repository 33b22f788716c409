// ABOUTME: SQL dialect differences between the SQLite and Postgres backends.
// ABOUTME: Covers placeholders, tag membership, id lists and the tags column.

package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

type Dialect struct {
	Name   string
	Driver string

	numbered  bool
	view      string
	idDefault string
	lower     string
}

var (
	SQLite = Dialect{
		Name:      "sqlite",
		Driver:    "sqlite",
		view:      sqliteView,
		idDefault: "(lower(hex(randomblob(16))))",
		lower:     foldFunc,
	}
	Postgres = Dialect{
		Name:      "postgres",
		Driver:    "postgres",
		numbered:  true,
		view:      postgresView,
		idDefault: "(gen_random_uuid()::text)",
		lower:     "LOWER",
	}
)

// foldFunc is a Unicode-aware replacement for SQLite's ASCII-only LOWER.
const foldFunc = "go_lower"

var (
	registerFold    sync.Once
	registerFoldErr error
)

func registerSQLiteFunctions() error {
	registerFold.Do(func() {
		registerFoldErr = sqlite.RegisterDeterministicScalarFunction(foldFunc, 1,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				switch v := args[0].(type) {
				case nil:
					return nil, nil
				case string:
					return strings.ToLower(v), nil
				case []byte:
					return strings.ToLower(string(v)), nil
				default:
					return v, nil
				}
			})
	})
	return registerFoldErr
}

// fold wraps expr in the dialect's Unicode lower-casing function.
func (d Dialect) fold(expr string) string {
	return d.lower + "(" + expr + ")"
}

// Rebind rewrites ? placeholders into the dialect's bind style.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// tagMember returns a predicate testing that the view's tags column holds the bound value.
func (d Dialect) tagMember() string {
	if d.numbered {
		return "tags @> ARRAY[?]::text[]"
	}
	return "EXISTS (SELECT 1 FROM json_each(tags) WHERE json_each.value = ?)"
}

// inList returns a predicate restricting column to ids, with its bind args.
func (d Dialect) inList(column string, ids []string) (string, []any) {
	if d.numbered {
		return column + " = ANY(?)", []any{pq.Array(ids)}
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return column + " IN (" + marks + ")", args
}

// tagsColumn is a scan destination for the view's embedded tag set.
type tagsColumn struct {
	numbered bool
	text     *string
	array    pq.StringArray
}

func (d Dialect) newTagsColumn() *tagsColumn {
	return &tagsColumn{numbered: d.numbered}
}

func (c *tagsColumn) Scan(src any) error {
	if c.numbered {
		return c.array.Scan(src)
	}
	switch v := src.(type) {
	case nil:
		c.text = nil
	case string:
		c.text = &v
	case []byte:
		s := string(v)
		c.text = &s
	default:
		return fmt.Errorf("tags column: unsupported type %T", src)
	}
	return nil
}

func (c *tagsColumn) Tags() ([]string, error) {
	if c.numbered {
		return []string(c.array), nil
	}
	if c.text == nil || *c.text == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*c.text), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}
