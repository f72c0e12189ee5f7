/*
 * Copyright (c) 2026 Paul Breen
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"fmt"
	"strings"

	"github.com/paul-breen/squelch/internal/errors"
)

// ReflectKind selects a class of metadata query.
type ReflectKind int

const (
	// ReflectRelations lists tables and views.
	ReflectRelations ReflectKind = iota
	// ReflectColumns describes the columns of one relation.
	ReflectColumns
	// ReflectIndexes lists indexes, optionally filtered to one relation.
	ReflectIndexes
)

// Dialect captures the per-backend differences the session needs: the
// registered driver name, the positional placeholder style, and the
// metadata queries behind the introspection commands.
type Dialect struct {
	Name   string
	Driver string

	// placeholder returns the text for the n-th (1-based) bind parameter.
	placeholder func(n int) string

	// reflect builds a metadata query for the given kind. filter is the
	// relation name for ReflectColumns and an optional relation name for
	// ReflectIndexes; it is bound as a parameter where the backend allows
	// it, otherwise quoted as an identifier.
	reflect func(kind ReflectKind, filter string) (query string, args []any, err error)
}

var postgresDialect = &Dialect{
	Name:        "postgres",
	Driver:      "postgres",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	reflect:     postgresReflect,
}

var sqliteDialect = &Dialect{
	Name:        "sqlite3",
	Driver:      "sqlite3",
	placeholder: func(n int) string { return "?" },
	reflect:     sqliteReflect,
}

// DialectForURL selects a dialect from the connection URL scheme.
// URLs without a scheme are treated as sqlite database file paths.
func DialectForURL(url string) (*Dialect, error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		if strings.ContainsAny(url, " \t") || url == "" {
			return nil, errors.UnknownDialect(url)
		}
		return sqliteDialect, nil
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return postgresDialect, nil
	case "sqlite3", "sqlite", "file":
		return sqliteDialect, nil
	default:
		return nil, errors.UnknownDialect(scheme)
	}
}

// DataSource converts the connection URL into the string the driver's
// Open expects. lib/pq consumes full URLs; go-sqlite3 wants a bare path.
func (d *Dialect) DataSource(url string) string {
	if d.Driver != "sqlite3" {
		return url
	}
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest
		}
	}
	// file: URLs are understood by the sqlite3 driver as-is.
	return url
}

// DatabaseName extracts the database name from a connection URL for
// display purposes, such as the REPL prompt.
func DatabaseName(url string) string {
	_, rest, ok := strings.Cut(url, "://")
	if !ok {
		rest = url
	} else if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		rest = rest[i+1:]
	}
	return rest
}

func postgresReflect(kind ReflectKind, filter string) (string, []any, error) {
	switch kind {
	case ReflectRelations:
		return `SELECT table_schema AS schema, table_name AS name, table_type AS type
FROM information_schema.tables
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name`, nil, nil
	case ReflectColumns:
		return `SELECT column_name AS "column", data_type AS "type", is_nullable AS "nullable", column_default AS "default"
FROM information_schema.columns
WHERE table_name = $1
ORDER BY ordinal_position`, []any{filter}, nil
	case ReflectIndexes:
		if filter == "" {
			return `SELECT schemaname AS "schema", tablename AS "table", indexname AS "name"
FROM pg_indexes
WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
ORDER BY schemaname, tablename, indexname`, nil, nil
		}
		return `SELECT schemaname AS "schema", tablename AS "table", indexname AS "name"
FROM pg_indexes
WHERE tablename = $1
ORDER BY indexname`, []any{filter}, nil
	}
	return "", nil, fmt.Errorf("unknown reflect kind: %d", kind)
}

func sqliteReflect(kind ReflectKind, filter string) (string, []any, error) {
	switch kind {
	case ReflectRelations:
		return `SELECT name, type FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`, nil, nil
	case ReflectColumns:
		// PRAGMA does not accept bind parameters; the identifier is quoted.
		return fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(filter)), nil, nil
	case ReflectIndexes:
		if filter == "" {
			return `SELECT name, tbl_name FROM sqlite_master
WHERE type = 'index'
ORDER BY tbl_name, name`, nil, nil
		}
		return `SELECT name, tbl_name FROM sqlite_master
WHERE type = 'index' AND tbl_name = ?
ORDER BY name`, []any{filter}, nil
	}
	return "", nil, fmt.Errorf("unknown reflect kind: %d", kind)
}

// quoteIdent double-quotes an identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
