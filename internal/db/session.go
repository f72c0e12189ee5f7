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

/*
Package db is the execution capability behind the squelch REPL: a single
database session reached through database/sql, with the driver selected
from the connection URL scheme (lib/pq for postgres, go-sqlite3 for
sqlite).

The session renders every scanned value as literal text. Nothing is parsed
back into numbers, so zero-padded identifiers and version strings survive
the round trip to the terminal unchanged.
*/
package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	// Drivers registered for the URL schemes squelch accepts.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/paul-breen/squelch/internal/errors"
	"github.com/paul-breen/squelch/internal/logging"
)

// NullDisplay is the text rendered for SQL NULL values.
const NullDisplay = ""

// rowKeywords lead statements that return rows and therefore go through
// Query rather than Exec. A RETURNING clause forces the Query path too.
var rowKeywords = map[string]bool{
	"SELECT":  true,
	"VALUES":  true,
	"WITH":    true,
	"SHOW":    true,
	"PRAGMA":  true,
	"EXPLAIN": true,
	"TABLE":   true,
}

// Session owns one database connection for the lifetime of the process.
// When a transaction is open, statements execute inside it; otherwise each
// statement is its own auto-committed operation.
type Session struct {
	db      *sql.DB
	tx      *sql.Tx
	dialect *Dialect
	logger  *logging.Logger
}

// Connect opens a session for the given connection URL. Failure here is
// fatal to the caller; there is no REPL without a backend.
func Connect(url string) (*Session, error) {
	logger := logging.NewLogger("db")

	dialect, err := DialectForURL(url)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.Driver, dialect.DataSource(url))
	if err != nil {
		return nil, errors.ConnectionFailed(RedactURL(url), err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.ConnectionFailed(RedactURL(url), err)
	}

	// One REPL, one connection: the transaction state machine relies on
	// consecutive statements sharing a backend session.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	logger.Info("connected", "url", RedactURL(url), "dialect", dialect.Name)

	return &Session{db: conn, dialect: dialect, logger: logger}, nil
}

// Close releases the connection. An open transaction is rolled back by
// the backend when the connection drops.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Dialect returns the session's dialect.
func (s *Session) Dialect() *Dialect {
	return s.dialect
}

// InTransaction reports whether an explicit transaction is open.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Execute runs one statement, binding any named parameters, and returns a
// RowResult or StatusResult. Backend failures come back as ExecutionError
// and leave any open transaction untouched.
func (s *Session) Execute(ctx context.Context, stmt string, params map[string]string) (Result, error) {
	query, args := ExpandParams(stmt, params, s.dialect)

	s.logger.Debug("executing statement", "statement", query, "args", len(args))

	if returnsRows(query) {
		return s.query(ctx, query, args)
	}
	return s.exec(ctx, query, args)
}

// Begin opens an explicit transaction.
func (s *Session) Begin(ctx context.Context) error {
	if s.tx != nil {
		// BEGIN inside an open transaction is a no-op, as in psql.
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.ExecutionFailed(err)
	}
	s.tx = tx
	s.logger.Debug("transaction opened")
	return nil
}

// Commit commits the open transaction.
func (s *Session) Commit() error {
	if s.tx == nil {
		return errors.NoOpenTransaction()
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return errors.ExecutionFailed(err)
	}
	s.logger.Debug("transaction committed")
	return nil
}

// Rollback discards the open transaction.
func (s *Session) Rollback() error {
	if s.tx == nil {
		return errors.NoOpenTransaction()
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return errors.ExecutionFailed(err)
	}
	s.logger.Debug("transaction rolled back")
	return nil
}

// Reflect runs a metadata query for the introspection commands and returns
// it through the ordinary RowResult shape.
func (s *Session) Reflect(ctx context.Context, kind ReflectKind, filter string) (*RowResult, error) {
	query, args, err := s.dialect.reflect(kind, filter)
	if err != nil {
		return nil, errors.ExecutionFailed(err)
	}
	res, err := s.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return res.(*RowResult), nil
}

func (s *Session) query(ctx context.Context, query string, args []any) (Result, error) {
	var rows *sql.Rows
	var err error
	if s.tx != nil {
		rows, err = s.tx.QueryContext(ctx, query, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, errors.ExecutionFailed(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.ExecutionFailed(err)
	}

	result := &RowResult{Columns: cols}
	raw := make([]sql.RawBytes, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.ExecutionFailed(err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v == nil {
				row[i] = NullDisplay
			} else {
				row[i] = string(v)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ExecutionFailed(err)
	}
	return result, nil
}

func (s *Session) exec(ctx context.Context, query string, args []any) (Result, error) {
	var res sql.Result
	var err error
	if s.tx != nil {
		res, err = s.tx.ExecContext(ctx, query, args...)
	} else {
		res, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return nil, errors.ExecutionFailed(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Not every backend reports a row count; the tag stands alone.
		affected = -1
	}
	return &StatusResult{Tag: statusTag(query, affected), RowsAffected: affected}, nil
}

// returnsRows classifies a statement as row-returning. The leading keyword
// decides, with a RETURNING clause forcing the Query path for DML.
func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	if rowKeywords[strings.ToUpper(fields[0])] {
		return true
	}
	upper := strings.ToUpper(stmt)
	return strings.Contains(upper, " RETURNING ")
}

// statusTag builds the acknowledgement text for a non-row statement, e.g.
// "UPDATE 3" or "CREATE TABLE".
func statusTag(stmt string, affected int64) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return "OK"
	}
	verb := strings.ToUpper(fields[0])
	switch verb {
	case "INSERT", "UPDATE", "DELETE":
		if affected >= 0 {
			return verb + " " + strconv.FormatInt(affected, 10)
		}
		return verb
	case "CREATE", "DROP", "ALTER", "TRUNCATE", "GRANT", "REVOKE":
		if len(fields) > 1 {
			return verb + " " + strings.ToUpper(fields[1])
		}
		return verb
	default:
		return verb
	}
}
