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

// Package txn tracks implicit versus explicit transaction mode and
// routes statements accordingly. The manager owns the mode; the backend
// session owns the actual transaction handle.
package txn

import (
	"context"
	"strings"

	"github.com/paul-breen/squelch/internal/db"
	"github.com/paul-breen/squelch/internal/errors"
	"github.com/paul-breen/squelch/internal/logging"
)

// Mode is the transaction state of the session.
type Mode int

const (
	// Implicit auto-commits every statement individually.
	Implicit Mode = iota
	// ExplicitIdle means explicit mode was requested but no transaction
	// is currently open. Statements run as implicit single statements.
	ExplicitIdle
	// ExplicitOpen means a user-delimited transaction is in progress.
	ExplicitOpen
)

func (m Mode) String() string {
	switch m {
	case Implicit:
		return "implicit"
	case ExplicitIdle:
		return "explicit-idle"
	case ExplicitOpen:
		return "explicit-open"
	}
	return "unknown"
}

// Executor is the backend capability the manager drives. *db.Session
// satisfies it; tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, stmt string, params map[string]string) (db.Result, error)
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
}

type verb int

const (
	verbStatement verb = iota
	verbBegin
	verbCommit
	verbRollback
)

// Manager is the transaction state machine.
type Manager struct {
	mode   Mode
	exec   Executor
	logger *logging.Logger
}

// NewManager creates a manager in Implicit mode, or ExplicitIdle when
// explicit mode is requested at startup (autocommit off).
func NewManager(exec Executor, explicit bool) *Manager {
	mode := Implicit
	if explicit {
		mode = ExplicitIdle
	}
	return &Manager{
		mode:   mode,
		exec:   exec,
		logger: logging.NewLogger("txn"),
	}
}

// Mode returns the current transaction mode.
func (m *Manager) Mode() Mode {
	return m.mode
}

// Open reports whether a user-delimited transaction is in progress.
// Drives the *=> prompt decoration.
func (m *Manager) Open() bool {
	return m.mode == ExplicitOpen
}

// Submit routes one cleaned SQL statement. BEGIN, COMMIT and ROLLBACK
// drive the state machine; everything else executes under the current
// mode. A backend error from a plain statement never changes the mode:
// an open transaction stays open until the user commits or rolls back.
func (m *Manager) Submit(ctx context.Context, stmt string, params map[string]string) (db.Result, error) {
	switch classify(stmt) {
	case verbBegin:
		return m.begin(ctx)
	case verbCommit:
		return m.end("COMMIT", m.exec.Commit)
	case verbRollback:
		return m.end("ROLLBACK", m.exec.Rollback)
	}

	// Implicit and ExplicitIdle both run the statement as its own
	// auto-committed operation; ExplicitOpen runs it inside the open
	// transaction via the session's handle.
	return m.exec.Execute(ctx, stmt, params)
}

func (m *Manager) begin(ctx context.Context) (db.Result, error) {
	if err := m.exec.Begin(ctx); err != nil {
		return nil, err
	}
	if m.mode != ExplicitOpen {
		m.logger.Debug("transaction opened", "from", m.mode.String())
	}
	m.mode = ExplicitOpen
	return &db.StatusResult{Tag: "BEGIN"}, nil
}

// end closes the open transaction. Once the backend has been asked to
// commit or roll back the handle is finished either way, so the mode
// drops to ExplicitIdle even when the close itself errors.
func (m *Manager) end(tag string, close func() error) (db.Result, error) {
	if m.mode != ExplicitOpen {
		return nil, errors.NoOpenTransaction()
	}
	m.mode = ExplicitIdle
	if err := close(); err != nil {
		return nil, err
	}
	m.logger.Debug("transaction closed", "how", tag)
	return &db.StatusResult{Tag: tag}, nil
}

// classify picks out transaction-control statements by their leading
// keyword. BEGIN and START TRANSACTION open; COMMIT and END commit;
// ROLLBACK and ABORT discard.
func classify(stmt string) verb {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return verbStatement
	}
	switch strings.ToUpper(fields[0]) {
	case "BEGIN", "START":
		return verbBegin
	case "COMMIT", "END":
		return verbCommit
	case "ROLLBACK", "ABORT":
		return verbRollback
	}
	return verbStatement
}
