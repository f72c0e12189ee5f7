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

// Package repl wires the input reader, command dispatch, transaction
// manager and renderer into the read-eval-print loop.
package repl

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/paul-breen/squelch/internal/db"
	"github.com/paul-breen/squelch/internal/errors"
	"github.com/paul-breen/squelch/internal/input"
	"github.com/paul-breen/squelch/internal/logging"
	"github.com/paul-breen/squelch/internal/render"
	"github.com/paul-breen/squelch/internal/state"
	"github.com/paul-breen/squelch/internal/txn"
)

const progName = "squelch"

// Backend is the database capability the loop consumes. *db.Session
// satisfies it.
type Backend interface {
	txn.Executor
	Reflect(ctx context.Context, kind db.ReflectKind, filter string) (*db.RowResult, error)
	InTransaction() bool
	Close() error
}

type handler func(ctx context.Context, cmd string, args []string) (Effect, error)

// Options configures a REPL instance.
type Options struct {
	Version      string
	DatabaseName string
	Interactive  bool

	// TermHeight supplies the terminal height for the pager decision.
	// Nil means "unknown", which disables paging.
	TermHeight func() int

	// Page routes tall output to the pager; nil falls back to plain
	// writes. Only consulted in interactive mode.
	Page func(text string)
}

// REPL is one interactive or piped session against one backend.
type REPL struct {
	backend  Backend
	txn      *txn.Manager
	store    *state.Store
	reader   input.Reader
	out      io.Writer
	errOut   io.Writer
	opts     Options
	handlers map[Kind]handler
	logger   *logging.Logger

	// relations caches names discovered by introspection, feeding the
	// line editor's completion candidates.
	relations map[string]struct{}
}

// New assembles a REPL. The handler table is resolved here, once.
func New(backend Backend, store *state.Store, reader input.Reader, out, errOut io.Writer, opts Options) *REPL {
	r := &REPL{
		backend:   backend,
		txn:       txn.NewManager(backend, !store.IsOn(state.VarAutocommit)),
		store:     store,
		reader:    reader,
		out:       out,
		errOut:    errOut,
		opts:      opts,
		logger:    logging.NewLogger("repl"),
		relations: map[string]struct{}{},
	}
	r.handlers = map[Kind]handler{
		KindQuit:          r.cmdQuit,
		KindHelp:          r.cmdHelp,
		KindCopyright:     r.cmdCopyright,
		KindSet:           r.cmdSet,
		KindPset:          r.cmdPset,
		KindUnset:         r.cmdUnset,
		KindListRelations: r.cmdListRelations,
		KindDescribe:      r.cmdDescribe,
		KindListIndexes:   r.cmdListIndexes,
		KindTiming:        r.cmdTiming,
	}
	return r
}

// Prompt returns the main prompt, decorated with a star while an
// explicit transaction is open.
func (r *REPL) Prompt() string {
	if r.txn.Open() {
		return fmt.Sprintf("%s *=> ", r.opts.DatabaseName)
	}
	return fmt.Sprintf("%s => ", r.opts.DatabaseName)
}

// ContinuePrompt returns the continuation-line prompt.
func (r *REPL) ContinuePrompt() string {
	return fmt.Sprintf("%s -> ", r.opts.DatabaseName)
}

// CompletionCandidates returns the SQL keywords plus every relation
// name discovered by introspection so far.
func (r *REPL) CompletionCandidates() []string {
	out := make([]string, 0, len(sqlCompletions)+len(r.relations))
	out = append(out, sqlCompletions...)
	out = append(out, r.CurrentRelationNames()...)
	return out
}

// CurrentRelationNames returns the cached relation names, sorted.
func (r *REPL) CurrentRelationNames() []string {
	names := make([]string, 0, len(r.relations))
	for name := range r.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run processes input units until EOF or a quit command. It returns nil
// on a clean exit and a fatal error otherwise; recoverable errors are
// rendered and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	if r.opts.Interactive {
		fmt.Fprintln(r.out, welcomeText(r.opts.Version))
	}

	for {
		unit, err := r.reader.ReadUnit()
		if err == io.EOF {
			r.logger.Info("end of input")
			return nil
		}
		if err != nil {
			return errors.InputFailed(err)
		}

		effect, err := r.process(ctx, unit)
		if err != nil {
			if errors.IsFatal(err) {
				return err
			}
			fmt.Fprintln(r.errOut, errors.FormatError(err))
		}
		if effect == Exit {
			return nil
		}
	}
}

// process handles one input unit: a meta-command, a statement, or an
// empty line.
func (r *REPL) process(ctx context.Context, unit input.Unit) (Effect, error) {
	if unit.Cleaned == "" {
		return r.confirmQuit()
	}
	word := strings.Fields(unit.Cleaned)[0]
	if kind, known := spellings[word]; unit.IsCommand || (known && kind == KindHelp) {
		return r.dispatch(ctx, unit.Cleaned)
	}
	return Continue, r.runStatement(ctx, unit.Cleaned)
}

// dispatch routes a meta-command line to its handler.
func (r *REPL) dispatch(ctx context.Context, line string) (Effect, error) {
	fields := strings.Fields(line)
	cmd := fields[0]

	kind, ok := spellings[cmd]
	if !ok {
		return Continue, errors.UnknownCommand(cmd)
	}
	r.logger.Debug("dispatching command", "cmd", cmd)
	return r.handlers[kind](ctx, cmd, fields[1:])
}

// runStatement executes one SQL statement through the transaction
// manager and renders the result.
func (r *REPL) runStatement(ctx context.Context, stmt string) error {
	params, err := r.collectParams(stmt)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := r.txn.Submit(ctx, stmt, params)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if err := r.present(result); err != nil {
		return err
	}
	if r.store.IsOn(state.VarTiming) {
		fmt.Fprintf(r.out, "Time: %.3f ms\n", float64(elapsed.Microseconds())/1000)
	}
	return nil
}

// collectParams prompts for any named :parameters in the statement.
// Non-interactive sources cannot prompt, so parameters stay unbound.
func (r *REPL) collectParams(stmt string) (map[string]string, error) {
	names := db.ScanParams(stmt)
	if len(names) == 0 {
		return nil, nil
	}

	params := make(map[string]string, len(names))
	for _, name := range names {
		value, err := r.reader.ReadLine(name + ": ")
		if err == io.EOF {
			r.logger.Debug("cannot prompt for parameter", "name", name)
			return params, nil
		}
		if err != nil {
			return nil, errors.InputFailed(err)
		}
		params[name] = value
	}
	return params, nil
}

// present renders a result and routes it to the pager when warranted.
func (r *REPL) present(result db.Result) error {
	text, err := render.Render(result, render.Options{
		Format: r.store.GetDefault(state.VarFormat, render.FormatAligned),
		Footer: r.store.IsOn(state.VarFooter),
	})
	if err != nil {
		return err
	}

	if r.shouldPage(text) {
		r.opts.Page(text)
		return nil
	}
	_, err = io.WriteString(r.out, text)
	return err
}

func (r *REPL) shouldPage(text string) bool {
	if !r.opts.Interactive || r.opts.Page == nil || r.opts.TermHeight == nil {
		return false
	}
	setting := r.store.GetDefault(state.VarPager, render.PagerAuto)
	return render.NeedsPager(text, r.opts.TermHeight(), setting)
}

// confirmQuit asks whether an empty interactive line means quit.
func (r *REPL) confirmQuit() (Effect, error) {
	if !r.opts.Interactive {
		return Continue, nil
	}
	answer, err := r.reader.ReadLine("no input, do you want to quit (yes/no)? ")
	if err != nil {
		return Continue, nil
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		r.logger.Info("no input, so quitting")
		return Exit, nil
	}
	return Continue, nil
}
