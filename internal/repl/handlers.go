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

package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/paul-breen/squelch/internal/db"
	"github.com/paul-breen/squelch/internal/errors"
	"github.com/paul-breen/squelch/internal/render"
	"github.com/paul-breen/squelch/internal/state"
)

func (r *REPL) cmdQuit(context.Context, string, []string) (Effect, error) {
	r.logger.Info("quitting")
	return Exit, nil
}

// cmdHelp shows the summary for the "help" word and the command
// reference for \?.
func (r *REPL) cmdHelp(_ context.Context, cmd string, _ []string) (Effect, error) {
	if cmd == `\?` {
		fmt.Fprintln(r.out, helpCommandText())
	} else {
		fmt.Fprintln(r.out, helpSummaryText())
	}
	return Continue, nil
}

func (r *REPL) cmdCopyright(context.Context, string, []string) (Effect, error) {
	fmt.Fprintln(r.out, distTermsText(r.opts.Version))
	return Continue, nil
}

// cmdSet applies NAME=VALUE pairs, shows one variable for a bare NAME,
// and lists everything when called with no arguments. "NAME VALUE" is
// accepted as a convenience spelling of NAME=VALUE.
func (r *REPL) cmdSet(_ context.Context, cmd string, args []string) (Effect, error) {
	switch {
	case len(args) == 0:
		return Continue, r.listVariables()
	case len(args) == 1 && !strings.Contains(args[0], "="):
		value, err := r.store.Get(args[0])
		if err != nil {
			return Continue, err
		}
		fmt.Fprintf(r.out, "%s = %s\n", args[0], value)
		return Continue, nil
	case len(args) == 2 && !strings.Contains(args[0], "="):
		args = []string{args[0] + "=" + args[1]}
	}
	return Continue, r.store.SetMany(args)
}

// cmdPset is cmdSet restricted to the printing variables, with value
// validation for the format variable.
func (r *REPL) cmdPset(ctx context.Context, cmd string, args []string) (Effect, error) {
	if len(args) == 0 || (len(args) == 1 && !strings.Contains(args[0], "=")) {
		return r.cmdSet(ctx, cmd, args)
	}
	if len(args) == 2 && !strings.Contains(args[0], "=") {
		args = []string{args[0] + "=" + args[1]}
	}

	pairs, err := state.ParsePairs(args)
	if err != nil {
		return Continue, err
	}
	for _, p := range pairs {
		switch p.Name {
		case state.VarPager, state.VarFooter, state.VarFormat:
		default:
			return Continue, errors.BadArgument(cmd, `\pset NAME=VALUE (pager, footer, format)`)
		}
		if p.Name == state.VarFormat && !render.ValidFormat(p.Value) {
			return Continue, errors.BadArgument(cmd, `\pset format=aligned|csv|tsv|expanded`)
		}
	}
	for _, p := range pairs {
		r.store.Set(p.Name, p.Value)
	}
	return Continue, nil
}

func (r *REPL) cmdUnset(_ context.Context, cmd string, args []string) (Effect, error) {
	if len(args) != 1 {
		return Continue, errors.BadArgument(cmd, `\unset NAME`)
	}
	return Continue, r.store.Unset(args[0])
}

func (r *REPL) listVariables() error {
	vars := r.store.All()
	rows := make([][]string, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, []string{v.Name, v.Value, v.Source})
	}
	return r.present(&db.RowResult{
		Columns: []string{"name", "value", "source"},
		Rows:    rows,
	})
}

// cmdTiming toggles statement timing, or sets it explicitly.
func (r *REPL) cmdTiming(_ context.Context, cmd string, args []string) (Effect, error) {
	switch {
	case len(args) == 0:
		if r.store.IsOn(state.VarTiming) {
			r.store.Set(state.VarTiming, "off")
		} else {
			r.store.Set(state.VarTiming, "on")
		}
	case len(args) == 1 && (args[0] == "on" || args[0] == "off"):
		r.store.Set(state.VarTiming, args[0])
	default:
		return Continue, errors.BadArgument(cmd, `\timing [on|off]`)
	}

	setting := "off"
	if r.store.IsOn(state.VarTiming) {
		setting = "on"
	}
	fmt.Fprintf(r.out, "Timing is %s.\n", setting)
	return Continue, nil
}

func (r *REPL) cmdListRelations(ctx context.Context, _ string, _ []string) (Effect, error) {
	result, err := r.backend.Reflect(ctx, db.ReflectRelations, "")
	if err != nil {
		return Continue, err
	}
	r.cacheRelationNames(result)
	return Continue, r.present(result)
}

func (r *REPL) cmdDescribe(ctx context.Context, cmd string, args []string) (Effect, error) {
	if len(args) != 1 {
		return Continue, errors.BadArgument(cmd, `\d NAME`)
	}
	result, err := r.backend.Reflect(ctx, db.ReflectColumns, args[0])
	if err != nil {
		return Continue, err
	}
	r.relations[args[0]] = struct{}{}
	return Continue, r.present(result)
}

func (r *REPL) cmdListIndexes(ctx context.Context, cmd string, args []string) (Effect, error) {
	filter := ""
	switch len(args) {
	case 0:
	case 1:
		filter = args[0]
	default:
		return Continue, errors.BadArgument(cmd, `\di [NAME]`)
	}
	result, err := r.backend.Reflect(ctx, db.ReflectIndexes, filter)
	if err != nil {
		return Continue, err
	}
	return Continue, r.present(result)
}

// cacheRelationNames records relation names out of a listing for the
// completion candidates.
func (r *REPL) cacheRelationNames(result *db.RowResult) {
	col := -1
	for i, name := range result.Columns {
		if name == "name" {
			col = i
			break
		}
	}
	if col < 0 {
		return
	}
	for _, row := range result.Rows {
		if col < len(row) && row[col] != "" {
			r.relations[row[col]] = struct{}{}
		}
	}
}
