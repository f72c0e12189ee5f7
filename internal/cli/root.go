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

// Package cli assembles the squelch command line: flag parsing,
// configuration merging, and standing up the REPL.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paul-breen/squelch/internal/config"
	"github.com/paul-breen/squelch/internal/db"
	"github.com/paul-breen/squelch/internal/errors"
	"github.com/paul-breen/squelch/internal/input"
	"github.com/paul-breen/squelch/internal/logging"
	"github.com/paul-breen/squelch/internal/render"
	"github.com/paul-breen/squelch/internal/repl"
	"github.com/paul-breen/squelch/internal/state"
)

// Version is stamped at build time via -ldflags.
var Version = "0.4.0"

// RootOptions holds the command-line flags.
type RootOptions struct {
	ConfFile string
	URL      string
	Set      []string
	Pset     []string
	Verbose  int
	LogJSON  bool
}

// NewRootCommand creates the squelch root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "squelch",
		Short:   "Squelch - a simple SQL REPL command handler",
		Long: `Squelch is a simple SQL REPL. The database connection URL can either be
passed on the command line, via the --url option, or specified in a JSON
configuration file given by the --conf-file option. The form of the JSON
configuration file is as follows:

{
  "url": "<URL>"
}`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfFile, "conf-file", "c", "",
		fmt.Sprintf("full path to a JSON configuration file (default %s)", config.DefaultConfFile))
	cmd.Flags().StringVarP(&opts.URL, "url", "u", "", "database connection URL")
	cmd.Flags().StringArrayVarP(&opts.Set, "set", "S", nil,
		"set a session state variable as NAME=VALUE (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Pset, "pset", "P", nil,
		"set a printing state variable as NAME=VALUE (repeatable)")
	cmd.Flags().CountVarP(&opts.Verbose, "verbose", "v",
		"increase logging verbosity (-v info, -vv debug)")
	cmd.Flags().BoolVar(&opts.LogJSON, "log-json", false, "emit logs as JSON")

	return cmd
}

// run wires configuration, state, session and reader together and
// enters the loop.
func run(opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitUsage, err)
	}

	logging.SetGlobalLevel(logging.LevelFromVerbosity(cfg.Verbose))
	logging.SetJSONMode(cfg.LogJSON)
	logger := logging.NewLogger("cli")

	store, err := buildStore(cfg, opts)
	if err != nil {
		return WrapExitError(ExitUsage, err)
	}

	if cfg.URL == "" {
		return WrapExitError(ExitFailure, errors.MissingURL())
	}

	session, err := db.Connect(cfg.URL)
	if err != nil {
		return WrapExitError(ExitFailure, err)
	}
	defer session.Close()

	interactive := render.Interactive()
	replOpts := repl.Options{
		Version:      Version,
		DatabaseName: db.DatabaseName(cfg.URL),
		Interactive:  interactive,
		TermHeight: func() int {
			_, h := render.TerminalSize()
			return h
		},
		Page: render.Page,
	}
	if cfg.PagerCmd != "" {
		os.Setenv("PAGER", cfg.PagerCmd)
	}

	// The prompter needs the loop's prompt and completion callbacks, and
	// the loop needs the reader; the closures bridge the cycle.
	var loop *repl.REPL
	var reader input.Reader
	if interactive {
		prompter, err := input.NewPrompter(input.PrompterConfig{
			Prompt:         func() string { return loop.Prompt() },
			ContinuePrompt: func() string { return loop.ContinuePrompt() },
			HistoryFile:    cfg.HistoryFile,
			Candidates:     func() []string { return loop.CompletionCandidates() },
		})
		if err != nil {
			return WrapExitError(ExitFailure, errors.InputFailed(err))
		}
		reader = prompter
	} else {
		reader = input.NewStreamReader(os.Stdin)
	}
	defer reader.Close()

	loop = repl.New(session, store, reader, os.Stdout, os.Stderr, replOpts)

	logger.Info("session starting",
		"url", db.RedactURL(cfg.URL), "interactive", interactive)

	if err := loop.Run(context.Background()); err != nil {
		return WrapExitError(ExitFailure, err)
	}
	return nil
}

// loadConfig reads the configuration file and merges the command-line
// overrides, flags winning over file values.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	manager := config.NewManager()

	path, explicit := config.DefaultConfFile, false
	if opts.ConfFile != "" {
		path, explicit = opts.ConfFile, true
	}
	if err := manager.LoadFromFile(path, explicit); err != nil {
		return nil, err
	}

	cfg := manager.Get()
	if opts.URL != "" {
		cfg.URL = opts.URL
	}
	if opts.Verbose > cfg.Verbose {
		cfg.Verbose = opts.Verbose
	}
	if opts.LogJSON {
		cfg.LogJSON = true
	}
	return cfg, nil
}

// buildStore seeds the state store from the configuration file, then
// applies the -S and -P flag pairs in one batch.
func buildStore(cfg *config.Config, opts *RootOptions) (*state.Store, error) {
	store := state.New()
	for name, value := range cfg.Set {
		store.Set(name, value)
	}
	for name, value := range cfg.Pset {
		store.Set(name, value)
	}

	pairs := make([]string, 0, len(opts.Set)+len(opts.Pset))
	pairs = append(pairs, opts.Set...)
	pairs = append(pairs, opts.Pset...)
	if err := store.SetMany(pairs); err != nil {
		return nil, err
	}
	return store, nil
}
