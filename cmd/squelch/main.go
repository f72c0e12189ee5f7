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

// Command squelch is a simple SQL REPL for Postgres and SQLite
// databases.
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/paul-breen/squelch/internal/cli"
	"github.com/paul-breen/squelch/internal/errors"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if stderrors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, errors.FormatError(exitErr.Unwrap()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
