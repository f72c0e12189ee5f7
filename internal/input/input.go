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
Package input reads logical units from the REPL's input source.

A unit is either one backslash command line or one SQL statement, possibly
accumulated over several continuation lines until an unquoted terminator.
Two readers implement the same interface: Prompter wraps chzyer/readline
for interactive terminals (history, tab completion, interrupt handling),
and StreamReader consumes piped or replayed input without prompting.

io.EOF from a reader is not an error; it is the normal end of a one-shot
session.
*/
package input

import (
	"strings"
)

// Terminator ends a SQL statement.
const Terminator = ';'

// CommandPrefix introduces a backslash command.
const CommandPrefix = '\\'

// Unit is one logical piece of input, created per read and discarded
// after dispatch.
type Unit struct {
	// Raw is the accumulated input exactly as read.
	Raw string
	// Cleaned has comments and the trailing terminator stripped.
	Cleaned string
	// IsCommand is true when the unit is a backslash command.
	IsCommand bool
}

// Reader produces input units until io.EOF.
type Reader interface {
	// ReadUnit blocks for the next logical unit.
	ReadUnit() (Unit, error)
	// ReadLine reads one raw line, used for ad-hoc prompts such as query
	// parameter values. The prompt is shown only on interactive readers.
	ReadLine(prompt string) (string, error)
	// Close releases the reader, persisting interactive history.
	Close() error
}

// NewUnit builds a Unit from accumulated raw text.
func NewUnit(raw string) Unit {
	cleaned := Clean(raw)
	return Unit{
		Raw:       raw,
		Cleaned:   cleaned,
		IsCommand: strings.HasPrefix(cleaned, string(CommandPrefix)),
	}
}

// Clean strips comments and the trailing statement terminator from raw
// input. It stands alone so statement replay outside the prompt loop can
/// reuse it. Comment stripping is quote-aware: "--" inside a single-quoted
// string is data, not a comment.
func Clean(raw string) string {
	s := stripComments(raw)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, string(Terminator))
	return strings.TrimSpace(s)
}

/// Terminated reports whether raw text ends a statement: its last
// meaningful character (outside quotes and comments) is the terminator.
func Terminated(raw string) bool {
	s := strings.TrimSpace(stripComments(raw))
	return strings.HasSuffix(s, string(Terminator))
}

// stripComments removes -- line comments outside single-quoted strings.
func stripComments(raw string) string {
	var out strings.Builder
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		inQuote := false
		for j := 0; j < len(line); j++ {
			c := line[j]
			if c == '\'' {
				inQuote = !inQuote
			}
			if !inQuote && c == '-' && j+1 < len(line) && line[j+1] == '-' {
				break
			}
			out.WriteByte(c)
		}
	}
	return out.String()
}
