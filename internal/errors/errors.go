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
Package errors provides structured error handling for squelch.

Every failure path in the REPL produces one of these errors so the loop can
decide whether to keep reading input or terminate the process:
  - ConnectionError: failure to establish the database session (fatal)
  - CommandError: unknown or malformed backslash commands (recoverable)
  - StateError: lookups of unregistered state variables (recoverable)
  - TransactionError: statements issued outside a usable transaction state
    (recoverable)
  - ExecutionError: errors reported by the database backend (recoverable,
    transaction state unaffected)
  - InputError: unrecoverable failure of the input stream (fatal)
*/
package errors

import (
	"fmt"
)

// Code identifies a specific error condition.
type Code int

const (
	// Connection errors (1000-1999)
	CodeConnection     Code = 1000
	CodeMissingURL     Code = 1001
	CodeUnknownDialect Code = 1002

	// Command errors (2000-2999)
	CodeCommand        Code = 2000
	CodeUnknownCommand Code = 2001
	CodeBadArgument    Code = 2002

	// State errors (3000-3999)
	CodeState          Code = 3000
	CodeNoSuchVariable Code = 3001
	CodeBadPair        Code = 3002

	// Transaction errors (4000-4999)
	CodeTransaction       Code = 4000
	CodeNoOpenTransaction Code = 4001

	// Execution errors (5000-5999)
	CodeExecution Code = 5000

	// Input errors (6000-6999)
	CodeInput Code = 6000
)

// Category groups error codes for coarse-grained handling.
type Category string

const (
	CategoryConnection  Category = "CONNECTION"
	CategoryCommand     Category = "COMMAND"
	CategoryState       Category = "STATE"
	CategoryTransaction Category = "TRANSACTION"
	CategoryExecution   Category = "EXECUTION"
	CategoryInput       Category = "INPUT"
)

// Error is a structured squelch error.
type Error struct {
	Code     Code
	Category Category
	Message  string
	Detail   string
	Hint     string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ERROR %d (%s): %s - %s", e.Code, e.Category, e.Message, e.Detail)
	}
	return fmt.Sprintf("ERROR %d (%s): %s", e.Code, e.Category, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message rendered for the terminal.
func (e *Error) UserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nHINT: %s", e.Hint)
	}
	return msg
}

// WithDetail adds detail to the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ConnectionFailed creates an error for a failed connection attempt.
func ConnectionFailed(url string, cause error) *Error {
	return &Error{
		Code:     CodeConnection,
		Category: CategoryConnection,
		Message:  fmt.Sprintf("cannot connect to %s", url),
		Cause:    cause,
	}
}

// MissingURL creates an error for a missing connection URL.
func MissingURL() *Error {
	return &Error{
		Code:     CodeMissingURL,
		Category: CategoryConnection,
		Message:  "a database connection URL is required",
		Hint:     "Pass --url or set \"url\" in the configuration file",
	}
}

// UnknownDialect creates an error for an unrecognized URL scheme.
func UnknownDialect(scheme string) *Error {
	return &Error{
		Code:     CodeUnknownDialect,
		Category: CategoryConnection,
		Message:  fmt.Sprintf("unsupported database dialect: %s", scheme),
		Hint:     "Supported schemes: postgres, postgresql, sqlite3, file",
	}
}

// UnknownCommand creates an error for an unrecognized backslash command.
func UnknownCommand(name string) *Error {
	return &Error{
		Code:     CodeUnknownCommand,
		Category: CategoryCommand,
		Message:  fmt.Sprintf("unknown command: %s", name),
		Hint:     "Type \\? for help on backslash commands",
	}
}

// BadArgument creates an error for a malformed command argument.
func BadArgument(cmd, usage string) *Error {
	return &Error{
		Code:     CodeBadArgument,
		Category: CategoryCommand,
		Message:  fmt.Sprintf("malformed argument to %s", cmd),
		Hint:     fmt.Sprintf("Usage: %s", usage),
	}
}

// NoSuchVariable creates an error for an unregistered state variable.
func NoSuchVariable(name string) *Error {
	return &Error{
		Code:     CodeNoSuchVariable,
		Category: CategoryState,
		Message:  fmt.Sprintf("no such variable: %s", name),
		Hint:     "Type \\set with no arguments to list variables",
	}
}

// BadPair creates an error for a NAME=VALUE pair that failed to apply.
func BadPair(pair string) *Error {
	return &Error{
		Code:     CodeBadPair,
		Category: CategoryState,
		Message:  fmt.Sprintf("a state variable must be expressed as NAME=VALUE, got %q", pair),
		Hint:     "For example: --set autocommit=on, --pset pager=off",
	}
}

// NoOpenTransaction creates an error for transaction commands with nothing open.
func NoOpenTransaction() *Error {
	return &Error{
		Code:     CodeNoOpenTransaction,
		Category: CategoryTransaction,
		Message:  "no transaction is open",
		Hint:     "Use BEGIN to start a transaction",
	}
}

// ExecutionFailed wraps a backend error from a statement.
func ExecutionFailed(cause error) *Error {
	return &Error{
		Code:     CodeExecution,
		Category: CategoryExecution,
		Message:  cause.Error(),
		Cause:    cause,
	}
}

// InputFailed wraps an unrecoverable input stream failure.
func InputFailed(cause error) *Error {
	return &Error{
		Code:     CodeInput,
		Category: CategoryInput,
		Message:  "cannot read input",
		Cause:    cause,
	}
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == CategoryConnection
	}
	return false
}

// IsCommandError checks if an error is a command error.
func IsCommandError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == CategoryCommand
	}
	return false
}

// IsStateError checks if an error is a state variable error.
func IsStateError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == CategoryState
	}
	return false
}

// IsExecutionError checks if an error is a backend execution error.
func IsExecutionError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == CategoryExecution
	}
	return false
}

// IsFatal reports whether the error should terminate the process rather
// than return control to the REPL loop.
func IsFatal(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == CategoryConnection || e.Category == CategoryInput
	}
	return false
}

// GetCode returns the error code if it's a squelch Error, or 0 otherwise.
func GetCode(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if e, ok := err.(*Error); ok {
		return e.UserMessage()
	}
	return fmt.Sprintf("ERROR: %v", err)
}
