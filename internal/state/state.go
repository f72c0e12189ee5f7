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
Package state holds the session state variables for a squelch REPL.

Variables live in two tiers: built-in defaults fixed at process start, and
user overrides written by \set, \pset, or the -S/-P command-line options.
Lookups consult overrides first and fall back to defaults, so unsetting an
override always reverts to the built-in value. The store also accepts names
with no registered default, since a session may carry arbitrary user
variables.

The store is owned by a single REPL loop and passed explicitly to every
component that reads it; there is no process-wide instance and no locking.
*/
package state

import (
	"sort"
	"strings"

	"github.com/paul-breen/squelch/internal/errors"
)

// Well-known variable names.
const (
	VarPager      = "pager"
	VarFooter     = "footer"
	VarFormat     = "format"
	VarTiming     = "timing"
	VarAutocommit = "autocommit"
)

// Pair is one NAME=VALUE setting, kept ordered so batch application has a
// well-defined "first k-1 applied" semantics.
type Pair struct {
	Name  string
	Value string
}

// Store is the two-tier session variable store.
type Store struct {
	defaults  map[string]string
	overrides map[string]string
}

// New returns a Store carrying the built-in defaults.
func New() *Store {
	return &Store{
		defaults: map[string]string{
			VarPager:      "auto",
			VarFooter:     "on",
			VarFormat:     "aligned",
			VarTiming:     "off",
			VarAutocommit: "on",
		},
		overrides: make(map[string]string),
	}
}

// Get resolves a variable, override tier first. Unknown names fail with
// a NoSuchVariable error.
func (s *Store) Get(name string) (string, error) {
	if v, ok := s.overrides[name]; ok {
		return v, nil
	}
	if v, ok := s.defaults[name]; ok {
		return v, nil
	}
	return "", errors.NoSuchVariable(name)
}

// GetDefault resolves a variable like Get, but returns fallback for
// unknown names instead of failing.
func (s *Store) GetDefault(name, fallback string) string {
	if v, err := s.Get(name); err == nil {
		return v
	}
	return fallback
}

// IsOn reports whether a variable resolves to an enabled value.
func (s *Store) IsOn(name string) bool {
	v, err := s.Get(name)
	if err != nil {
		return false
	}
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Set creates or overwrites an override. Names without a registered
// default become new user variables, so Set never fails.
func (s *Store) Set(name, value string) {
	s.overrides[name] = value
}

// Unset removes an override, reverting the variable to its default.
// Unsetting a name with neither an override nor a default fails.
func (s *Store) Unset(name string) error {
	if _, ok := s.overrides[name]; ok {
		delete(s.overrides, name)
		return nil
	}
	if _, ok := s.defaults[name]; ok {
		return nil
	}
	return errors.NoSuchVariable(name)
}

// SetMany parses and applies NAME=VALUE arguments in order. The first
// malformed argument aborts the remainder; exactly the arguments before it
// remain applied, and the error identifies the offending argument.
func (s *Store) SetMany(args []string) error {
	for _, a := range args {
		p, err := ParsePair(a)
		if err != nil {
			return err
		}
		s.Set(p.Name, p.Value)
	}
	return nil
}

// ParsePair splits a NAME=VALUE argument. The value may itself contain '='.
func ParsePair(arg string) (Pair, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return Pair{}, errors.BadPair(arg)
	}
	return Pair{Name: name, Value: value}, nil
}

// ParsePairs converts NAME=VALUE arguments in order, failing on the first
// malformed one.
func ParsePairs(args []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(args))
	for _, a := range args {
		p, err := ParsePair(a)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// All returns a name-sorted snapshot of every resolvable variable with its
// effective value and tier ("default" or "override").
func (s *Store) All() []Variable {
	seen := make(map[string]Variable)
	for name, value := range s.defaults {
		seen[name] = Variable{Name: name, Value: value, Source: "default"}
	}
	for name, value := range s.overrides {
		seen[name] = Variable{Name: name, Value: value, Source: "override"}
	}
	vars := make([]Variable, 0, len(seen))
	for _, v := range seen {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// Variable is one resolved state variable.
type Variable struct {
	Name   string
	Value  string
	Source string
}
