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

package input

import (
	"io"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"trailing terminator", "select 1;", "select 1"},
		{"whitespace and terminator", "  select 1 ;  ", "select 1"},
		{"no terminator", "select 1", "select 1"},
		{"line comment stripped", "select 1 -- the answer\n;", "select 1"},
		{"comment only", "-- nothing here", ""},
		{"dashes inside quotes kept", "select '--' as dashes;", "select '--' as dashes"},
		{"multiline", "select a\nfrom t;", "select a\nfrom t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTerminated(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"select 1;", true},
		{"select 1; ", true},
		{"select 1", false},
		{"select 1 -- trailing; comment", false},
		{"select ';'", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Terminated(tt.raw); got != tt.want {
			t.Errorf("Terminated(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNewUnit(t *testing.T) {
	u := NewUnit(`\dt`)
	if !u.IsCommand {
		t.Error("expected backslash line to be a command unit")
	}
	u = NewUnit("select 1;")
	if u.IsCommand {
		t.Error("expected statement unit")
	}
	if u.Cleaned != "select 1" {
		t.Errorf("Cleaned = %q, want %q", u.Cleaned, "select 1")
	}
}

func TestStreamReaderAccumulatesStatements(t *testing.T) {
	src := "select a\nfrom t;\n\\dt\nupdate t set a = 1;\n"
	r := NewStreamReader(strings.NewReader(src))

	u, err := r.ReadUnit()
	if err != nil {
		t.Fatalf("first unit: %v", err)
	}
	if u.Cleaned != "select a\nfrom t" {
		t.Errorf("first unit = %q", u.Cleaned)
	}

	u, err = r.ReadUnit()
	if err != nil {
		t.Fatalf("second unit: %v", err)
	}
	if !u.IsCommand || u.Cleaned != `\dt` {
		t.Errorf("second unit = %+v, want \\dt command", u)
	}

	u, err = r.ReadUnit()
	if err != nil {
		t.Fatalf("third unit: %v", err)
	}
	if u.Cleaned != "update t set a = 1" {
		t.Errorf("third unit = %q", u.Cleaned)
	}

	if _, err = r.ReadUnit(); err != io.EOF {
		t.Errorf("expected io.EOF after input exhausted, got %v", err)
	}
}

func TestStreamReaderFinalUnterminatedStatement(t *testing.T) {
	r := NewStreamReader(strings.NewReader("select 1"))

	u, err := r.ReadUnit()
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if u.Cleaned != "select 1" {
		t.Errorf("unit = %q", u.Cleaned)
	}
	if _, err = r.ReadUnit(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestStreamReaderSkipsBlankLines(t *testing.T) {
	r := NewStreamReader(strings.NewReader("\n\n  \nselect 1;\n\n"))

	u, err := r.ReadUnit()
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if u.Cleaned != "select 1" {
		t.Errorf("unit = %q", u.Cleaned)
	}
	if _, err = r.ReadUnit(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestCandidateCompleter(t *testing.T) {
	c := &candidateCompleter{candidates: func() []string {
		return []string{"SELECT", "SET", "events"}
	}}

	line := []rune("se")
	matches, length := c.Do(line, len(line))
	if length != 2 {
		t.Errorf("length = %d, want 2", length)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if string(matches[0]) != "LECT" || string(matches[1]) != "T" {
		t.Errorf("unexpected completions: %q, %q", matches[0], matches[1])
	}
}
