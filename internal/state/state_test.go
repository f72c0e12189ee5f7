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

package state

import (
	"testing"

	"github.com/paul-breen/squelch/internal/errors"
)

func TestDefaults(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		want string
	}{
		{VarPager, "auto"},
		{VarFooter, "on"},
		{VarFormat, "aligned"},
		{VarTiming, "off"},
		{VarAutocommit, "on"},
	}

	for _, tt := range tests {
		got, err := s.Get(tt.name)
		if err != nil {
			t.Errorf("Get(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %q, want default %q", tt.name, got, tt.want)
		}
	}
}

func TestGetUnknownVariable(t *testing.T) {
	s := New()

	_, err := s.Get("nonesuch")
	if err == nil {
		t.Fatal("expected error for unknown variable, got nil")
	}
	if errors.GetCode(err) != errors.CodeNoSuchVariable {
		t.Errorf("expected CodeNoSuchVariable, got %d", errors.GetCode(err))
	}
}

func TestOverrideShadowsDefault(t *testing.T) {
	s := New()

	s.Set(VarFooter, "off")
	got, err := s.Get(VarFooter)
	if err != nil {
		t.Fatalf("Get after Set failed: %v", err)
	}
	if got != "off" {
		t.Errorf("Get(footer) = %q, want override %q", got, "off")
	}

	// Last write wins
	s.Set(VarFooter, "on")
	got, _ = s.Get(VarFooter)
	if got != "on" {
		t.Errorf("Get(footer) after re-set = %q, want %q", got, "on")
	}
}

func TestSetUnknownNameCreatesVariable(t *testing.T) {
	s := New()

	s.Set("search_path", "public")
	got, err := s.Get("search_path")
	if err != nil {
		t.Fatalf("Get of user variable failed: %v", err)
	}
	if got != "public" {
		t.Errorf("Get(search_path) = %q, want %q", got, "public")
	}
}

func TestUnsetRevertsToDefault(t *testing.T) {
	s := New()

	s.Set(VarPager, "off")
	if err := s.Unset(VarPager); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	got, _ := s.Get(VarPager)
	if got != "auto" {
		t.Errorf("Get(pager) after Unset = %q, want default %q", got, "auto")
	}

	// Unsetting a name with neither override nor default fails
	if err := s.Unset("nonesuch"); err == nil {
		t.Error("expected error unsetting unknown variable, got nil")
	}
}

func TestSetManyStopsAtFirstBadPair(t *testing.T) {
	s := New()

	err := s.SetMany([]string{"a=1", "b=2", "broken", "c=3"})
	if err == nil {
		t.Fatal("expected error for malformed pair, got nil")
	}
	if errors.GetCode(err) != errors.CodeBadPair {
		t.Errorf("expected CodeBadPair, got %d", errors.GetCode(err))
	}

	// Exactly the first two pairs took effect
	for _, tt := range []struct{ name, want string }{{"a", "1"}, {"b", "2"}} {
		got, err := s.Get(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("Get(%q) = %q, %v; want %q applied", tt.name, got, err, tt.want)
		}
	}
	if _, err := s.Get("c"); err == nil {
		t.Error("pair after the failure was applied, want aborted")
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		arg     string
		want    Pair
		wantErr bool
	}{
		{"pager=off", Pair{"pager", "off"}, false},
		{"null=<NULL>", Pair{"null", "<NULL>"}, false},
		{"eq=a=b", Pair{"eq", "a=b"}, false},
		{"empty=", Pair{"empty", ""}, false},
		{"noseparator", Pair{}, true},
		{"=value", Pair{}, true},
	}

	for _, tt := range tests {
		got, err := ParsePair(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePair(%q) expected error, got %+v", tt.arg, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePair(%q) failed: %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePair(%q) = %+v, want %+v", tt.arg, got, tt.want)
		}
	}
}

func TestIsOn(t *testing.T) {
	s := New()

	if !s.IsOn(VarFooter) {
		t.Error("IsOn(footer) = false, want true for default on")
	}
	if s.IsOn(VarTiming) {
		t.Error("IsOn(timing) = true, want false for default off")
	}
	s.Set(VarTiming, "TRUE")
	if !s.IsOn(VarTiming) {
		t.Error("IsOn(timing) = false after set TRUE, want true")
	}
	if s.IsOn("nonesuch") {
		t.Error("IsOn of unknown variable = true, want false")
	}
}

func TestAllSnapshot(t *testing.T) {
	s := New()
	s.Set(VarFooter, "off")
	s.Set("user_var", "x")

	vars := s.All()

	byName := make(map[string]Variable)
	for _, v := range vars {
		byName[v.Name] = v
	}

	if v := byName[VarFooter]; v.Value != "off" || v.Source != "override" {
		t.Errorf("footer = %+v, want override off", v)
	}
	if v := byName[VarPager]; v.Value != "auto" || v.Source != "default" {
		t.Errorf("pager = %+v, want default auto", v)
	}
	if v := byName["user_var"]; v.Value != "x" || v.Source != "override" {
		t.Errorf("user_var = %+v, want override x", v)
	}

	// Sorted by name
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("All() not sorted: %q before %q", vars[i-1].Name, vars[i].Name)
		}
	}
}
