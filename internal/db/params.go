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

package db

import (
	"regexp"
	"strings"
)

// Named query parameters are written :name. Occurrences inside
// single-quoted strings are literals, and a double colon is a cast, not a
// parameter.
var (
	quotedStringPattern = regexp.MustCompile(`'[^']*'`)
	paramPattern        = regexp.MustCompile(`(^|[^:\w]):([a-zA-Z_][a-zA-Z0-9_.]*)`)
	credentialPattern   = regexp.MustCompile(`://[^@/]+@`)
)

// ScanParams returns the named parameters of a statement in order of first
// appearance, deduplicated. An empty slice means the statement binds
// nothing and needs no prompting.
func ScanParams(stmt string) []string {
	// Mask quoted strings so their contents cannot look like parameters,
	// preserving offsets for the scan below.
	masked := quotedStringPattern.ReplaceAllStringFunc(stmt, func(m string) string {
		return strings.Repeat(" ", len(m))
	})

	var names []string
	seen := make(map[string]bool)
	for _, m := range paramPattern.FindAllStringSubmatch(masked, -1) {
		name := m[2]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ExpandParams rewrites :name references into the dialect's positional
// placeholders and returns the bind arguments in placeholder order. Values
// bind as text; the backend coerces them, never the client. A statement
// with no parameters passes through untouched.
func ExpandParams(stmt string, params map[string]string, dialect *Dialect) (string, []any) {
	if len(params) == 0 {
		return stmt, nil
	}

	masked := quotedStringPattern.ReplaceAllStringFunc(stmt, func(m string) string {
		return strings.Repeat(" ", len(m))
	})

	var args []any
	var out strings.Builder
	last := 0
	for _, loc := range paramPattern.FindAllStringSubmatchIndex(masked, -1) {
		// loc[4:6] is the :name group; the colon sits just before it.
		nameStart, nameEnd := loc[4], loc[5]
		name := masked[nameStart:nameEnd]
		value, ok := params[name]
		if !ok {
			continue
		}
		out.WriteString(stmt[last : nameStart-1])
		args = append(args, value)
		out.WriteString(dialect.placeholder(len(args)))
		last = nameEnd
	}
	out.WriteString(stmt[last:])
	return out.String(), args
}

// RedactURL masks any credentials embedded in a connection URL so they
// never appear in logs or error text.
func RedactURL(url string) string {
	return credentialPattern.ReplaceAllString(url, "://***@")
}
