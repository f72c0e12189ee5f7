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

import "fmt"

// Kind identifies a REPL meta-command independent of its spelling.
type Kind int

const (
	KindQuit Kind = iota
	KindHelp
	KindCopyright
	KindSet
	KindPset
	KindUnset
	KindListRelations
	KindDescribe
	KindListIndexes
	KindTiming
)

// Effect tells the loop what to do after a command handler returns.
type Effect int

const (
	Continue Effect = iota
	Exit
)

// spellings maps every accepted command word to its kind. Resolved once
// here; the loop never string-matches at dispatch time.
var spellings = map[string]Kind{
	`\q`:         KindQuit,
	`\quit`:      KindQuit,
	`help`:       KindHelp,
	`\?`:         KindHelp,
	`\copyright`: KindCopyright,
	`\set`:       KindSet,
	`\pset`:      KindPset,
	`\unset`:     KindUnset,
	`\dt`:        KindListRelations,
	`\d`:         KindDescribe,
	`\di`:        KindListIndexes,
	`\timing`:    KindTiming,
}

// sqlCompletions are the baseline tab-completion candidates; relation
// names discovered by introspection are appended at runtime.
var sqlCompletions = []string{
	"select", "insert", "update", "delete", "create", "drop",
	"from", "where", "and", "or", "not", "like",
	"order by", "group by", "into", "values",
	"begin", "commit", "rollback",
}

func welcomeText(version string) string {
	return fmt.Sprintf("%s (%s)\nType \"help\" for help.\n", progName, version)
}

func helpSummaryText() string {
	return fmt.Sprintf(`You are using %s, a CLI to SQL database engines.
Type:  \copyright for distribution terms
       \? for help with %s commands
       \q to quit`, progName, progName)
}

func helpCommandText() string {
	return fmt.Sprintf(`General
  \copyright             show %s usage and distribution terms
  \q, \quit              quit %s
  \timing [on|off]       toggle timing of statements

Help
  \?                     show help on backslash commands

Informational
  \dt                    list relations
  \d NAME                describe a relation
  \di [NAME]             list indexes

Variables
  \set [NAME=VALUE]      set session variable, or list all variables
  \pset [NAME=VALUE]     set printing variable
                         (pager, footer, format)
  \unset NAME            revert a variable to its default
`, progName, progName)
}

func distTermsText(version string) string {
	return fmt.Sprintf("%s (%s) distributed under Apache-2.0 license: https://spdx.org/licenses/Apache-2.0.html",
		progName, version)
}
