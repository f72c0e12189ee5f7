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

	"github.com/chzyer/readline"

	"github.com/paul-breen/squelch/internal/logging"
)

// PrompterConfig configures an interactive Prompter.
type PrompterConfig struct {
	// Prompt returns the current main prompt text; it is consulted before
	// every unit so it can reflect transaction state.
	Prompt func() string
	// ContinuePrompt returns the continuation-line prompt.
	ContinuePrompt func() string
	// HistoryFile persists line history across sessions. Empty disables
	// persistence.
	HistoryFile string
	// Candidates supplies the current tab-completion candidates: SQL
	// keywords plus any relation names discovered by introspection.
	Candidates func() []string
}

// Prompter reads units interactively through readline.
type Prompter struct {
	rl     *readline.Instance
	cfg    PrompterConfig
	logger *logging.Logger
}

// NewPrompter creates an interactive reader on the process terminal.
func NewPrompter(cfg PrompterConfig) (*Prompter, error) {
	// The live prompt is set before every read; the configured one is
	// never shown.
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "",
		HistoryFile:       cfg.HistoryFile,
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         `\q`,
		AutoComplete:      &candidateCompleter{candidates: cfg.Candidates},
	})
	if err != nil {
		return nil, err
	}
	return &Prompter{rl: rl, cfg: cfg, logger: logging.NewLogger("input")}, nil
}

// ReadUnit prompts for and accumulates one logical unit. An interrupt
// aborts the unit in progress and starts over at the main prompt; ^D
// surfaces as io.EOF.
func (p *Prompter) ReadUnit() (Unit, error) {
	var buf strings.Builder

	for {
		if buf.Len() == 0 {
			p.rl.SetPrompt(p.cfg.Prompt())
		} else {
			p.rl.SetPrompt(p.cfg.ContinuePrompt())
		}

		line, err := p.rl.Readline()
		if err == readline.ErrInterrupt {
			// Abort the current unit, not the session.
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return Unit{}, io.EOF
		}
		if err != nil {
			return Unit{}, err
		}

		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			// Commands and help words are single-line units.
			if trimmed == "" || strings.HasPrefix(trimmed, string(CommandPrefix)) {
				return NewUnit(line), nil
			}
		} else {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if Terminated(buf.String()) {
			return NewUnit(buf.String()), nil
		}
	}
}

// ReadLine reads one raw line under an ad-hoc prompt.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// Close shuts readline down, flushing history to the history file.
func (p *Prompter) Close() error {
	p.logger.Debug("closing prompter", "history_file", p.cfg.HistoryFile)
	return p.rl.Close()
}

// candidateCompleter adapts a dynamic candidate list to readline's
// AutoComplete interface, matching the word under the cursor
// case-insensitively.
type candidateCompleter struct {
	candidates func() []string
}

func (c *candidateCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if c.candidates == nil {
		return nil, 0
	}

	// Find the start of the word being completed.
	start := pos
	for start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
		start--
	}
	word := strings.ToLower(string(line[start:pos]))

	var matches [][]rune
	for _, cand := range c.candidates() {
		if word == "" || strings.HasPrefix(strings.ToLower(cand), word) {
			matches = append(matches, []rune(cand[pos-start:]))
		}
	}
	return matches, pos - start
}
