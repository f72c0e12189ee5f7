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

package render

import (
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/paul-breen/squelch/internal/logging"
)

// Pager settings carried by the pager state variable.
const (
	PagerOff  = "off"
	PagerOn   = "on"
	PagerAuto = "auto"
)

const defaultPager = "less -S"

// NeedsPager reports whether text is tall enough to warrant a pager
// given the terminal height and the pager setting. It is a pure
// decision: whether an interactive terminal is attached is the
// caller's business.
func NeedsPager(text string, height int, setting string) bool {
	if setting == PagerOff || height <= 0 {
		return false
	}
	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") && text != "" {
		lines++
	}
	return lines > height
}

// TerminalSize returns the width and height of the attached terminal,
// or zeros when stdout is not a terminal.
func TerminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PagerCommand resolves the pager argv from $PAGER, falling back to
// less with chopped long lines.
func PagerCommand() []string {
	cmd := os.Getenv("PAGER")
	if strings.TrimSpace(cmd) == "" {
		cmd = defaultPager
	}
	return strings.Fields(cmd)
}

// Page feeds text through the pager process, inheriting the terminal.
// On any pager failure the text is written directly to stdout so output
// is never lost.
func Page(text string) {
	argv := PagerCommand()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		logging.NewLogger("render").Warn("pager failed, writing directly",
			"pager", argv[0], "error", err)
		os.Stdout.WriteString(text)
	}
}
