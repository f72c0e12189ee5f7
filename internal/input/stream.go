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
	"bufio"
	"io"
	"strings"
)

// StreamReader reads units from a non-interactive source such as a pipe
// or redirected file. No prompts are written and no history is kept.
type StreamReader struct {
	scanner *bufio.Scanner
	pending strings.Builder
	done    bool
}

// NewStreamReader wraps r for unit-at-a-time reading.
func NewStreamReader(r io.Reader) *StreamReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &StreamReader{scanner: sc}
}

// ReadUnit accumulates lines until a terminated statement or a command
// line is seen. A trailing unterminated statement is returned as a final
// unit before io.EOF, mirroring how a script's last statement may omit
// the terminator.
func (s *StreamReader) ReadUnit() (Unit, error) {
	if s.done {
		return Unit{}, io.EOF
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if s.pending.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, string(CommandPrefix)) {
				return NewUnit(line), nil
			}
		} else {
			s.pending.WriteByte('\n')
		}
		s.pending.WriteString(line)

		if Terminated(s.pending.String()) {
			raw := s.pending.String()
			s.pending.Reset()
			return NewUnit(raw), nil
		}
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return Unit{}, err
	}
	if s.pending.Len() > 0 {
		raw := s.pending.String()
		s.pending.Reset()
		if strings.TrimSpace(Clean(raw)) != "" {
			return NewUnit(raw), nil
		}
	}
	return Unit{}, io.EOF
}

// ReadLine cannot prompt on a stream source; parameter values are not
// collected in non-interactive mode.
func (s *StreamReader) ReadLine(string) (string, error) {
	return "", io.EOF
}

func (s *StreamReader) Close() error { return nil }
