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

// Package render turns query results into display text. It never
// interprets values: whatever the session scanned is printed verbatim,
// so "0000-0001" is never mangled into a number.
package render

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/paul-breen/squelch/internal/db"
	"github.com/paul-breen/squelch/internal/errors"
)

// Table formats selectable through the format state variable.
const (
	FormatAligned  = "aligned"
	FormatCSV      = "csv"
	FormatTSV      = "tsv"
	FormatExpanded = "expanded"
)

// Options carries the display settings resolved from the state store.
type Options struct {
	Format string
	Footer bool
}

// ValidFormat reports whether name is a known table format.
func ValidFormat(name string) bool {
	switch name {
	case FormatAligned, FormatCSV, FormatTSV, FormatExpanded:
		return true
	}
	return false
}

// Render produces the display text for a result. Status results render
// as their tag line alone; row results render in the requested format.
func Render(res db.Result, opts Options) (string, error) {
	switch r := res.(type) {
	case *db.StatusResult:
		return r.Tag + "\n", nil
	case *db.RowResult:
		return renderRows(r, opts)
	default:
		return "", errors.ExecutionFailed(fmt.Errorf("cannot render result type %T", res))
	}
}

func renderRows(r *db.RowResult, opts Options) (string, error) {
	var buf strings.Builder

	switch opts.Format {
	case FormatAligned, "":
		table := tablewriter.NewWriter(&buf)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(r.Columns)
		for _, row := range r.Rows {
			table.Append(row)
		}
		table.Render()
		if opts.Footer {
			writeFooter(&buf, r.RowCount())
		}

	case FormatCSV, FormatTSV:
		w := csv.NewWriter(&buf)
		if opts.Format == FormatTSV {
			w.Comma = '\t'
		}
		if err := w.Write(r.Columns); err != nil {
			return "", errors.ExecutionFailed(err).WithDetail("writing delimited output")
		}
		if err := w.WriteAll(r.Rows); err != nil {
			return "", errors.ExecutionFailed(err).WithDetail("writing delimited output")
		}
		w.Flush()

	case FormatExpanded:
		renderRecords(&buf, r)
		if opts.Footer {
			writeFooter(&buf, r.RowCount())
		}

	default:
		return "", errors.BadArgument("format="+opts.Format,
			"format=aligned|csv|tsv|expanded")
	}

	return buf.String(), nil
}

// renderRecords writes one vertical block per row, psql expanded style.
func renderRecords(buf *strings.Builder, r *db.RowResult) {
	labelWidth := 0
	for _, col := range r.Columns {
		if n := utf8.RuneCountInString(col); n > labelWidth {
			labelWidth = n
		}
	}

	for i, row := range r.Rows {
		fmt.Fprintf(buf, "-[ RECORD %d ]\n", i+1)
		for j, val := range row {
			label := ""
			if j < len(r.Columns) {
				label = r.Columns[j]
			}
			for l, line := range strings.Split(val, "\n") {
				if l > 0 {
					label = ""
				}
				fmt.Fprintf(buf, "%-*s | %s\n", labelWidth, label, line)
			}
		}
	}
}

func writeFooter(buf *strings.Builder, n int) {
	plural := "s"
	if n == 1 {
		plural = ""
	}
	fmt.Fprintf(buf, "(%d row%s)\n", n, plural)
}
