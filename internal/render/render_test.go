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
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-breen/squelch/internal/db"
)

func sampleRows() *db.RowResult {
	return &db.RowResult{
		Columns: []string{"id", "name"},
		Rows: [][]string{
			{"0000-0001", "Alice"},
			{"0000-0002", "Bob, Jr."},
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderAligned(t *testing.T) {
	out, err := Render(sampleRows(), Options{Format: FormatAligned, Footer: true})
	require.NoError(t, err)

	// Zero-padded identifiers must survive rendering untouched.
	assert.Contains(t, out, "0000-0001")
	assert.Contains(t, out, "0000-0002")
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	assert.True(t, strings.HasSuffix(out, "(2 rows)\n"), "footer: %q", out)
}

func TestRenderAlignedSingularFooter(t *testing.T) {
	res := &db.RowResult{Columns: []string{"n"}, Rows: [][]string{{"1"}}}
	out, err := Render(res, Options{Format: FormatAligned, Footer: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "(1 row)\n"), "footer: %q", out)
}

func TestRenderAlignedZeroRows(t *testing.T) {
	res := &db.RowResult{Columns: []string{"id", "name"}}
	out, err := Render(res, Options{Format: FormatAligned, Footer: true})
	require.NoError(t, err)
	assert.Contains(t, out, "id")
	assert.True(t, strings.HasSuffix(out, "(0 rows)\n"), "footer: %q", out)
}

func TestRenderAlignedFooterOff(t *testing.T) {
	out, err := Render(sampleRows(), Options{Format: FormatAligned, Footer: false})
	require.NoError(t, err)
	assert.NotContains(t, out, "(2 rows)")
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleRows(), Options{Format: FormatCSV})
	require.NoError(t, err)
	golden(t).Assert(t, "csv", []byte(out))
}

func TestRenderTSV(t *testing.T) {
	out, err := Render(sampleRows(), Options{Format: FormatTSV})
	require.NoError(t, err)
	golden(t).Assert(t, "tsv", []byte(out))
}

func TestRenderExpanded(t *testing.T) {
	out, err := Render(sampleRows(), Options{Format: FormatExpanded, Footer: true})
	require.NoError(t, err)
	golden(t).Assert(t, "expanded", []byte(out))
}

func TestRenderStatus(t *testing.T) {
	out, err := Render(&db.StatusResult{Tag: "UPDATE 3", RowsAffected: 3}, Options{
		Format: FormatAligned,
		Footer: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE 3\n", out)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleRows(), Options{Format: "sideways"})
	require.Error(t, err)
}

func TestValidFormat(t *testing.T) {
	for _, name := range []string{FormatAligned, FormatCSV, FormatTSV, FormatExpanded} {
		assert.True(t, ValidFormat(name), name)
	}
	assert.False(t, ValidFormat("sideways"))
}

func TestNeedsPager(t *testing.T) {
	tall := strings.Repeat("line\n", 50)
	short := "line\nline\n"

	tests := []struct {
		name    string
		text    string
		height  int
		setting string
		want    bool
	}{
		{"off always wins", tall, 24, PagerOff, false},
		{"auto tall", tall, 24, PagerAuto, true},
		{"auto short", short, 24, PagerAuto, false},
		{"on tall", tall, 24, PagerOn, true},
		{"on short", short, 24, PagerOn, false},
		{"unknown height", tall, 0, PagerAuto, false},
		{"exact fit", strings.Repeat("x\n", 24), 24, PagerAuto, false},
		{"one over", strings.Repeat("x\n", 25), 24, PagerAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsPager(tt.text, tt.height, tt.setting))
		})
	}
}

func TestPagerCommand(t *testing.T) {
	t.Setenv("PAGER", "more")
	assert.Equal(t, []string{"more"}, PagerCommand())

	t.Setenv("PAGER", "")
	assert.Equal(t, []string{"less", "-S"}, PagerCommand())
}
