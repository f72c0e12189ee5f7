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

// Result is the outcome of one executed statement: either a RowResult for
// row-returning statements or a StatusResult for everything else. Backend
// failures are reported as errors alongside a nil Result.
type Result interface {
	result()
}

// RowResult carries an ordered set of column names and row tuples. Values
// are literal text as the backend produced them; they are never re-parsed
// into numbers, so a column holding "0000-0001" survives unchanged.
type RowResult struct {
	Columns []string
	Rows    [][]string
}

func (*RowResult) result() {}

// RowCount returns the number of data rows.
func (r *RowResult) RowCount() int {
	return len(r.Rows)
}

// StatusResult carries the acknowledgement for a non-row-returning
// statement, e.g. "UPDATE 3".
type StatusResult struct {
	Tag          string
	RowsAffected int64
}

func (*StatusResult) result() {}
