// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// table is a box drawn report.
type table struct {
	header []string
	rows   [][]string

	// Columns which hold numbers are right aligned.
	numeric []bool
}

func newTable(header ...string) *table {
	return &table{header: header, numeric: make([]bool, len(header))}
}

func (t *table) align(numeric ...int) *table {
	for _, column := range numeric {
		t.numeric[column] = true
	}

	return t
}

func (t *table) add(cells ...any) {
	row := make([]string, len(t.header))
	for i := range row {
		if i < len(cells) {
			row[i] = fmt.Sprint(cells[i])
		}
	}

	t.rows = append(t.rows, row)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	inner := 2 + 3*(len(widths)-1)
	for _, width := range widths {
		inner += width
	}

	line := func(row []string) {
		cells := make([]string, len(row))
		for i, cell := range row {
			if t.numeric[i] {
				cells[i] = fmt.Sprintf("%*s", widths[i], cell)
			} else {
				cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
			}
		}

		fmt.Fprintf(w, "║ %s ║\n", strings.Join(cells, "   "))
	}

	fmt.Fprintln(w, "╔"+strings.Repeat("═", inner)+"╗")
	line(t.header)
	fmt.Fprintln(w, "╠"+strings.Repeat("═", inner)+"╣")
	for _, row := range t.rows {
		line(row)
	}
	fmt.Fprintln(w, "╚"+strings.Repeat("═", inner)+"╝")
}
