// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

var methodStyles = map[string]lipgloss.Style{
	http.MethodGet:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	http.MethodPost:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	http.MethodPut:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	http.MethodDelete:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	http.MethodPatch:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	http.MethodHead:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	http.MethodOptions: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
}

// colorWriter downsamples ANSI colors to what w supports and strips them
// when noColor is set or w is not a terminal.
func colorWriter(w io.Writer, noColor bool) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if noColor {
		cpw.Profile = colorprofile.NoTTY
	}

	return cpw
}

// renderTable writes rows as a rounded lipgloss table. Columns named
// "Method" or "Methods" are colored per HTTP method.
func renderTable(w io.Writer, noColor bool, headers []string, rows [][]string) {
	methodCol := -1
	for i, h := range headers {
		if h == "Method" || h == "Methods" {
			methodCol = i
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	styled := make([][]string, 0, len(rows))
	for _, row := range rows {
		out := make([]string, len(row))
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
			out[i] = cell
			if i == methodCol && !noColor {
				out[i] = styleMethods(cell)
			}
		}
		styled = append(styled, out)
	}

	// rounded border: 2 outer edges, one separator and 2 padding per column
	minWidth := 2 + len(headers) - 1 + 2*len(headers)
	for _, n := range widths {
		minWidth += n
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == table.HeaderRow {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers(headers...).
		Rows(styled...)

	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 && tw < minWidth {
			t = t.Width(tw)
		}
	}

	_, _ = fmt.Fprintln(colorWriter(w, noColor), t.Render())
}

func styleMethods(cell string) string {
	parts := strings.Split(cell, ",")
	for i, m := range parts {
		if style, ok := methodStyles[m]; ok {
			parts[i] = style.Render(m)
		}
	}

	return strings.Join(parts, ",")
}
