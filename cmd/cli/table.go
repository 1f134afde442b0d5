package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable prints a markdown table padded by display width, so names in
// Cyrillic or CJK still line up.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = max(3, runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	line := func(cells []string, fill func(j int, content string) string) string {
		var sb strings.Builder
		sb.WriteString("|")
		for j := range widths {
			content := ""
			if j < len(cells) {
				content = cells[j]
			}
			sb.WriteString(" ")
			sb.WriteString(fill(j, content))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
		return sb.String()
	}
	pad := func(j int, content string) string {
		return content + strings.Repeat(" ", widths[j]-runewidth.StringWidth(content))
	}

	out := line(header, pad)
	out += line(nil, func(j int, _ string) string { return strings.Repeat("-", widths[j]) })
	for _, row := range rows {
		out += line(row, pad)
	}
	_, err := io.WriteString(w, out)
	return err
}
