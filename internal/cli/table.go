package cli

import (
	"strings"
)

// Table is a plain-text table with columns sized to their widest cell.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var sb strings.Builder
	sep := strings.Repeat(" ", t.padding)

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		sb.WriteString("\n")
	}

	writeRow(t.headers)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	writeRow(rules)
	for _, row := range t.rows {
		writeRow(row)
	}

	return sb.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
