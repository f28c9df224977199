package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscape matches SGR escape sequences used by colour swatches.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Table renders aligned text columns. Cell widths ignore ANSI colour escapes,
// so swatch columns line up with plain ones.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	alignRight map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		alignRight: make(map[int]bool),
	}
}

// AlignRight right-aligns a column, typically a numeric one.
func (t *Table) AlignRight(col int) {
	t.alignRight[col] = true
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
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	var b strings.Builder
	sep := strings.Repeat(" ", t.padding)

	t.writeRow(&b, t.headers, widths, sep)

	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(dashes, sep))
	b.WriteString("\n")

	for _, row := range t.rows {
		t.writeRow(&b, row, widths, sep)
	}

	return b.String()
}

func (t *Table) writeRow(b *strings.Builder, row []string, widths []int, sep string) {
	parts := make([]string, len(row))
	for i, cell := range row {
		if t.alignRight[i] {
			parts[i] = padLeft(cell, widths[i])
		} else {
			parts[i] = padRight(cell, widths[i])
		}
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
	b.WriteString("\n")
}

// displayWidth returns the number of runes in s, excluding ANSI escapes.
func displayWidth(s string) int {
	return utf8.RuneCountInString(ansiEscape.ReplaceAllString(s, ""))
}

// padRight pads s with spaces on the right to reach the display width.
func padRight(s string, width int) string {
	if n := displayWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft pads s with spaces on the left to reach the display width.
func padLeft(s string, width int) string {
	if n := displayWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
