package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
)

// Table renders left-aligned columns sized to their content
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row; missing cells render empty
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(StyleHeader.Render(t.line(t.Headers, widths)))
	sb.WriteString("\n")

	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("─", w)
	}
	sb.WriteString(StyleMuted.Render(strings.Join(separator, "  ")))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString(t.line(row, widths))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", w-lipgloss.Width(cell))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// RenderList renders a bulleted list
func RenderList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(StyleInfo.Render("  • "))
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", StyleKey.Render(key), value)
}

// RenderRecord renders a part record as a framed card
func RenderRecord(rec anatomy.PartRecord) string {
	lines := []string{
		StyleTitle.Render(rec.Name),
		RenderKeyValue("Type", rec.Type),
		RenderKeyValue("Action", rec.Action),
		RenderKeyValue("Origin", rec.Origin),
	}
	return StyleCard.Render(strings.Join(lines, "\n"))
}
