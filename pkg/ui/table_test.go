package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/philipparndt/goanatomy/pkg/anatomy"
)

func init() {
	// Plain output so the assertions see the raw text
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestTableRender(t *testing.T) {
	table := NewTable("Mesh", "Triangles")
	table.AddRow("Biceps_Brachii", "1200")
	table.AddRow("Deltoid")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), table.Render())
	}
	if lines[0] != "Mesh            Triangles" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "Biceps_Brachii  1200" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "Deltoid" {
		t.Errorf("short row = %q", lines[3])
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRenderRecord(t *testing.T) {
	out := RenderRecord(anatomy.PartRecord{
		Name:   "Deltoid",
		Type:   "Skeletal muscle",
		Action: "Abducts the arm",
		Origin: "Clavicle",
	})

	for _, want := range []string{"Deltoid", "Type: Skeletal muscle", "Action: Abducts the arm", "Origin: Clavicle"} {
		if !strings.Contains(out, want) {
			t.Errorf("record card missing %q:\n%s", want, out)
		}
	}
}

func TestFormatMessages(t *testing.T) {
	if got := FormatSuccess("done"); !strings.Contains(got, IconSuccess+" done") {
		t.Errorf("FormatSuccess() = %q", got)
	}
	if got := FormatWarning("careful"); !strings.Contains(got, IconWarning+" careful") {
		t.Errorf("FormatWarning() = %q", got)
	}
}
