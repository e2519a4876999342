package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lineagemap/pkg/family"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,json,dot", []string{"svg", "json", "dot"}},
		{"spaces and case", " SVG , dot", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		name   string
		in     familyInput
		output string
		want   string
	}{
		{"from input", familyInput{path: "trees/stark.json"}, "", "trees/stark"},
		{"from layout input", familyInput{path: "stark.layout.json"}, "", "stark"},
		{"explicit with ext", familyInput{path: "x.json"}, "out/tree.svg", "out/tree"},
		{"explicit without ext", familyInput{path: "x.json"}, "out/tree", "out/tree"},
		{"sample", familyInput{sample: "Kennedy"}, "", "kennedy"},
		{"stdin", familyInput{path: "-"}, "", "family"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputBase(tt.in, tt.output); got != tt.want {
				t.Errorf("outputBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		base:      filepath.Join(dir, "tree"),
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"tree.svg", "tree.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	single := filepath.Join(dir, "custom.out")
	err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg"},
		base:      filepath.Join(dir, "ignored"),
		output:    single,
	})
	if err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(single); err != nil || string(data) != "<svg/>" {
		t.Errorf("single output = %q, %v", data, err)
	}
}

func TestFamilyListModel(t *testing.T) {
	m := NewFamilyListModel([]FamilyEntry{
		{Name: "stark", People: 15},
		{Name: "broken", Broken: true},
		{Name: "tully", People: 4},
	})

	key := func(s string) tea.KeyMsg {
		if s == "enter" {
			return tea.KeyMsg{Type: tea.KeyEnter}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	next, _ := m.Update(key("j"))
	m = next.(FamilyListModel)
	next, _ = m.Update(key("enter"))
	m = next.(FamilyListModel)
	if m.Selected != nil {
		t.Error("broken entries must not be selectable")
	}

	next, _ = m.Update(key("j"))
	m = next.(FamilyListModel)
	next, cmd := m.Update(key("enter"))
	m = next.(FamilyListModel)
	if m.Selected == nil || m.Selected.Name != "tully" {
		t.Fatalf("selected = %+v", m.Selected)
	}
	if cmd == nil {
		t.Error("selection should quit the program")
	}
	if m.View() == "" {
		t.Error("View should render")
	}
}

func TestNewFamilyEntry(t *testing.T) {
	doc := &family.Document{
		Meta: family.Meta{FamilyName: "Stark"},
		People: []family.Person{
			{ID: "a", Born: "1963"},
			{ID: "b", Born: "c. 1940"},
			{ID: "c"},
		},
	}
	e := newFamilyEntry("stark", doc)
	if e.People != 3 || e.Earliest != 1940 || e.Title != "Stark" {
		t.Errorf("entry = %+v", e)
	}
}
