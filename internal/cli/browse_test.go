package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/weslpkg/pkg/bundle"
)

func browseBundles() []*bundle.Descriptor {
	return []*bundle.Descriptor{
		{
			Name:    "random_wgsl",
			Edition: "unstable_2025_1",
			Modules: bundle.Modules{{Path: "lib.wgsl", Source: "fn pcg() {}\n"}},
		},
		{
			Name:    "lygia__shader_utils",
			Edition: "unstable_2025_1",
			Modules: bundle.Modules{
				{Path: "color.wesl", Source: "fn rgb2hsv() {}"},
				{Path: "math.wesl", Source: "const PI = 3.14159;\nconst TAU = 6.28318;\n"},
			},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ModuleListModel, keys ...string) (ModuleListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(ModuleListModel)
	}
	return m, cmd
}

func TestNewModuleListModel(t *testing.T) {
	m := NewModuleListModel(browseBundles())
	if len(m.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(m.Entries))
	}
	want := []string{"lib.wgsl", "color.wesl", "math.wesl"}
	for i, e := range m.Entries {
		if e.Module.Path != want[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Module.Path, want[i])
		}
	}
	if m.Entries[1].Bundle.Name != "lygia__shader_utils" {
		t.Errorf("entry 1 bundle = %s", m.Entries[1].Bundle.Name)
	}
}

func TestModuleListNavigation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		cursor int
	}{
		{"start", nil, 0},
		{"down", []string{"down"}, 1},
		{"vim down", []string{"j", "j"}, 2},
		{"stops at end", []string{"down", "down", "down", "down"}, 2},
		{"up", []string{"down", "down", "up"}, 1},
		{"vim up stops at start", []string{"k", "k"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewModuleListModel(browseBundles()), tt.keys...)
			if m.Cursor != tt.cursor {
				t.Errorf("cursor = %d, want %d", m.Cursor, tt.cursor)
			}
		})
	}
}

func TestModuleListScrolls(t *testing.T) {
	m := NewModuleListModel(browseBundles())
	m.Height = 2

	m, _ = press(m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
	m, _ = press(m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0", m.Offset)
	}
}

func TestModuleListSelect(t *testing.T) {
	m, cmd := press(NewModuleListModel(browseBundles()), "down", "down", "enter")
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if m.Selected == nil {
		t.Fatal("no selection")
	}
	if m.Selected.Module.Path != "math.wesl" || m.Selected.Bundle.Name != "lygia__shader_utils" {
		t.Errorf("selected %s/%s", m.Selected.Bundle.Name, m.Selected.Module.Path)
	}
}

func TestModuleListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := press(NewModuleListModel(browseBundles()), k)
		if cmd == nil {
			t.Errorf("%s should quit", k)
		}
		if m.Selected != nil {
			t.Errorf("%s should not select", k)
		}
	}
}

func TestModuleListEmptyEnter(t *testing.T) {
	m, cmd := press(NewModuleListModel(nil), "enter")
	if cmd != nil || m.Selected != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestModuleListView(t *testing.T) {
	view := NewModuleListModel(browseBundles()).View()
	for _, want := range []string{"Select Module", "random_wgsl", "math.wesl", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
	}
	for _, tt := range tests {
		if got := lineCount(tt.src); got != tt.want {
			t.Errorf("lineCount(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
}
