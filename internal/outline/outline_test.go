package outline

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/mdtoc/internal/toc"
	"github.com/pfassina/mdtoc/internal/ui"
)

var testEntries = []toc.Entry{
	{Level: 1, Text: "Install", Anchor: "install", Linked: true, Line: 3},
	{Level: 2, Text: "From source", Anchor: "from-source", Linked: true, Line: 7},
	{Level: 1, Text: "Usage", Anchor: "usage", Linked: true, Line: 12},
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOutline_EnterSelects(t *testing.T) {
	m := New("doc.md", testEntries, ui.DefaultStyles())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	e, ok := m.Selected()
	if !ok || e.Line != 7 {
		t.Errorf("Selected() = %+v, %v; want line 7", e, ok)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter did not quit")
	}
}

func TestOutline_EscQuitsWithoutSelection(t *testing.T) {
	m := New("doc.md", testEntries, ui.DefaultStyles())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Selected(); ok {
		t.Error("esc produced a selection")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestOutline_CursorBounds(t *testing.T) {
	m := New("doc.md", testEntries, ui.DefaultStyles())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(testEntries)-1 {
		t.Errorf("cursor = %d after many downs, want %d", m.cursor, len(testEntries)-1)
	}
}

func TestOutline_Filter(t *testing.T) {
	m := New("doc.md", testEntries, ui.DefaultStyles())
	m, _ = update(t, m, runes("us"))
	if len(m.items) != 1 || m.items[0].Text != "Usage" {
		t.Fatalf("items = %+v, want only Usage", m.items)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if e, ok := m.Selected(); !ok || e.Line != 12 {
		t.Errorf("Selected() = %+v, %v", e, ok)
	}
}

func TestOutline_EnterEmpty(t *testing.T) {
	m := New("doc.md", nil, ui.DefaultStyles())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected nil cmd for enter on empty outline")
	}
	if _, ok := m.Selected(); ok {
		t.Error("empty outline produced a selection")
	}
}

func TestOutline_Scroll(t *testing.T) {
	var many []toc.Entry
	for i := 0; i < 30; i++ {
		many = append(many, toc.Entry{Level: 1, Text: "H", Line: i + 1})
	}
	m := New("doc.md", many, ui.DefaultStyles())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	for i := 0; i < 10; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	rows := m.visibleRows()
	if m.cursor < m.offset || m.cursor >= m.offset+rows {
		t.Errorf("cursor %d outside window [%d,%d)", m.cursor, m.offset, m.offset+rows)
	}
}

func TestFilter(t *testing.T) {
	if got := filter(testEntries, ""); len(got) != 3 {
		t.Errorf("empty query kept %d entries", len(got))
	}
	if got := filter(testEntries, "SOURCE"); len(got) != 1 || got[0].Anchor != "from-source" {
		t.Errorf("filter(SOURCE) = %+v", got)
	}
}

func TestFilter_AnchorIgnoresCase(t *testing.T) {
	entries := []toc.Entry{
		{Level: 1, Text: "Intro", Anchor: "MyRef", Linked: true, Explicit: true},
		{Level: 1, Text: "Other", Anchor: "other", Linked: true},
	}
	for _, q := range []string{"myref", "MYREF", "MyRef"} {
		if got := filter(entries, q); len(got) != 1 || got[0].Text != "Intro" {
			t.Errorf("filter(%q) = %+v", q, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}

func TestTruncate_StyledText(t *testing.T) {
	styled := "ab \x1b[38;5;240m#anchor-text\x1b[0m"
	got := truncate(styled, 7)
	if plain := ansi.Strip(got); plain != "ab #..." {
		t.Errorf("visible text = %q, want %q", plain, "ab #...")
	}
	if w := ansi.StringWidth(got); w != 7 {
		t.Errorf("width = %d, want 7", w)
	}
}
