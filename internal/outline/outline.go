// Package outline is an interactive browser over a document's TOC entries.
package outline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/mdtoc/internal/toc"
	"github.com/pfassina/mdtoc/internal/ui"
)

// Model lists TOC entries with a filter input. Enter selects an entry and
// quits; Esc quits without a selection.
type Model struct {
	title    string
	input    textinput.Model
	entries  []toc.Entry
	items    []toc.Entry
	cursor   int
	offset   int
	width    int
	height   int
	styles   ui.Styles
	selected *toc.Entry
}

func New(title string, entries []toc.Entry, styles ui.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter headings..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return Model{
		title:   title,
		input:   ti,
		entries: entries,
		items:   entries,
		styles:  styles,
	}
}

// Selected returns the chosen entry, if any.
func (m Model) Selected() (toc.Entry, bool) {
	if m.selected == nil {
		return toc.Entry{}, false
	}
	return *m.selected, true
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width/2-8, 10)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.items) {
				e := m.items[m.cursor]
				m.selected = &e
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()
			return m, nil

		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			m.scroll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	prevValue := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	// Re-filter on input change
	if m.input.Value() != prevValue {
		m.items = filter(m.entries, m.input.Value())
		m.cursor = 0
		m.offset = 0
	}
	return m, cmd
}

// visibleRows is how many entries fit below the title and input.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-6, 3)
}

func (m *Model) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) View() string {
	s := m.styles

	width := m.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	var lines []string
	lines = append(lines, s.Title.Render(m.title))
	lines = append(lines, m.input.View())
	lines = append(lines, "")

	if len(m.items) == 0 {
		lines = append(lines, s.Dim.Render("No headings"))
	}

	end := min(m.offset+m.visibleRows(), len(m.items))
	for i := m.offset; i < end; i++ {
		e := m.items[i]
		prefix := "  "
		style := s.Normal
		if i == m.cursor {
			prefix = "> "
			style = s.Selected
		}

		line := prefix + strings.Repeat("  ", e.Level-1) + e.Text
		if e.Linked {
			line += " " + s.Dim.Render("#"+e.Anchor)
		}
		if lipgloss.Width(line) > innerWidth {
			line = truncate(line, innerWidth)
		}
		lines = append(lines, style.Render(line))
	}

	if more := len(m.items) - end; more > 0 {
		lines = append(lines, s.Dim.Render(fmt.Sprintf("  ... and %d more", more)))
	}

	return s.Panel.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

// filter keeps entries whose text or anchor contains query, ignoring case.
func filter(entries []toc.Entry, query string) []toc.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var out []toc.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Text), query) || strings.Contains(strings.ToLower(e.Anchor), query) {
			out = append(out, e)
		}
	}
	return out
}

// truncate cuts s to width display cells, keeping escape sequences intact.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}

// Run shows the browser on the terminal and returns the chosen entry.
func Run(title string, entries []toc.Entry, opts ...tea.ProgramOption) (toc.Entry, bool, error) {
	final, err := tea.NewProgram(New(title, entries, ui.DefaultStyles()), opts...).Run()
	if err != nil {
		return toc.Entry{}, false, err
	}
	e, ok := final.(Model).Selected()
	return e, ok, nil
}
