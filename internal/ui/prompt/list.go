package prompt

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/ui/styles"
)

// defaultWindow is the number of visible rows when a step sets no max.
const defaultWindow = 10

// itemSource implements fuzzy.Source over item names.
type itemSource []flow.SelectItem

func (s itemSource) String(i int) string { return s[i].Name }
func (s itemSource) Len() int            { return len(s) }

// listModel selects from items with a fuzzy filter. In multi mode space
// toggles the item under the cursor and enter confirms the selection.
type listModel struct {
	header string
	label  string
	items  []flow.SelectItem
	multi  bool
	window int

	filter   string
	filtered []fuzzy.Match // indexes into items
	cursor   int           // position in filtered
	offset   int           // first visible row

	selected  map[int]bool // item index, multi mode
	choice    int          // item index, single mode; -1 if none
	done      bool
	cancelled bool
}

func newListModel(header, label string, items []flow.SelectItem, maxItems int, multi bool) listModel {
	window := maxItems
	if window <= 0 {
		window = defaultWindow
	}
	m := listModel{
		header:   header,
		label:    label,
		items:    items,
		multi:    multi,
		window:   window,
		selected: make(map[int]bool),
		choice:   -1,
	}
	m.applyFilter()
	return m
}

// highlight places the cursor on the enabled item with value v.
func (m *listModel) highlight(v string) {
	for pos, match := range m.filtered {
		item := m.items[match.Index]
		if item.Enabled && item.Value == v {
			m.cursor = pos
			m.scroll()
			return
		}
	}
}

// preselect marks enabled items whose value is in values.
func (m *listModel) preselect(values []string) {
	for i, item := range m.items {
		if item.Enabled && slices.Contains(values, item.Value) {
			m.selected[i] = true
		}
	}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+p":
		m.move(-1)
	case "down", "ctrl+n":
		m.move(1)
	case "home", "pgup":
		m.cursor = -1
		m.move(1)
	case "end", "pgdown":
		m.cursor = len(m.filtered)
		m.move(-1)
	case "space":
		if m.multi {
			m.toggle()
		} else {
			m.typed(" ")
		}
	case "enter":
		if m.multi {
			m.done = true
			return m, tea.Quit
		}
		if item, ok := m.current(); ok && m.items[item].Enabled {
			m.choice = item
			m.done = true
			return m, tea.Quit
		}
		if !m.hasEnabled() {
			m.done = true
			return m, tea.Quit
		}
	case "backspace":
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case "ctrl+u":
		m.filter = ""
		m.applyFilter()
	default:
		m.typed(key.Text)
	}
	return m, nil
}

func (m *listModel) typed(text string) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
	if text == "" {
		return
	}
	m.filter += text
	m.applyFilter()
}

func (m *listModel) toggle() {
	idx, ok := m.current()
	if !ok || !m.items[idx].Enabled {
		return
	}
	if m.selected[idx] {
		delete(m.selected, idx)
	} else {
		m.selected[idx] = true
	}
}

// move steps the cursor by dir, skipping disabled items. The cursor stays
// put when no enabled item lies in that direction.
func (m *listModel) move(dir int) {
	for pos := m.cursor + dir; pos >= 0 && pos < len(m.filtered); pos += dir {
		if m.items[m.filtered[pos].Index].Enabled {
			m.cursor = pos
			break
		}
	}
	m.cursor = max(0, min(m.cursor, len(m.filtered)-1))
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *listModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.window {
		m.offset = m.cursor - m.window + 1
	}
	m.offset = max(0, min(m.offset, len(m.filtered)-m.window))
}

func (m listModel) current() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return 0, false
	}
	return m.filtered[m.cursor].Index, true
}

func (m listModel) hasEnabled() bool {
	return slices.ContainsFunc(m.items, func(i flow.SelectItem) bool { return i.Enabled })
}

func (m *listModel) applyFilter() {
	if m.filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.filtered[i] = fuzzy.Match{Str: item.Name, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(m.filter, itemSource(m.items))
	}
	m.cursor, m.offset = -1, 0
	m.move(1)
}

// chosen returns the item picked in single mode.
func (m listModel) chosen() (flow.SelectItem, bool) {
	if m.choice < 0 {
		return flow.SelectItem{}, false
	}
	return m.items[m.choice], true
}

// selectedValues returns the toggled values in item order.
func (m listModel) selectedValues() []string {
	var values []string
	for i, item := range m.items {
		if m.selected[i] {
			values = append(values, item.Value)
		}
	}
	return values
}

func (m listModel) selectedNames() []string {
	var names []string
	for i, item := range m.items {
		if m.selected[i] {
			names = append(names, item.Name)
		}
	}
	return names
}

func (m listModel) render() string {
	if m.cancelled {
		return ""
	}
	if m.done {
		if m.multi {
			return summary(m.label, strings.Join(m.selectedNames(), ", ")) + "\n"
		}
		item, _ := m.chosen()
		return summary(m.label, item.Name) + "\n"
	}

	sym := styles.CurrentSymbols()
	var b strings.Builder
	b.WriteString(m.header)
	if m.multi {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d selected)", len(m.selected))))
	}
	b.WriteString("\n")
	if m.filter != "" {
		b.WriteString(styles.MutedStyle.Render("Filter: ") + m.filter + "\n")
	}

	end := min(m.offset+m.window, len(m.filtered))
	if m.offset > 0 {
		b.WriteString(styles.MutedStyle.Render("  "+sym.MoreAbove+" more above") + "\n")
	}
	for pos := m.offset; pos < end; pos++ {
		b.WriteString(m.row(pos) + "\n")
	}
	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  "+sym.MoreBelow+" more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching items") + "\n")
	}

	help := "↑/↓ move • type to filter • enter confirm • esc cancel"
	if m.multi {
		help = "↑/↓ move • space toggle • type to filter • enter confirm • esc cancel"
	}
	b.WriteString(styles.MutedStyle.Render(help) + "\n")
	return b.String()
}

func (m listModel) row(pos int) string {
	sym := styles.CurrentSymbols()
	match := m.filtered[pos]
	item := m.items[match.Index]
	active := pos == m.cursor

	cursor := strings.Repeat(" ", len([]rune(sym.Cursor)))
	if active && item.Enabled {
		cursor = styles.AccentStyle.Render(sym.Cursor)
	}

	box := ""
	if m.multi {
		box = sym.Unchecked + " "
		if m.selected[match.Index] {
			box = styles.SuccessStyle.Render(sym.Checked) + " "
		}
	}

	var name string
	switch {
	case !item.Enabled:
		name = styles.MutedStyle.Render(item.Name)
	case len(match.MatchedIndexes) > 0:
		name = highlightMatches(item.Name, match.MatchedIndexes, active)
	case active:
		name = styles.AccentStyle.Render(item.Name)
	default:
		name = styles.NormalStyle.Render(item.Name)
	}
	if item.Description != "" {
		name += styles.MutedStyle.Render(" - " + item.Description)
	}
	return cursor + " " + box + name
}

func (m listModel) View() tea.View {
	return tea.NewView(m.render())
}

// highlightMatches renders name with the fuzzy-matched runes emphasized.
// matched holds byte offsets into name.
func highlightMatches(name string, matched []int, active bool) string {
	base := styles.NormalStyle
	if active {
		base = styles.AccentStyle
	}
	var b strings.Builder
	for i, r := range name {
		if slices.Contains(matched, i) {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
