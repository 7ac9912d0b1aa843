package prompt

import (
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/up/internal/ui/styles"
)

// textModel reads one line. Path mode adds a hint about the target.
type textModel struct {
	input        textinput.Model
	header       string
	label        string
	defaultValue string
	path         bool
	done         bool
	cancelled    bool
}

func newTextModel(header, label, defaultValue string, path bool) textModel {
	ti := textinput.New()
	ti.Prompt = styles.CurrentSymbols().Cursor + " "
	ti.Placeholder = defaultValue
	ti.SetWidth(60)

	s := ti.Styles()
	s.Focused.Prompt = styles.AccentStyle
	s.Focused.Placeholder = styles.MutedStyle
	s.Cursor.Color = styles.Accent
	s.Cursor.Shape = tea.CursorBar
	ti.SetStyles(s)
	ti.Focus()

	return textModel{
		input:        ti,
		header:       header,
		label:        label,
		defaultValue: defaultValue,
		path:         path,
	}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "tab":
			if m.input.Value() == "" && m.defaultValue != "" {
				m.input.SetValue(m.defaultValue)
				m.input.CursorEnd()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// value is the typed text, or the default when nothing was typed.
func (m textModel) value() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.defaultValue
}

func (m textModel) render() string {
	if m.cancelled {
		return ""
	}
	if m.done {
		return summary(m.label, m.value()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.header + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.path {
		if hint := pathHint(m.value()); hint != "" {
			b.WriteString("  " + hint + "\n")
		}
	}
	help := "enter confirm • esc cancel"
	if m.defaultValue != "" {
		help = "tab fill default • " + help
	}
	b.WriteString(styles.MutedStyle.Render(help) + "\n")
	return b.String()
}

func (m textModel) View() tea.View {
	return tea.NewView(m.render())
}

// pathHint describes what exists at p.
func pathHint(p string) string {
	if p == "" {
		return ""
	}
	sym := styles.CurrentSymbols()
	info, err := os.Stat(expandHome(p))
	switch {
	case err != nil:
		return styles.MutedStyle.Render(sym.FolderMiss + " will be created")
	case info.IsDir():
		return styles.MutedStyle.Render(sym.Folder + " directory exists")
	default:
		return styles.WarningStyle.Render("not a directory")
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
