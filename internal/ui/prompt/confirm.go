package prompt

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/ui/styles"
)

type confirmModel struct {
	question  string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) render() string {
	if m.done {
		return ""
	}
	return styles.Bold.Render(m.question) + styles.MutedStyle.Render(" [y/N] ")
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

// Confirm asks a yes/no question. Enter answers no; esc returns
// flow.ErrCancelled.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	m, err := run(ctx, t, confirmModel{question: question})
	if err != nil {
		return false, err
	}
	if m.cancelled {
		return false, flow.ErrCancelled
	}
	return m.confirmed, nil
}
