package prompt

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/ui/styles"
)

// ErrNotInteractive is returned when stdin or stderr is not a terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// Terminal prompts on stderr and reads keys from stdin.
type Terminal struct {
	in      io.Reader
	out     io.Writer
	profile colorprofile.Profile
}

var _ flow.Terminal = (*Terminal)(nil)

// New returns a Terminal bound to the process's stdin and stderr.
func New() (*Terminal, error) {
	if !Interactive() {
		return nil, ErrNotInteractive
	}
	return &Terminal{
		in:      os.Stdin,
		out:     os.Stderr,
		profile: colorprofile.Detect(os.Stderr, os.Environ()),
	}, nil
}

// Interactive reports whether both stdin and stderr are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run executes model until it quits and returns the final model.
func run[M tea.Model](ctx context.Context, t *Terminal, m M) (M, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithColorProfile(t.profile),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m, ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return m, flow.ErrCancelled
		}
		return m, err
	}
	fm, ok := final.(M)
	if !ok {
		return m, fmt.Errorf("unexpected model type %T", final)
	}
	return fm, nil
}

// ReadText prompts for a line of text. A blank answer takes the default.
func (t *Terminal) ReadText(ctx context.Context, s *flow.TextState) error {
	head, err := headerFor(s.Lines, s.StepState)
	if err != nil {
		return err
	}
	m, err := run(ctx, t, newTextModel(head, label(s.StepState), s.DefaultValue, false))
	if err != nil {
		return err
	}
	if m.cancelled {
		return flow.ErrCancelled
	}
	s.ResultValue = m.value()
	return nil
}

// ReadPath prompts for a filesystem path. A blank answer takes the default.
func (t *Terminal) ReadPath(ctx context.Context, s *flow.PathState) error {
	head, err := headerFor(s.Lines, s.StepState)
	if err != nil {
		return err
	}
	m, err := run(ctx, t, newTextModel(head, label(s.StepState), s.DefaultValue, true))
	if err != nil {
		return err
	}
	if m.cancelled {
		return flow.ErrCancelled
	}
	s.ResultValue = m.value()
	return nil
}

// SelectOne lets the user pick one enabled item.
func (t *Terminal) SelectOne(ctx context.Context, s *flow.SingleChoiceState) error {
	head, err := headerFor(s.Lines, s.StepState)
	if err != nil {
		return err
	}
	model := newListModel(head, label(s.StepState), s.Items, s.MaxItems, false)
	model.highlight(s.DefaultValue)

	m, err := run(ctx, t, model)
	if err != nil {
		return err
	}
	if m.cancelled {
		return flow.ErrCancelled
	}
	if item, ok := m.chosen(); ok {
		s.ResultValue = item.Value
		s.Selected = true
	}
	return nil
}

// SelectMany lets the user toggle any number of enabled items.
func (t *Terminal) SelectMany(ctx context.Context, s *flow.MultiChoiceState) error {
	head, err := headerFor(s.Lines, s.StepState)
	if err != nil {
		return err
	}
	model := newListModel(head, label(s.StepState), s.Items, s.MaxItems, true)
	model.preselect(s.DefaultValues)

	m, err := run(ctx, t, model)
	if err != nil {
		return err
	}
	if m.cancelled {
		return flow.ErrCancelled
	}
	s.ResultValues = m.selectedValues()
	return nil
}

func label(s flow.StepState) string {
	return cmp.Or(s.Name, s.ID)
}

// headerFor resolves the step's header lines, falling back to its label.
func headerFor(lines func() ([]string, error), s flow.StepState) (string, error) {
	l, err := lines()
	if err != nil {
		return "", err
	}
	if len(l) > 0 {
		return strings.Join(l, "\n"), nil
	}
	return styles.PrimaryStyle.Bold(true).Render(label(s)), nil
}

// summary is the line left on screen after a prompt completes.
func summary(label, value string) string {
	return styles.SuccessStyle.Render(styles.CurrentSymbols().Done) + " " +
		styles.Bold.Render(label) + " " + styles.AccentStyle.Render(value)
}
