// Package progress shows a spinner on stderr while long operations such
// as template clones run.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/up/internal/ui/styles"
)

type messageUpdate string

// Spinner wraps a bubbletea spinner for non-interactive use. When stderr
// is not a terminal it prints each message once instead of animating.
type Spinner struct {
	out     io.Writer
	animate bool

	program *tea.Program
	msgChan chan string
	done    chan struct{}
	mu      sync.Mutex
	running bool
	message string
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	msgChan chan string
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForMessage())
}

func (m spinnerModel) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return tea.Quit()
		}
		return messageUpdate(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageUpdate:
		m.message = string(msg)
		return m, m.waitForMessage()
	case tea.KeyPressMsg:
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		out:     os.Stderr,
		animate: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		msgChan: make(chan string, 10),
		done:    make(chan struct{}),
		message: message,
	}
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	if !s.animate {
		if s.message != "" {
			fmt.Fprintln(s.out, s.message)
		}
		close(s.done)
		return
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.AccentStyle),
	)
	model := spinnerModel{spinner: sp, message: s.message, msgChan: s.msgChan}

	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(s.out), tea.WithInput(nil))
	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// UpdateMessage changes the spinner message. Updates are dropped when the
// program falls behind.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.message = message
		return
	}
	if !s.animate {
		if message != s.message {
			fmt.Fprintln(s.out, message)
		}
		s.message = message
		return
	}
	select {
	case s.msgChan <- message:
	default:
	}
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.msgChan)
	s.mu.Unlock()

	if !s.animate {
		return
	}
	if s.program != nil {
		s.program.Quit()
	}
	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(s.out, "\r\033[K")
}
