package flow

import (
	"errors"
	"fmt"
)

// StepState is the transient prompting state shared by all kinds.
// Hooks receive the kind-specific state which embeds it.
type StepState struct {
	ID      string
	Name    string
	Context *Context // the run's context, set before pre-run hooks

	// TemplateLocation names the resource rendered as the prompt header.
	TemplateLocation string

	loader   ResourceLoader
	executor TemplateExecutor
	fallback string // kind default template, tried when TemplateLocation is empty
}

func (s *StepState) bind(c *Context) { s.Context = c }

// render resolves the step's template and executes it against data.
// Returns nil lines if no template applies.
func (s *StepState) render(data any) ([]string, error) {
	if s.loader == nil || s.executor == nil {
		return nil, nil
	}
	location := s.TemplateLocation
	explicit := location != ""
	if !explicit {
		location = s.fallback
	}
	if location == "" {
		return nil, nil
	}
	tmpl, err := s.loader.Load(location)
	if err != nil {
		if !explicit && errors.Is(err, ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load template %q: %w", location, err)
	}
	lines, err := s.executor.Render(tmpl, data)
	if err != nil {
		return nil, fmt.Errorf("render template %q: %w", location, err)
	}
	return lines, nil
}

// TextState is the prompting state of a text step.
type TextState struct {
	StepState
	DefaultValue string
	ResultValue  string

	renderer func(*TextState) []string
}

// Lines returns the prompt header: the custom renderer's output, else the
// rendered template, else nil for the terminal's default presentation.
func (s *TextState) Lines() ([]string, error) {
	if s.renderer != nil {
		return s.renderer(s), nil
	}
	return s.render(s)
}

// PathState is the prompting state of a path step.
type PathState struct {
	StepState
	DefaultValue string
	ResultValue  string

	renderer func(*PathState) []string
}

// Lines returns the prompt header. See [TextState.Lines].
func (s *PathState) Lines() ([]string, error) {
	if s.renderer != nil {
		return s.renderer(s), nil
	}
	return s.render(s)
}

// SingleChoiceState is the prompting state of a single choice step.
// Items are already ordered by the step's comparator.
type SingleChoiceState struct {
	StepState
	Items        []SelectItem
	MaxItems     int    // 0 means no limit
	DefaultValue string // value of the initially highlighted item
	ResultValue  string
	Selected     bool // false if the terminal finished without a choice

	renderer func(*SingleChoiceState) []string
}

// Lines returns the prompt header. See [TextState.Lines].
func (s *SingleChoiceState) Lines() ([]string, error) {
	if s.renderer != nil {
		return s.renderer(s), nil
	}
	return s.render(s)
}

// MultiChoiceState is the prompting state of a multi choice step.
type MultiChoiceState struct {
	StepState
	Items         []SelectItem
	MaxItems      int      // 0 means no limit
	DefaultValues []string // values initially selected
	ResultValues  []string

	renderer func(*MultiChoiceState) []string
}

// Lines returns the prompt header. See [TextState.Lines].
func (s *MultiChoiceState) Lines() ([]string, error) {
	if s.renderer != nil {
		return s.renderer(s), nil
	}
	return s.render(s)
}
