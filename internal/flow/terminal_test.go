package flow

import (
	"context"
	"slices"
)

// fakeTerminal answers prompts from canned values and records every call.
type fakeTerminal struct {
	text   map[string]string
	single map[string]string
	multi  map[string][]string
	errs   map[string]error

	calls    []string
	defaults map[string]any // default seen by the terminal, per step id
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{
		text:     map[string]string{},
		single:   map[string]string{},
		multi:    map[string][]string{},
		errs:     map[string]error{},
		defaults: map[string]any{},
	}
}

func (t *fakeTerminal) ReadText(_ context.Context, s *TextState) error {
	t.calls = append(t.calls, s.ID)
	t.defaults[s.ID] = s.DefaultValue
	if err := t.errs[s.ID]; err != nil {
		return err
	}
	s.ResultValue = s.DefaultValue
	if v, ok := t.text[s.ID]; ok {
		s.ResultValue = v
	}
	return nil
}

func (t *fakeTerminal) ReadPath(_ context.Context, s *PathState) error {
	t.calls = append(t.calls, s.ID)
	t.defaults[s.ID] = s.DefaultValue
	if err := t.errs[s.ID]; err != nil {
		return err
	}
	s.ResultValue = s.DefaultValue
	if v, ok := t.text[s.ID]; ok {
		s.ResultValue = v
	}
	return nil
}

func (t *fakeTerminal) SelectOne(_ context.Context, s *SingleChoiceState) error {
	t.calls = append(t.calls, s.ID)
	t.defaults[s.ID] = s.DefaultValue
	if err := t.errs[s.ID]; err != nil {
		return err
	}
	v, ok := t.single[s.ID]
	if !ok {
		v, ok = s.DefaultValue, s.DefaultValue != ""
	}
	if ok {
		s.ResultValue = v
		s.Selected = true
	}
	return nil
}

func (t *fakeTerminal) SelectMany(_ context.Context, s *MultiChoiceState) error {
	t.calls = append(t.calls, s.ID)
	t.defaults[s.ID] = slices.Clone(s.DefaultValues)
	if err := t.errs[s.ID]; err != nil {
		return err
	}
	s.ResultValues = slices.Clone(s.DefaultValues)
	if v, ok := t.multi[s.ID]; ok {
		s.ResultValues = v
	}
	return nil
}

// mapLoader serves templates from memory.
type mapLoader map[string]string

func (m mapLoader) Load(location string) (string, error) {
	if s, ok := m[location]; ok {
		return s, nil
	}
	return "", ErrResourceNotFound
}

// echoExecutor returns the template text followed by the step name.
type echoExecutor struct{}

func (echoExecutor) Render(tmpl string, data any) ([]string, error) {
	name := ""
	switch s := data.(type) {
	case *TextState:
		name = s.Name
	case *PathState:
		name = s.Name
	case *SingleChoiceState:
		name = s.Name
	case *MultiChoiceState:
		name = s.Name
	}
	return []string{tmpl, name}, nil
}
