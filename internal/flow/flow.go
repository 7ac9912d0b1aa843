package flow

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/raphi011/up/internal/log"
)

// Flow is a compiled, ordered list of steps. A Flow holds no per-run
// state and may be run any number of times.
type Flow struct {
	terminal Terminal
	loader   ResourceLoader
	executor TemplateExecutor
	steps    []Spec
}

// Result is the outcome of a successful run.
type Result struct {
	ctx *Context
}

// Context returns the answers collected by the run.
func (r *Result) Context() *Context {
	return r.ctx
}

// Steps returns the step specifications in execution order.
func (f *Flow) Steps() []Spec {
	steps := slices.Clone(f.steps)
	slices.SortFunc(steps, func(a, b Spec) int { return cmp.Compare(a.Order(), b.Order()) })
	return steps
}

// Run executes every step in order against a fresh Context.
// It stops at the first terminal error or when ctx is cancelled; no
// Result is returned in that case.
func (f *Flow) Run(ctx context.Context) (*Result, error) {
	l := log.FromContext(ctx)
	c := NewContext()
	for _, s := range f.Steps() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		switch s := s.(type) {
		case *TextSpec:
			err = f.runText(ctx, s, c)
		case *PathSpec:
			err = f.runPath(ctx, s, c)
		case *SingleChoiceSpec:
			err = f.runSingle(ctx, s, c)
		case *MultiChoiceSpec:
			err = f.runMulti(ctx, s, c)
		default:
			panic(fmt.Sprintf("flow: unknown step type %T", s))
		}
		if err != nil {
			l.Debug("step failed", "id", s.ID(), "error", err)
			return nil, fmt.Errorf("step %q: %w", s.ID(), err)
		}
	}
	return &Result{ctx: c}, nil
}

// skip reports whether s resolves from its pre-supplied value.
func skip(s Spec, usable bool) bool {
	return s.Mode() == Accept && s.StoresResult() && usable
}

// seed reports whether s prompts with its pre-supplied value as default.
func seed(s Spec, usable bool) bool {
	return s.Mode() == Verify && s.StoresResult() && usable
}

func (f *Flow) stepState(s Spec, kind Kind) StepState {
	b := s.base()
	return StepState{
		ID:               b.id,
		Name:             b.name,
		TemplateLocation: b.template,
		loader:           f.loader,
		executor:         f.executor,
		fallback:         kind.defaultTemplate(),
	}
}

// interactWith adapts a Terminal method to a component interaction.
// The interaction fails with ErrNoTerminal when t is nil.
func interactWith[S any](t Terminal, call func(Terminal, context.Context, S) error) func(context.Context, S) error {
	return func(ctx context.Context, s S) error {
		if t == nil {
			return ErrNoTerminal
		}
		return call(t, ctx, s)
	}
}

func (f *Flow) runText(ctx context.Context, s *TextSpec, c *Context) error {
	l := log.FromContext(ctx)
	usable := hasText(s.resultValue)
	if skip(s, usable) {
		l.Debug("accepting pre-supplied value", "id", s.id, "kind", TextKind)
		c.Put(s.id, s.resultValue)
		return nil
	}

	state := &TextState{
		StepState:    f.stepState(s, TextKind),
		DefaultValue: s.defaultValue,
		renderer:     s.renderer,
	}
	comp := NewComponent(state, interactWith(f.terminal, Terminal.ReadText))
	if seed(s, usable) {
		comp.AddPreRunHook(func(st *TextState) { st.DefaultValue = s.resultValue })
	}
	if s.store {
		comp.AddPostRunHook(func(st *TextState) { st.Context.Put(s.id, st.ResultValue) })
	}
	for _, h := range s.preHooks {
		comp.AddPreRunHook(h)
	}
	for _, h := range s.postHooks {
		comp.AddPostRunHook(h)
	}

	l.Debug("prompting", "id", s.id, "kind", TextKind, "mode", s.mode)
	_, err := comp.Run(ctx, c)
	return err
}

func (f *Flow) runPath(ctx context.Context, s *PathSpec, c *Context) error {
	l := log.FromContext(ctx)
	usable := hasText(s.resultValue)
	if skip(s, usable) {
		l.Debug("accepting pre-supplied value", "id", s.id, "kind", PathKind)
		c.Put(s.id, s.resultValue)
		return nil
	}

	state := &PathState{
		StepState:    f.stepState(s, PathKind),
		DefaultValue: s.defaultValue,
		renderer:     s.renderer,
	}
	comp := NewComponent(state, interactWith(f.terminal, Terminal.ReadPath))
	if seed(s, usable) {
		comp.AddPreRunHook(func(st *PathState) { st.DefaultValue = s.resultValue })
	}
	if s.store {
		comp.AddPostRunHook(func(st *PathState) { st.Context.Put(s.id, st.ResultValue) })
	}
	for _, h := range s.preHooks {
		comp.AddPreRunHook(h)
	}
	for _, h := range s.postHooks {
		comp.AddPostRunHook(h)
	}

	l.Debug("prompting", "id", s.id, "kind", PathKind, "mode", s.mode)
	_, err := comp.Run(ctx, c)
	return err
}

func (f *Flow) runSingle(ctx context.Context, s *SingleChoiceSpec, c *Context) error {
	l := log.FromContext(ctx)
	usable := hasText(s.resultValue)
	if skip(s, usable) {
		l.Debug("accepting pre-supplied value", "id", s.id, "kind", SingleChoiceKind)
		c.Put(s.id, s.resultValue)
		return nil
	}

	state := &SingleChoiceState{
		StepState: f.stepState(s, SingleChoiceKind),
		Items:     sortItems(s.items, s.comparator),
		MaxItems:  s.maxItems,
		renderer:  s.renderer,
	}
	comp := NewComponent(state, interactWith(f.terminal, Terminal.SelectOne))
	if seed(s, usable) {
		comp.AddPreRunHook(func(st *SingleChoiceState) {
			if i := slices.IndexFunc(st.Items, func(it SelectItem) bool { return it.Value == s.resultValue }); i >= 0 {
				st.DefaultValue = st.Items[i].Value
			}
		})
	}
	if s.store {
		comp.AddPostRunHook(func(st *SingleChoiceState) {
			if st.Selected {
				st.Context.Put(s.id, st.ResultValue)
			}
		})
	}
	for _, h := range s.preHooks {
		comp.AddPreRunHook(h)
	}
	for _, h := range s.postHooks {
		comp.AddPostRunHook(h)
	}

	l.Debug("prompting", "id", s.id, "kind", SingleChoiceKind, "mode", s.mode, "items", len(state.Items))
	_, err := comp.Run(ctx, c)
	return err
}

func (f *Flow) runMulti(ctx context.Context, s *MultiChoiceSpec, c *Context) error {
	l := log.FromContext(ctx)
	usable := len(s.resultValues) > 0
	if skip(s, usable) {
		l.Debug("accepting pre-supplied values", "id", s.id, "kind", MultiChoiceKind)
		c.Put(s.id, slices.Clone(s.resultValues))
		return nil
	}

	state := &MultiChoiceState{
		StepState: f.stepState(s, MultiChoiceKind),
		Items:     sortItems(s.items, s.comparator),
		MaxItems:  s.maxItems,
		renderer:  s.renderer,
	}
	comp := NewComponent(state, interactWith(f.terminal, Terminal.SelectMany))
	if seed(s, usable) {
		comp.AddPreRunHook(func(st *MultiChoiceState) {
			st.DefaultValues = nil
			for _, it := range st.Items {
				if slices.Contains(s.resultValues, it.Value) {
					st.DefaultValues = append(st.DefaultValues, it.Value)
				}
			}
		})
	}
	if s.store {
		comp.AddPostRunHook(func(st *MultiChoiceState) {
			st.Context.Put(s.id, slices.Clone(st.ResultValues))
		})
	}
	for _, h := range s.preHooks {
		comp.AddPreRunHook(h)
	}
	for _, h := range s.postHooks {
		comp.AddPostRunHook(h)
	}

	l.Debug("prompting", "id", s.id, "kind", MultiChoiceKind, "mode", s.mode, "items", len(state.Items))
	_, err := comp.Run(ctx, c)
	return err
}

// sortItems returns a copy of items ordered by cmp. A nil comparator
// keeps declaration order.
func sortItems(items []SelectItem, cmp Comparator) []SelectItem {
	out := slices.Clone(items)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}
