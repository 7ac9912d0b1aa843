package flow

import "context"

// stepState is implemented by the four state types through StepState.
type stepState interface {
	bind(*Context)
}

// Component wraps one prompting interaction with its pre-run and post-run
// hooks. S is the state pointer type, e.g. *TextState.
type Component[S stepState] struct {
	state    S
	interact func(context.Context, S) error
	preRun   []func(S)
	postRun  []func(S)
}

// NewComponent returns a component that runs interact against state.
func NewComponent[S stepState](state S, interact func(context.Context, S) error) *Component[S] {
	return &Component[S]{state: state, interact: interact}
}

// AddPreRunHook appends a hook run before the interaction.
func (c *Component[S]) AddPreRunHook(h func(S)) {
	c.preRun = append(c.preRun, h)
}

// AddPostRunHook appends a hook run after a successful interaction.
func (c *Component[S]) AddPostRunHook(h func(S)) {
	c.postRun = append(c.postRun, h)
}

// State returns the component's state.
func (c *Component[S]) State() S {
	return c.state
}

// Run binds fc to the state and performs pre-run hooks, the interaction and
// post-run hooks in that order. If the interaction fails, post-run hooks
// are skipped and the error is returned.
func (c *Component[S]) Run(ctx context.Context, fc *Context) (*Context, error) {
	c.state.bind(fc)
	for _, h := range c.preRun {
		h(c.state)
	}
	if err := c.interact(ctx, c.state); err != nil {
		return nil, err
	}
	for _, h := range c.postRun {
		h(c.state)
	}
	return fc, nil
}
