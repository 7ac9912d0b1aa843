package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/resource"
	"github.com/raphi011/up/internal/ui/prompt"
)

// newTerminal returns the interactive terminal, or nil when stdin or
// stderr is not a TTY. Flows without a terminal can only accept
// pre-supplied values.
func newTerminal() flow.Terminal {
	t, err := prompt.New()
	if err != nil {
		return nil
	}
	return t
}

type terminalKey struct{}

// withTerminal overrides the terminal commands prompt on.
func withTerminal(ctx context.Context, t flow.Terminal) context.Context {
	return context.WithValue(ctx, terminalKey{}, t)
}

// terminalFrom returns the context's terminal, or the interactive one.
func terminalFrom(ctx context.Context) flow.Terminal {
	if t, ok := ctx.Value(terminalKey{}).(flow.Terminal); ok {
		return t
	}
	return newTerminal()
}

// newFlowBuilder returns a builder wired to the prompt templates in the
// config directory.
func newFlowBuilder(term flow.Terminal) *flow.Builder {
	dir, err := config.TemplatesDir()
	if err != nil {
		dir = ""
	}
	return flow.NewBuilder(term).
		ResourceLoader(resource.NewLoader(dir)).
		TemplateExecutor(resource.NewExecutor())
}

// configFrom returns the context's config, or defaults.
func configFrom(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg := config.FromContext(ctx); cfg != nil {
			return cfg
		}
	}
	cfg := config.Default()
	return &cfg
}

// needsInput adds a hint to errors caused by a missing terminal.
func needsInput(err error, hint string) error {
	if errors.Is(err, flow.ErrNoTerminal) {
		return fmt.Errorf("%w (not a terminal, %s)", err, hint)
	}
	return err
}
