package flow

import (
	"context"
	"errors"
	"fmt"
)

// Terminal performs the blocking interaction for one step. Implementations
// fill the result fields of the state they are given.
type Terminal interface {
	ReadText(ctx context.Context, s *TextState) error
	ReadPath(ctx context.Context, s *PathState) error
	SelectOne(ctx context.Context, s *SingleChoiceState) error
	SelectMany(ctx context.Context, s *MultiChoiceState) error
}

// ResourceLoader resolves a named template location to its content.
type ResourceLoader interface {
	Load(location string) (string, error)
}

// TemplateExecutor renders template content against a step state.
type TemplateExecutor interface {
	Render(tmpl string, data any) ([]string, error)
}

var (
	// ErrCancelled is returned by terminals when the user aborts a prompt.
	ErrCancelled = errors.New("cancelled")

	// ErrNoTerminal is returned when a step must prompt but the flow was
	// built without a terminal.
	ErrNoTerminal = errors.New("no terminal configured")

	// ErrResourceNotFound is returned by loaders for unknown locations.
	ErrResourceNotFound = errors.New("resource not found")
)

// DuplicateIDError reports a step id registered more than once.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("step with id %q is already registered", e.ID)
}
