package resource

import (
	"context"

	"github.com/raphi011/up/internal/flow"
)

// recordingTerminal keeps the header lines of the last text prompt.
type recordingTerminal struct {
	lines []string
}

func (t *recordingTerminal) ReadText(_ context.Context, s *flow.TextState) error {
	lines, err := s.Lines()
	t.lines = lines
	s.ResultValue = s.DefaultValue
	return err
}

func (t *recordingTerminal) ReadPath(context.Context, *flow.PathState) error { return nil }

func (t *recordingTerminal) SelectOne(context.Context, *flow.SingleChoiceState) error { return nil }

func (t *recordingTerminal) SelectMany(context.Context, *flow.MultiChoiceState) error { return nil }
