package flow

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestComponent_Run(t *testing.T) {
	t.Parallel()

	var events []string
	state := &TextState{StepState: StepState{ID: "x"}}
	comp := NewComponent(state, func(_ context.Context, s *TextState) error {
		events = append(events, "interact")
		s.ResultValue = "answer"
		return nil
	})
	comp.AddPreRunHook(func(s *TextState) { events = append(events, "pre1") })
	comp.AddPreRunHook(func(s *TextState) { events = append(events, "pre2") })
	comp.AddPostRunHook(func(s *TextState) {
		events = append(events, "post")
		s.Context.Put(s.ID, s.ResultValue)
	})

	fc := NewContext()
	out, err := comp.Run(context.Background(), fc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != fc {
		t.Error("Run() returned a different Context")
	}
	if want := []string{"pre1", "pre2", "interact", "post"}; !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if got := fc.GetString("x"); got != "answer" {
		t.Errorf("x = %q, want answer", got)
	}
	if comp.State().Context != fc {
		t.Error("state not bound to the run's Context")
	}
}

func TestComponent_InteractError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	posted := false
	comp := NewComponent(&PathState{}, func(context.Context, *PathState) error { return boom })
	comp.AddPostRunHook(func(*PathState) { posted = true })

	if _, err := comp.Run(context.Background(), NewContext()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if posted {
		t.Error("post-run hook ran after failed interaction")
	}
}
