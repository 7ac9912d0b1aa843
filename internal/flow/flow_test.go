package flow

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"testing"
)

func mustBuild(t *testing.T, b *Builder) *Flow {
	t.Helper()
	f, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return f
}

func TestRun_AcceptSkipsPrompt(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	hooks := 0
	f := mustBuild(t, NewBuilder(term).
		WithText("name").
		ResultValue("demo").
		ResultMode(Accept).
		PreHook(func(*TextState) { hooks++ }).
		PostHook(func(*TextState) { hooks++ }).
		And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := res.Context().Map(); len(got) != 1 || got["name"] != "demo" {
		t.Errorf("Context = %v, want {name: demo}", got)
	}
	if len(term.calls) != 0 {
		t.Errorf("terminal called for %v", term.calls)
	}
	if hooks != 0 {
		t.Errorf("hooks ran %d times on skipped step", hooks)
	}
}

func TestRun_AcceptWithoutTerminal(t *testing.T) {
	t.Parallel()

	f := mustBuild(t, NewBuilder(nil).
		WithPath("p1").ResultValue("/a").ResultMode(Accept).And().
		WithText("t1").ResultValue("b").ResultMode(Accept).And().
		WithPath("p2").ResultValue("/c").ResultMode(Accept).And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	c := res.Context()
	for id, want := range map[string]string{"p1": "/a", "t1": "b", "p2": "/c"} {
		if got := c.GetString(id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	if got := c.Keys(); !slices.Equal(got, []string{"p1", "t1", "p2"}) {
		t.Errorf("Keys() = %v, want [p1 t1 p2]", got)
	}
}

func TestRun_InterleavedOrder(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	var order []string
	f := mustBuild(t, NewBuilder(term).
		WithPath("p1").PreHook(func(s *PathState) { order = append(order, s.ID) }).And().
		WithText("t1").PreHook(func(s *TextState) { order = append(order, s.ID) }).And().
		WithMultiChoice("m1").PreHook(func(s *MultiChoiceState) { order = append(order, s.ID) }).And().
		WithPath("p2").PreHook(func(s *PathState) { order = append(order, s.ID) }).And().
		WithSingleChoice("s1").Item("A", "a").PreHook(func(s *SingleChoiceState) { order = append(order, s.ID) }).And())

	if _, err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"p1", "t1", "m1", "p2", "s1"}
	if !slices.Equal(order, want) {
		t.Errorf("hook order = %v, want %v", order, want)
	}
	if !slices.Equal(term.calls, want) {
		t.Errorf("terminal order = %v, want %v", term.calls, want)
	}
}

func TestRun_BlankAcceptFallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *Builder) *Builder
	}{
		{"empty text", func(b *Builder) *Builder {
			return b.WithText("x").ResultValue("").ResultMode(Accept).And()
		}},
		{"whitespace path", func(b *Builder) *Builder {
			return b.WithPath("x").ResultValue("  ").ResultMode(Accept).And()
		}},
		{"empty single", func(b *Builder) *Builder {
			return b.WithSingleChoice("x").Item("A", "a").ResultMode(Accept).And()
		}},
		{"empty multi", func(b *Builder) *Builder {
			return b.WithMultiChoice("x").ResultValues([]string{}).ResultMode(Accept).And()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			term := newFakeTerminal()
			f := mustBuild(t, tt.build(NewBuilder(term)))
			if _, err := f.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !slices.Equal(term.calls, []string{"x"}) {
				t.Errorf("terminal calls = %v, want [x]", term.calls)
			}
		})
	}
}

func TestRun_EmptyTagsPrompts(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	term.multi["tags"] = []string{"b"}
	f := mustBuild(t, NewBuilder(term).
		WithMultiChoice("tags").
		SelectItems([]SelectItem{Item("A", "a"), Item("B", "b")}).
		ResultValues(nil).
		ResultMode(Accept).
		And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(term.calls) != 1 {
		t.Fatalf("terminal calls = %v, want one", term.calls)
	}
	if got := res.Context().GetStrings("tags"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("tags = %v, want [b]", got)
	}
}

func TestRun_VerifySeedsDefault(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	var seenByHook string
	f := mustBuild(t, NewBuilder(term).
		WithText("name").
		DefaultValue("fallback").
		ResultValue("demo").
		ResultMode(Verify).
		PreHook(func(s *TextState) { seenByHook = s.DefaultValue }).
		And().
		WithSingleChoice("lang").
		Item("Go", "go").Item("Rust", "rust").
		ResultValue("rust").
		ResultMode(Verify).
		And().
		WithMultiChoice("tags").
		SelectItems([]SelectItem{Item("A", "a"), Item("B", "b"), Item("C", "c")}).
		ResultValues([]string{"c", "a", "zz"}).
		ResultMode(Verify).
		And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if seenByHook != "demo" {
		t.Errorf("caller pre-hook saw default %q, want demo", seenByHook)
	}
	if got := term.defaults["name"]; got != "demo" {
		t.Errorf("terminal default for name = %v, want demo", got)
	}
	if got := term.defaults["lang"]; got != "rust" {
		t.Errorf("terminal default for lang = %v, want rust", got)
	}
	if got, _ := term.defaults["tags"].([]string); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("terminal defaults for tags = %v, want [a c]", got)
	}

	c := res.Context()
	if c.GetString("name") != "demo" || c.GetString("lang") != "rust" {
		t.Errorf("Context = %v", c.Map())
	}
}

func TestRun_UnsetModeDoesNotSeed(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).
		WithText("name").DefaultValue("fallback").ResultValue("demo").And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := term.defaults["name"]; got != "fallback" {
		t.Errorf("terminal default = %v, want fallback", got)
	}
	if got := res.Context().GetString("name"); got != "fallback" {
		t.Errorf("name = %q, want fallback", got)
	}
}

func TestRun_StoreResultFalse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode ResultMode
	}{
		{"accept", Accept},
		{"verify", Verify},
		{"unset", ModeUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			term := newFakeTerminal()
			term.text["t"] = "typed"
			term.multi["m"] = []string{"a"}
			term.single["s"] = "a"
			f := mustBuild(t, NewBuilder(term).
				WithText("t").ResultValue("v").ResultMode(tt.mode).StoreResult(false).And().
				WithPath("p").ResultValue("/v").ResultMode(tt.mode).StoreResult(false).And().
				WithSingleChoice("s").Item("A", "a").ResultValue("a").ResultMode(tt.mode).StoreResult(false).And().
				WithMultiChoice("m").SelectItems([]SelectItem{Item("A", "a")}).ResultValues([]string{"a"}).ResultMode(tt.mode).StoreResult(false).And())

			res, err := f.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.Context().Len() != 0 {
				t.Errorf("Context = %v, want empty", res.Context().Map())
			}
			if len(term.calls) != 4 {
				t.Errorf("terminal calls = %v, want all four steps prompted", term.calls)
			}
			if got := term.defaults["t"]; got != "" {
				t.Errorf("text default = %v, want no seeding", got)
			}
		})
	}
}

func TestRun_IndependentRuns(t *testing.T) {
	t.Parallel()

	build := func(name string) *Flow {
		return mustBuild(t, NewBuilder(nil).
			WithText("name").ResultValue(name).ResultMode(Accept).And())
	}

	f := build("one")
	first, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	again, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := build("two").Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if first.Context() == again.Context() {
		t.Error("runs share a Context")
	}
	if got := first.Context().GetString("name"); got != "one" {
		t.Errorf("first name = %q", got)
	}
	if got := second.Context().GetString("name"); got != "two" {
		t.Errorf("second name = %q", got)
	}
}

func TestRun_HookOrder(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	term.text["x"] = "typed"
	var events []string
	f := mustBuild(t, NewBuilder(term).
		WithText("x").
		ResultValue("seed").
		ResultMode(Verify).
		PreHook(func(s *TextState) { events = append(events, "pre:"+s.DefaultValue) }).
		PostHook(func(s *TextState) {
			stored := s.Context.GetString("x")
			events = append(events, "post:"+stored)
		}).
		And())

	if _, err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"pre:seed", "post:typed"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestRun_PreHookReadsEarlierAnswer(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).
		WithText("name").ResultValue("my app").ResultMode(Accept).And().
		WithPath("dir").
		PreHook(func(s *PathState) { s.DefaultValue = "/src/" + s.Context.GetString("name") }).
		And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := res.Context().GetString("dir"); got != "/src/my app" {
		t.Errorf("dir = %q, want /src/my app", got)
	}
}

func TestRun_SingleChoiceWithoutSelection(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).WithSingleChoice("s").Item("A", "a").And())

	res, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Context().Has("s") {
		t.Errorf("Context = %v, want no entry without a selection", res.Context().Map())
	}
}

func TestRun_ItemsSortedByComparator(t *testing.T) {
	t.Parallel()

	var got []string
	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).
		WithMultiChoice("m").
		SelectItems([]SelectItem{Item("b", "2"), Item("c", "3"), Item("a", "1")}).
		Sort(func(a, b SelectItem) int { return cmp.Compare(b.Name, a.Name) }).
		Max(2).
		PreHook(func(s *MultiChoiceState) {
			for _, it := range s.Items {
				got = append(got, it.Name)
			}
			if s.MaxItems != 2 {
				t.Errorf("MaxItems = %d, want 2", s.MaxItems)
			}
		}).
		And())

	if _, err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("items = %v, want [c b a]", got)
	}
}

func TestRun_TerminalError(t *testing.T) {
	t.Parallel()

	term := newFakeTerminal()
	term.errs["b"] = ErrCancelled
	posted := false
	f := mustBuild(t, NewBuilder(term).
		WithText("a").And().
		WithText("b").PostHook(func(*TextState) { posted = true }).And().
		WithText("c").And())

	res, err := f.Run(context.Background())
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Run() error = %v, want ErrCancelled", err)
	}
	if res != nil {
		t.Error("Run() returned a Result on failure")
	}
	if posted {
		t.Error("post-hook ran after terminal error")
	}
	if !slices.Equal(term.calls, []string{"a", "b"}) {
		t.Errorf("terminal calls = %v, want [a b]", term.calls)
	}
}

func TestRun_NoTerminal(t *testing.T) {
	t.Parallel()

	f := mustBuild(t, NewBuilder(nil).WithText("a").And())
	if _, err := f.Run(context.Background()); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("Run() error = %v, want ErrNoTerminal", err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).
		WithText("a").PostHook(func(*TextState) { cancel() }).And().
		WithText("b").And())

	_, err := f.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !slices.Equal(term.calls, []string{"a"}) {
		t.Errorf("terminal calls = %v, want [a]", term.calls)
	}
}

func TestRun_TemplateHeader(t *testing.T) {
	t.Parallel()

	var lines []string
	term := newFakeTerminal()
	f := mustBuild(t, NewBuilder(term).
		ResourceLoader(mapLoader{"text.tmpl": "default"}).
		TemplateExecutor(echoExecutor{}).
		WithText("x").
		Name("Project").
		PreHook(func(s *TextState) {
			var err error
			lines, err = s.Lines()
			if err != nil {
				t.Errorf("Lines() error = %v", err)
			}
		}).
		And())

	if _, err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !slices.Equal(lines, []string{"default", "Project"}) {
		t.Errorf("Lines() = %v", lines)
	}
}
