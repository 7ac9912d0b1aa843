package wizardfile

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/raphi011/up/internal/flow"
)

// Options control how a file is turned into flow steps.
type Options struct {
	Answers *Answers
	// Verify prompts with pre-supplied values as defaults instead of
	// accepting them.
	Verify bool
}

// Apply registers the file's steps on b in declaration order. Answers
// override inline values.
func (f *File) Apply(b *flow.Builder, opts Options) error {
	for _, s := range f.Steps {
		mode := f.mode(s, opts)
		switch s.Type {
		case TypeText:
			value := s.Value
			if v, ok := opts.Answers.String(s.answerPath()); ok {
				value = v
			}
			b.WithText(s.ID).
				Name(s.Name).
				DefaultValue(s.Default).
				ResultValue(value).
				ResultMode(mode).
				Template(s.Template).
				StoreResult(s.store()).
				And()
		case TypePath:
			value := s.Value
			if v, ok := opts.Answers.String(s.answerPath()); ok {
				value = v
			}
			b.WithPath(s.ID).
				Name(s.Name).
				DefaultValue(s.Default).
				ResultValue(value).
				ResultMode(mode).
				Template(s.Template).
				StoreResult(s.store()).
				And()
		case TypeSingle:
			value := s.Value
			if v, ok := opts.Answers.String(s.answerPath()); ok {
				value = v
			}
			b.WithSingleChoice(s.ID).
				Name(s.Name).
				SelectItems(s.selectItems()).
				ResultValue(value).
				ResultMode(mode).
				Sort(s.comparator()).
				Max(s.Max).
				Template(s.Template).
				StoreResult(s.store()).
				And()
		case TypeMulti:
			values := s.Values
			if v, ok := opts.Answers.Strings(s.answerPath()); ok {
				values = v
			}
			b.WithMultiChoice(s.ID).
				Name(s.Name).
				SelectItems(s.selectItems()).
				ResultValues(values).
				ResultMode(mode).
				Sort(s.comparator()).
				Max(s.Max).
				Template(s.Template).
				StoreResult(s.store()).
				And()
		default:
			return fmt.Errorf("step %q: invalid type %q", s.ID, s.Type)
		}
	}
	return b.Err()
}

// mode resolves a step's result mode: --verify, then the step, then the
// file, then Accept.
func (f *File) mode(s Step, opts Options) flow.ResultMode {
	if opts.Verify {
		return flow.Verify
	}
	for _, raw := range []string{s.Mode, f.Mode} {
		if m, err := flow.ParseResultMode(raw); err == nil && m != flow.ModeUnset {
			return m
		}
	}
	return flow.Accept
}

// WriteText prints one "id: value" line per answer in order. Multi
// values are comma separated.
func WriteText(w io.Writer, c *flow.Context) error {
	for _, id := range c.Keys() {
		v, _ := c.Get(id)
		var s string
		switch v := v.(type) {
		case []string:
			s = strings.Join(v, ", ")
		default:
			s = fmt.Sprint(v)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints the answers as an indented JSON object.
func WriteJSON(w io.Writer, c *flow.Context) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Map())
}
