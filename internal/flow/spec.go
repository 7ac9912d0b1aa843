package flow

import (
	"fmt"
	"strings"
)

// ResultMode controls how a pre-supplied result value is handled.
type ResultMode int

const (
	// ModeUnset always prompts and never seeds the prompt.
	ModeUnset ResultMode = iota
	// Accept stores a usable pre-supplied value without prompting.
	Accept
	// Verify prompts with the pre-supplied value as the default.
	Verify
)

func (m ResultMode) String() string {
	switch m {
	case Accept:
		return "accept"
	case Verify:
		return "verify"
	}
	return "unset"
}

// ParseResultMode parses "accept" or "verify" (case-insensitive).
// An empty string yields ModeUnset.
func ParseResultMode(s string) (ResultMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeUnset, nil
	case "accept":
		return Accept, nil
	case "verify":
		return Verify, nil
	}
	return ModeUnset, fmt.Errorf("invalid result mode %q: must be \"accept\" or \"verify\"", s)
}

// Kind identifies the input kind of a step.
type Kind int

const (
	TextKind Kind = iota
	PathKind
	SingleChoiceKind
	MultiChoiceKind
)

func (k Kind) String() string {
	switch k {
	case TextKind:
		return "text"
	case PathKind:
		return "path"
	case SingleChoiceKind:
		return "single"
	case MultiChoiceKind:
		return "multi"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// defaultTemplate is the resource location tried when a step sets neither
// a renderer nor a template.
func (k Kind) defaultTemplate() string {
	return k.String() + ".tmpl"
}

// SelectItem is one selectable entry of a choice step.
type SelectItem struct {
	Name        string // display label, matched by the filter
	Value       string // stored value
	Description string // optional, shown muted after the name
	Enabled     bool
}

// Item returns an enabled select item.
func Item(name, value string) SelectItem {
	return SelectItem{Name: name, Value: value, Enabled: true}
}

// DisabledItem returns a select item that cannot be chosen.
func DisabledItem(name, value string) SelectItem {
	return SelectItem{Name: name, Value: value}
}

// Comparator orders select items for display. It follows the cmp.Compare
// convention: negative if a sorts before b.
type Comparator func(a, b SelectItem) int

// Spec is a sealed step specification. The concrete types are
// *TextSpec, *PathSpec, *SingleChoiceSpec and *MultiChoiceSpec.
type Spec interface {
	ID() string
	Order() int
	Kind() Kind
	Name() string
	Mode() ResultMode
	StoresResult() bool

	base() *baseSpec
}

// baseSpec holds the fields every step kind shares.
type baseSpec struct {
	id       string
	order    int
	name     string
	mode     ResultMode
	store    bool
	template string
}

func newBaseSpec(id string) baseSpec {
	return baseSpec{id: id, store: true}
}

func (b *baseSpec) ID() string         { return b.id }
func (b *baseSpec) Order() int         { return b.order }
func (b *baseSpec) Name() string       { return b.name }
func (b *baseSpec) Mode() ResultMode   { return b.mode }
func (b *baseSpec) StoresResult() bool { return b.store }
func (b *baseSpec) base() *baseSpec    { return b }

// TextSpec describes a free-text input step.
type TextSpec struct {
	baseSpec
	defaultValue string
	resultValue  string
	renderer     func(*TextState) []string
	preHooks     []func(*TextState)
	postHooks    []func(*TextState)
}

func (*TextSpec) Kind() Kind { return TextKind }

// PathSpec describes a filesystem path input step.
type PathSpec struct {
	baseSpec
	defaultValue string
	resultValue  string
	renderer     func(*PathState) []string
	preHooks     []func(*PathState)
	postHooks    []func(*PathState)
}

func (*PathSpec) Kind() Kind { return PathKind }

// SingleChoiceSpec describes a step selecting exactly one item.
type SingleChoiceSpec struct {
	baseSpec
	resultValue string
	items       []SelectItem
	comparator  Comparator
	maxItems    int
	renderer    func(*SingleChoiceState) []string
	preHooks    []func(*SingleChoiceState)
	postHooks   []func(*SingleChoiceState)
}

func (*SingleChoiceSpec) Kind() Kind { return SingleChoiceKind }

// MultiChoiceSpec describes a step selecting any number of items.
type MultiChoiceSpec struct {
	baseSpec
	resultValues []string
	items        []SelectItem
	comparator   Comparator
	maxItems     int
	renderer     func(*MultiChoiceState) []string
	preHooks     []func(*MultiChoiceState)
	postHooks    []func(*MultiChoiceState)
}

func (*MultiChoiceSpec) Kind() Kind { return MultiChoiceKind }

// hasText reports whether s contains a non-whitespace character.
func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
