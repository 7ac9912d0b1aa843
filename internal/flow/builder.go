package flow

import (
	"errors"
	"maps"
	"slices"
)

// Builder collects step specifications and compiles them into a Flow.
// A Builder is not safe for concurrent use.
type Builder struct {
	terminal Terminal
	loader   ResourceLoader
	executor TemplateExecutor
	specs    []Spec
	ids      map[string]struct{}
	next     int // sequence number of the next registered step
	errs     []error
}

// NewBuilder returns a builder whose flow prompts through term.
// term may be nil if every step is expected to resolve without prompting.
func NewBuilder(term Terminal) *Builder {
	return &Builder{
		terminal: term,
		ids:      make(map[string]struct{}),
	}
}

// ResourceLoader sets the loader used to resolve template locations.
func (b *Builder) ResourceLoader(l ResourceLoader) *Builder {
	b.loader = l
	return b
}

// TemplateExecutor sets the executor used to render templates.
func (b *Builder) TemplateExecutor(e TemplateExecutor) *Builder {
	b.executor = e
	return b
}

// WithText starts a text step.
func (b *Builder) WithText(id string) *TextBuilder {
	return &TextBuilder{parent: b, spec: &TextSpec{baseSpec: newBaseSpec(id)}}
}

// WithPath starts a path step.
func (b *Builder) WithPath(id string) *PathBuilder {
	return &PathBuilder{parent: b, spec: &PathSpec{baseSpec: newBaseSpec(id)}}
}

// WithSingleChoice starts a single choice step.
func (b *Builder) WithSingleChoice(id string) *SingleChoiceBuilder {
	return &SingleChoiceBuilder{parent: b, spec: &SingleChoiceSpec{baseSpec: newBaseSpec(id)}}
}

// WithMultiChoice starts a multi choice step.
func (b *Builder) WithMultiChoice(id string) *MultiChoiceBuilder {
	return &MultiChoiceBuilder{parent: b, spec: &MultiChoiceSpec{baseSpec: newBaseSpec(id)}}
}

// Len returns the number of registered steps.
func (b *Builder) Len() int {
	return len(b.specs)
}

// IDs returns the registered step ids in registration order.
func (b *Builder) IDs() []string {
	ids := make([]string, len(b.specs))
	for i, s := range b.specs {
		ids[i] = s.ID()
	}
	return ids
}

// Err returns the registration errors recorded so far, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Build compiles the registered steps into a Flow. It fails if any
// registration failed.
func (b *Builder) Build() (*Flow, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return &Flow{
		terminal: b.terminal,
		loader:   b.loader,
		executor: b.executor,
		steps:    slices.Clone(b.specs),
	}, nil
}

// register seals s into the builder. A duplicate id is recorded as an
// error and leaves the builder otherwise unchanged.
func (b *Builder) register(s Spec) *Builder {
	base := s.base()
	if _, dup := b.ids[base.id]; dup {
		b.errs = append(b.errs, &DuplicateIDError{ID: base.id})
		return b
	}
	b.ids[base.id] = struct{}{}
	base.order = b.next
	b.next++
	b.specs = append(b.specs, s)
	return b
}

// TextBuilder configures a text step.
type TextBuilder struct {
	parent *Builder
	spec   *TextSpec
	sealed bool
}

// Name sets the prompt label.
func (tb *TextBuilder) Name(name string) *TextBuilder {
	if !tb.sealed {
		tb.spec.name = name
	}
	return tb
}

// DefaultValue sets the value offered when the user enters nothing.
func (tb *TextBuilder) DefaultValue(v string) *TextBuilder {
	if !tb.sealed {
		tb.spec.defaultValue = v
	}
	return tb
}

// ResultValue sets the pre-supplied answer.
func (tb *TextBuilder) ResultValue(v string) *TextBuilder {
	if !tb.sealed {
		tb.spec.resultValue = v
	}
	return tb
}

// ResultMode sets how the pre-supplied answer is handled.
func (tb *TextBuilder) ResultMode(m ResultMode) *TextBuilder {
	if !tb.sealed {
		tb.spec.mode = m
	}
	return tb
}

// Renderer sets a custom header renderer.
func (tb *TextBuilder) Renderer(fn func(*TextState) []string) *TextBuilder {
	if !tb.sealed {
		tb.spec.renderer = fn
	}
	return tb
}

// Template sets the header template location.
func (tb *TextBuilder) Template(location string) *TextBuilder {
	if !tb.sealed {
		tb.spec.template = location
	}
	return tb
}

// PreHook appends a hook run before the prompt.
func (tb *TextBuilder) PreHook(h func(*TextState)) *TextBuilder {
	if !tb.sealed {
		tb.spec.preHooks = append(tb.spec.preHooks, h)
	}
	return tb
}

// PostHook appends a hook run after the prompt.
func (tb *TextBuilder) PostHook(h func(*TextState)) *TextBuilder {
	if !tb.sealed {
		tb.spec.postHooks = append(tb.spec.postHooks, h)
	}
	return tb
}

// StoreResult sets whether the answer is written to the Context.
// Defaults to true.
func (tb *TextBuilder) StoreResult(store bool) *TextBuilder {
	if !tb.sealed {
		tb.spec.store = store
	}
	return tb
}

// And seals the step and returns the parent builder.
func (tb *TextBuilder) And() *Builder {
	if tb.sealed {
		return tb.parent
	}
	tb.sealed = true
	return tb.parent.register(tb.spec)
}

// PathBuilder configures a path step.
type PathBuilder struct {
	parent *Builder
	spec   *PathSpec
	sealed bool
}

// Name sets the prompt label.
func (pb *PathBuilder) Name(name string) *PathBuilder {
	if !pb.sealed {
		pb.spec.name = name
	}
	return pb
}

// DefaultValue sets the path offered when the user enters nothing.
func (pb *PathBuilder) DefaultValue(v string) *PathBuilder {
	if !pb.sealed {
		pb.spec.defaultValue = v
	}
	return pb
}

// ResultValue sets the pre-supplied path.
func (pb *PathBuilder) ResultValue(v string) *PathBuilder {
	if !pb.sealed {
		pb.spec.resultValue = v
	}
	return pb
}

// ResultMode sets how the pre-supplied path is handled.
func (pb *PathBuilder) ResultMode(m ResultMode) *PathBuilder {
	if !pb.sealed {
		pb.spec.mode = m
	}
	return pb
}

// Renderer sets a custom header renderer.
func (pb *PathBuilder) Renderer(fn func(*PathState) []string) *PathBuilder {
	if !pb.sealed {
		pb.spec.renderer = fn
	}
	return pb
}

// Template sets the header template location.
func (pb *PathBuilder) Template(location string) *PathBuilder {
	if !pb.sealed {
		pb.spec.template = location
	}
	return pb
}

// PreHook appends a hook run before the prompt.
func (pb *PathBuilder) PreHook(h func(*PathState)) *PathBuilder {
	if !pb.sealed {
		pb.spec.preHooks = append(pb.spec.preHooks, h)
	}
	return pb
}

// PostHook appends a hook run after the prompt.
func (pb *PathBuilder) PostHook(h func(*PathState)) *PathBuilder {
	if !pb.sealed {
		pb.spec.postHooks = append(pb.spec.postHooks, h)
	}
	return pb
}

// StoreResult sets whether the answer is written to the Context.
func (pb *PathBuilder) StoreResult(store bool) *PathBuilder {
	if !pb.sealed {
		pb.spec.store = store
	}
	return pb
}

// And seals the step and returns the parent builder.
func (pb *PathBuilder) And() *Builder {
	if pb.sealed {
		return pb.parent
	}
	pb.sealed = true
	return pb.parent.register(pb.spec)
}

// SingleChoiceBuilder configures a single choice step.
type SingleChoiceBuilder struct {
	parent *Builder
	spec   *SingleChoiceSpec
	sealed bool
}

// Name sets the prompt label.
func (sb *SingleChoiceBuilder) Name(name string) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.name = name
	}
	return sb
}

// ResultValue sets the pre-supplied item value.
func (sb *SingleChoiceBuilder) ResultValue(v string) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.resultValue = v
	}
	return sb
}

// ResultMode sets how the pre-supplied value is handled.
func (sb *SingleChoiceBuilder) ResultMode(m ResultMode) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.mode = m
	}
	return sb
}

// Item appends an enabled item.
func (sb *SingleChoiceBuilder) Item(name, value string) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.items = append(sb.spec.items, Item(name, value))
	}
	return sb
}

// Items appends enabled items from a name to value map, ordered by name.
func (sb *SingleChoiceBuilder) Items(items map[string]string) *SingleChoiceBuilder {
	if !sb.sealed {
		for _, name := range slices.Sorted(maps.Keys(items)) {
			sb.spec.items = append(sb.spec.items, Item(name, items[name]))
		}
	}
	return sb
}

// SelectItems appends items as given.
func (sb *SingleChoiceBuilder) SelectItems(items []SelectItem) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.items = append(sb.spec.items, items...)
	}
	return sb
}

// Sort sets the comparator ordering the displayed items.
func (sb *SingleChoiceBuilder) Sort(cmp Comparator) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.comparator = cmp
	}
	return sb
}

// Max limits how many items are shown at once.
func (sb *SingleChoiceBuilder) Max(n int) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.maxItems = n
	}
	return sb
}

// Renderer sets a custom header renderer.
func (sb *SingleChoiceBuilder) Renderer(fn func(*SingleChoiceState) []string) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.renderer = fn
	}
	return sb
}

// Template sets the header template location.
func (sb *SingleChoiceBuilder) Template(location string) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.template = location
	}
	return sb
}

// PreHook appends a hook run before the prompt.
func (sb *SingleChoiceBuilder) PreHook(h func(*SingleChoiceState)) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.preHooks = append(sb.spec.preHooks, h)
	}
	return sb
}

// PostHook appends a hook run after the prompt.
func (sb *SingleChoiceBuilder) PostHook(h func(*SingleChoiceState)) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.postHooks = append(sb.spec.postHooks, h)
	}
	return sb
}

// StoreResult sets whether the answer is written to the Context.
func (sb *SingleChoiceBuilder) StoreResult(store bool) *SingleChoiceBuilder {
	if !sb.sealed {
		sb.spec.store = store
	}
	return sb
}

// And seals the step and returns the parent builder.
func (sb *SingleChoiceBuilder) And() *Builder {
	if sb.sealed {
		return sb.parent
	}
	sb.sealed = true
	return sb.parent.register(sb.spec)
}

// MultiChoiceBuilder configures a multi choice step.
type MultiChoiceBuilder struct {
	parent *Builder
	spec   *MultiChoiceSpec
	sealed bool
}

// Name sets the prompt label.
func (mb *MultiChoiceBuilder) Name(name string) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.name = name
	}
	return mb
}

// ResultValues appends pre-supplied item values.
func (mb *MultiChoiceBuilder) ResultValues(values []string) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.resultValues = append(mb.spec.resultValues, values...)
	}
	return mb
}

// ResultMode sets how the pre-supplied values are handled.
func (mb *MultiChoiceBuilder) ResultMode(m ResultMode) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.mode = m
	}
	return mb
}

// SelectItems replaces the selectable items.
func (mb *MultiChoiceBuilder) SelectItems(items []SelectItem) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.items = slices.Clone(items)
	}
	return mb
}

// Sort sets the comparator ordering the displayed items.
func (mb *MultiChoiceBuilder) Sort(cmp Comparator) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.comparator = cmp
	}
	return mb
}

// Max limits how many items are shown at once.
func (mb *MultiChoiceBuilder) Max(n int) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.maxItems = n
	}
	return mb
}

// Renderer sets a custom header renderer.
func (mb *MultiChoiceBuilder) Renderer(fn func(*MultiChoiceState) []string) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.renderer = fn
	}
	return mb
}

// Template sets the header template location.
func (mb *MultiChoiceBuilder) Template(location string) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.template = location
	}
	return mb
}

// PreHook appends a hook run before the prompt.
func (mb *MultiChoiceBuilder) PreHook(h func(*MultiChoiceState)) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.preHooks = append(mb.spec.preHooks, h)
	}
	return mb
}

// PostHook appends a hook run after the prompt.
func (mb *MultiChoiceBuilder) PostHook(h func(*MultiChoiceState)) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.postHooks = append(mb.spec.postHooks, h)
	}
	return mb
}

// StoreResult sets whether the answer is written to the Context.
func (mb *MultiChoiceBuilder) StoreResult(store bool) *MultiChoiceBuilder {
	if !mb.sealed {
		mb.spec.store = store
	}
	return mb
}

// And seals the step and returns the parent builder.
func (mb *MultiChoiceBuilder) And() *Builder {
	if mb.sealed {
		return mb.parent
	}
	mb.sealed = true
	return mb.parent.register(mb.spec)
}
