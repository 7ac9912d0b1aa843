// Package flow declares and runs interactive input wizards.
//
// A flow is an ordered list of typed input steps. Each step either prompts
// the user through a [Terminal] or, when the caller already knows the
// answer, resolves silently. All answers are collected into one [Context]
// which is returned when the flow completes.
//
// # Building
//
// Steps are declared with a [Builder]. Every With* call returns a
// kind-specific sub-builder; And seals the step and returns the parent:
//
//	f, err := flow.NewBuilder(term).
//		WithText("name").
//			Name("Project name").
//			ResultValue(nameFlag).
//			ResultMode(flow.Accept).
//			And().
//		WithSingleChoice("template").
//			Name("Template").
//			Item("web", "https://example.com/web.git").
//			And().
//		Build()
//
// Step ids must be unique across all kinds. A duplicate id is reported by
// Build as a [*DuplicateIDError]; steps registered before it are kept.
//
// # Result modes
//
//   - [Accept]: a usable pre-supplied value is written straight into the
//     Context. The terminal is not consulted and no hooks run.
//   - [Verify]: the step still prompts, but the pre-supplied value becomes
//     the prompt's default so the user can confirm it unchanged.
//
// A blank pre-supplied value (or an empty slice for multi choice) is not an
// error: the step falls back to prompting.
//
// # Execution
//
// Steps run strictly in registration order, interleaved across kinds. A
// step only starts after the previous step's Context writes are applied, so
// pre-run hooks may derive defaults from earlier answers. A terminal error
// or context cancellation aborts the whole run.
package flow
