// Package prompt renders flow steps as interactive terminal prompts.
//
// [Terminal] implements flow.Terminal with bubbletea programs drawn on
// stderr so stdout stays clean for piping:
//   - text and path input (path input shows whether the target exists)
//   - single selection with a scrolling window and fuzzy filter
//   - multi selection with space to toggle
//
// [Terminal.Confirm] asks a standalone yes/no question.
package prompt
