// Package hooks provides post-create hook execution with placeholder substitution.
//
// Hooks are shell commands defined in config that run after up creates a
// project, e.g. to initialise git, download modules or open an editor.
//
// # Hook Selection
//
//   - Automatic: hooks whose "on" list contains "new" (or "all")
//   - Manual: --hook=name runs one specific hook, --no-hook skips all
//
// Example config:
//
//	[hooks.tidy]
//	command = "go mod tidy"
//	on = ["new"]
//
//	[hooks.editor]
//	command = "code {path}"
//	# no "on" - only runs via --hook=editor
//
// # Placeholder Substitution
//
//   - {path}: absolute project path
//   - {name}: project name
//   - {package}: Go module path
//   - {template}: template repository name or URL
//   - {trigger}: command that triggered the hook
//
// Custom variables come from --arg key=value and from the wizard answers:
//
//   - {key}: shell-quoted value
//   - {key:raw}: value inserted as-is
//   - {key:-default}: value with fallback if not provided
//
// Use --arg key=- to read piped stdin into a variable.
package hooks
