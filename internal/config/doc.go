// Package config handles loading and validation of up configuration.
//
// Configuration lives in $UP_CONFIG_DIR, falling back to ~/.config/up:
//
//   - config.toml: defaults, template repositories, catalogs, hooks, theme
//   - hosts.toml: per-host credentials written by "up config host set"
//   - templates/: prompt templates overriding the embedded defaults
//   - history.json: projects created by "up new"
//
// # Configuration Sources (highest priority first)
//
//   - UP_PROJECT_NAME, UP_PACKAGE_NAME, UP_TEMPLATE env vars
//   - config.toml [defaults]
//   - Built-in defaults (project name "demo")
//
// # Template Repositories
//
//	[[template_repositories]]
//	name = "web"
//	description = "HTTP service"
//	url = "https://github.com/acme/go-web-template"
//	tags = ["http", "service"]
//
// Names are matched case-insensitively after trimming whitespace.
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.editor]
//	command = "code {path}"
//	description = "Open the new project"
//	on = ["new"]
//
// Hooks with "on" run automatically after matching commands.
// Hooks without "on" only run via explicit --hook=name flag.
package config
