package config

import (
	"errors"
	"os"
	"path/filepath"
)

const defaultConfig = `# up configuration

# Values used when the corresponding "up new" flag is not given.
# UP_PROJECT_NAME, UP_PACKAGE_NAME and UP_TEMPLATE override them.
[defaults]
project_name = "demo"
# package_name = "github.com/you/demo"
# template_repository = "web"

# Template repositories "up new --template NAME" can create projects from.
# Names are matched case-insensitively.
#
# [[template_repositories]]
# name = "web"
# description = "HTTP service with graceful shutdown"
# url = "https://github.com/acme/go-web-template"
# tags = ["http", "service"]
#
# [[template_repositories]]
# name = "cli"
# description = "Cobra command line tool"
# url = "git@github.com:acme/go-cli-template.git"
# tags = ["cli"]

# Template catalogs list further repositories (shown by "up catalog list").
#
# [[template_catalogs]]
# name = "acme"
# description = "ACME internal templates"
# url = "https://github.com/acme/template-catalog"

# Credentials for private https template repositories are kept in
# hosts.toml next to this file. Set them with:
#   up config host set github.com --user you --token ghp_...

# Hooks - run commands after a project is created
# Use --hook=name to run a specific hook, --no-hook to skip all hooks
#
# Hooks with "on" run automatically for matching commands.
# Hooks without "on" only run when explicitly called with --hook=name.
#
# [hooks.git-init]
# command = "git init -q && git add -A && git commit -qm 'Initial commit'"
# description = "Initialise a git repository"
# on = ["new"]
#
# [hooks.editor]
# command = "code {path}"
# description = "Open VS Code"
# # no "on" - only runs via --hook=editor
#
# Available "on" values: "new", "all"
#
# Hooks run with working directory set to the created project.
#
# Available placeholders:
#   {path}      - absolute project path
#   {name}      - project name
#   {package}   - Go module path (empty if not rewritten)
#   {template}  - template repository name or URL
#   {key}       - custom variable passed via --arg key=value
#   {key:-def}  - custom variable with default value if not provided

# Theme for interactive prompts
# [theme]
# name = "default"   # none, default, dracula, nord, gruvbox, catppuccin
# mode = "auto"      # auto, light, dark
# accent = "#ff79c6" # override single colors
`

// Init creates a default config file in the configuration directory.
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
