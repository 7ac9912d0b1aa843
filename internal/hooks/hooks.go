package hooks

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/log"
)

// shellQuote escapes a string for safe use in shell commands.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// CommandType identifies which command is triggering the hook
type CommandType string

const (
	CommandNew CommandType = "new"
)

// Vars holds the values for placeholder substitution
type Vars struct {
	Path     string            // absolute project path
	Name     string            // project name
	Package  string            // module path, empty if not rewritten
	Template string            // template name or URL
	Trigger  string            // command that triggered the hook
	Env      map[string]string // custom variables from --arg and wizard answers
	DryRun   bool              // if true, print command instead of executing
}

// HookMatch represents a hook that matched the current command
type HookMatch struct {
	Hook config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs, regardless of its "on" list.
// Otherwise all hooks with a matching "on" condition run, ordered by name.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, cmdType CommandType) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: hook, Name: hookName}}, nil
	}

	var matches []HookMatch
	for _, name := range slices.Sorted(maps.Keys(cfg.Hooks)) {
		hook := cfg.Hooks[name]
		if hookMatchesCommand(hook, cmdType) {
			matches = append(matches, HookMatch{Hook: hook, Name: name})
		}
	}
	return matches, nil
}

// hookMatchesCommand returns true if cmdType is in the hook's "on" list.
// Special value "all" matches all command types.
func hookMatchesCommand(hook config.Hook, cmdType CommandType) bool {
	for _, cmd := range hook.On {
		if cmd == "all" || cmd == string(cmdType) {
			return true
		}
	}
	return false
}

// RunAll runs the matched hooks in vars.Path and stops at the first failure.
func RunAll(ctx context.Context, matches []HookMatch, vars Vars) error {
	for _, m := range matches {
		if err := runHook(ctx, m, vars); err != nil {
			return fmt.Errorf("hook %q failed: %w", m.Name, err)
		}
	}
	return nil
}

// runHook executes a single hook with variable substitution.
func runHook(ctx context.Context, m HookMatch, vars Vars) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(m.Hook.Command, vars)

	if vars.DryRun {
		l.Printf("[dry-run] %s: %s\n", m.Name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", m.Name)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = vars.Path
	cmd.Stdout = l.Writer()
	cmd.Stderr = l.Writer()
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		cmd.Stdin = os.Stdin
	}

	done := l.Command(vars.Path, "sh", "-c", command)
	start := time.Now()
	err := cmd.Run()
	done(time.Since(start))
	if err != nil {
		return err
	}

	if m.Hook.Description != "" {
		l.Printf("  ✓ %s\n", m.Hook.Description)
	}
	return nil
}

// readStdinIfPiped reads all content from stdin if it's piped (not a TTY).
// Returns empty string and nil if stdin is a TTY (interactive).
func readStdinIfPiped(stdin *os.File) (string, error) {
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseArgs parses "key=value" entries into a map.
// A value of "-" is replaced by piped stdin content.
func ParseArgs(args []string, stdin *os.File) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range args {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
			continue
		}
		result[key] = value
	}

	if len(stdinKeys) > 0 {
		content, err := readStdinIfPiped(stdin)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default}.
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_-]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values.
// Static placeholders take precedence over custom variables of the same name.
func SubstitutePlaceholders(command string, vars Vars) string {
	static := map[string]string{
		"path":     vars.Path,
		"name":     vars.Name,
		"package":  vars.Package,
		"template": vars.Template,
		"trigger":  vars.Trigger,
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(command, func(match string) string {
		sub := envPlaceholderRegex.FindStringSubmatch(match)
		key, isRaw, def := sub[1], sub[2] == ":raw", sub[3]

		val, ok := static[key]
		if !ok {
			val, ok = vars.Env[key]
		}
		if !ok {
			val = def
		}
		if isRaw {
			return val
		}
		return shellQuote(val)
	})
}
