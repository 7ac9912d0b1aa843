package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes = []string{"auto", "light", "dark"}
	ValidHookEvents = []string{"new", "all"}
)

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	seen := map[string]bool{}
	for i, r := range c.TemplateRepositories {
		name := strings.ToLower(strings.TrimSpace(r.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf("template_repositories[%d]: name is required", i))
		} else if seen[name] {
			errs = append(errs, fmt.Errorf("template_repositories[%d]: duplicate name %q", i, r.Name))
		}
		seen[name] = true
		if err := validateURL(r.URL, fmt.Sprintf("template_repositories[%d].url", i)); err != nil {
			errs = append(errs, err)
		}
	}

	for i, cat := range c.TemplateCatalogs {
		if strings.TrimSpace(cat.Name) == "" {
			errs = append(errs, fmt.Errorf("template_catalogs[%d]: name is required", i))
		}
		if err := validateURL(cat.URL, fmt.Sprintf("template_catalogs[%d].url", i)); err != nil {
			errs = append(errs, err)
		}
	}

	if d := c.Defaults.TemplateRepository; d != "" {
		if _, ok := c.FindTemplate(d); !ok {
			errs = append(errs, fmt.Errorf("defaults.template_repository %q does not name a configured template repository", d))
		}
	}

	for name, h := range c.Hooks.Hooks {
		if strings.TrimSpace(h.Command) == "" {
			errs = append(errs, fmt.Errorf("hooks.%s: command is required", name))
		}
		for _, on := range h.On {
			if err := validateEnum(on, "hooks."+name+".on", ValidHookEvents); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		errs = append(errs, err)
	}
	if err := validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateURL accepts https, http, ssh, git and file URLs, scp-style
// git addresses (git@host:org/repo) and local paths.
func validateURL(raw, field string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if strings.HasPrefix(raw, "git@") || !strings.Contains(raw, "://") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	allowed := []string{"https", "http", "ssh", "git", "file"}
	if !slices.Contains(allowed, u.Scheme) {
		return fmt.Errorf("invalid %s %q: scheme must be %s", field, raw, formatOptions(allowed))
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
