package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultProjectName is the last resort project name.
const DefaultProjectName = "demo"

// Environment variables overriding [defaults].
const (
	EnvConfigDir   = "UP_CONFIG_DIR"
	EnvProjectName = "UP_PROJECT_NAME"
	EnvPackageName = "UP_PACKAGE_NAME"
	EnvTemplate    = "UP_TEMPLATE"
)

// Hook defines a post-create hook
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"` // commands this hook runs on (empty = only via --hook)
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// Defaults are the values used when a flag is not given.
type Defaults struct {
	ProjectName        string `toml:"project_name"`
	PackageName        string `toml:"package_name"`
	TemplateRepository string `toml:"template_repository"`
}

// TemplateRepository is a named git repository a project is created from.
type TemplateRepository struct {
	Name        string   `toml:"name" json:"name"`
	Description string   `toml:"description" json:"description"`
	URL         string   `toml:"url" json:"url"`
	Tags        []string `toml:"tags" json:"tags"`
}

// TemplateCatalog is a named collection of template repositories.
type TemplateCatalog struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	URL         string `toml:"url" json:"url"`
}

// Host holds credentials for a git host.
type Host struct {
	User  string `toml:"user"`
	Token string `toml:"token"`
}

// ThemeConfig holds UI theme configuration
type ThemeConfig struct {
	Name     string `toml:"name"` // preset family: "default", "dracula", "nord", ...
	Mode     string `toml:"mode"` // "auto", "light" or "dark"
	Primary  string `toml:"primary"`
	Accent   string `toml:"accent"`
	Success  string `toml:"success"`
	Error    string `toml:"error"`
	Muted    string `toml:"muted"`
	Normal   string `toml:"normal"`
	Info     string `toml:"info"`
	Warning  string `toml:"warning"`
	Nerdfont bool   `toml:"nerdfont"`
}

// Config holds the up configuration
type Config struct {
	Defaults             Defaults             `toml:"defaults"`
	TemplateRepositories []TemplateRepository `toml:"template_repositories"`
	TemplateCatalogs     []TemplateCatalog    `toml:"template_catalogs"`
	Hosts                map[string]Host      `toml:"hosts"`
	Hooks                HooksConfig          `toml:"-"` // custom parsing needed
	Theme                ThemeConfig          `toml:"theme"`

	// Dir is the directory the config was loaded from.
	Dir string `toml:"-" json:"-"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Defaults: Defaults{ProjectName: DefaultProjectName},
		Hosts:    map[string]Host{},
		Hooks:    HooksConfig{Hooks: map[string]Hook{}},
	}
}

// FindTemplate returns the repository whose name matches name,
// ignoring case and surrounding whitespace.
func (c *Config) FindTemplate(name string) (TemplateRepository, bool) {
	name = strings.TrimSpace(name)
	for _, r := range c.TemplateRepositories {
		if strings.EqualFold(strings.TrimSpace(r.Name), name) {
			return r, true
		}
	}
	return TemplateRepository{}, false
}

// HostFor returns the credentials configured for host.
func (c *Config) HostFor(host string) (Host, bool) {
	h, ok := c.Hosts[strings.ToLower(host)]
	return h, ok
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "up"), nil
}

// Path returns the path to config.toml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// TemplatesDir returns the directory holding prompt template overrides.
func TemplatesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates"), nil
}

// HistoryPath returns the path to the history of created projects, next
// to the loaded config file.
func (c *Config) HistoryPath() (string, error) {
	dir := c.Dir
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "history.json"), nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	Defaults             Defaults             `toml:"defaults"`
	TemplateRepositories []TemplateRepository `toml:"template_repositories"`
	TemplateCatalogs     []TemplateCatalog    `toml:"template_catalogs"`
	Hosts                map[string]Host      `toml:"hosts"`
	Hooks                map[string]any       `toml:"hooks"`
	Theme                ThemeConfig          `toml:"theme"`
}

// Load reads config.toml and hosts.toml from the configuration directory
// and applies environment overrides.
// Missing files are not an error.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), nil
	}
	return LoadDir(dir)
}

// LoadDir is like Load but reads from dir.
func LoadDir(dir string) (Config, error) {
	cfg, err := parseFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		return Default(), err
	}

	hosts, err := loadHosts(filepath.Join(dir, hostsFile))
	if err != nil {
		return Default(), err
	}
	for name, h := range hosts {
		cfg.Hosts[name] = h
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	applyEnv(&cfg)
	cfg.Dir = dir
	return cfg, nil
}

func parseFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes config.toml content. Environment overrides are not applied.
func Parse(data string) (Config, error) {
	var raw rawConfig
	if _, err := toml.Decode(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Config{
		Defaults:             raw.Defaults,
		TemplateRepositories: raw.TemplateRepositories,
		TemplateCatalogs:     raw.TemplateCatalogs,
		Hosts:                map[string]Host{},
		Hooks:                parseHooksConfig(raw.Hooks),
		Theme:                raw.Theme,
	}
	for name, h := range raw.Hosts {
		cfg.Hosts[strings.ToLower(name)] = h
	}
	if strings.TrimSpace(cfg.Defaults.ProjectName) == "" {
		cfg.Defaults.ProjectName = DefaultProjectName
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProjectName); v != "" {
		cfg.Defaults.ProjectName = v
	}
	if v := os.Getenv(EnvPackageName); v != "" {
		cfg.Defaults.PackageName = v
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		cfg.Defaults.TemplateRepository = v
	}
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		hc.Hooks[key] = hook
	}

	return hc
}
