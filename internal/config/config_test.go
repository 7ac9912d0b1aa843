package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Defaults.ProjectName != DefaultProjectName {
		t.Errorf("expected defaults.project_name %q, got %q", DefaultProjectName, cfg.Defaults.ProjectName)
	}
	if cfg.Hosts == nil || cfg.Hooks.Hooks == nil {
		t.Error("Default() should initialise maps")
	}
}

func TestParse(t *testing.T) {
	data := `
[defaults]
package_name = "github.com/acme/demo"
template_repository = "Web"

[[template_repositories]]
name = "web"
description = "HTTP service"
url = "https://github.com/acme/web"
tags = ["http"]

[[template_catalogs]]
name = "acme"
url = "https://github.com/acme/catalog"

[hosts."GitHub.com"]
user = "octo"
token = "secret"

[hooks.editor]
command = "code {path}"
on = ["new"]
`
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Defaults.ProjectName != DefaultProjectName {
		t.Errorf("project_name = %q, want fallback %q", cfg.Defaults.ProjectName, DefaultProjectName)
	}
	if cfg.Defaults.PackageName != "github.com/acme/demo" {
		t.Errorf("package_name = %q", cfg.Defaults.PackageName)
	}
	if len(cfg.TemplateRepositories) != 1 || cfg.TemplateRepositories[0].Tags[0] != "http" {
		t.Errorf("template_repositories = %+v", cfg.TemplateRepositories)
	}
	if len(cfg.TemplateCatalogs) != 1 {
		t.Errorf("template_catalogs = %+v", cfg.TemplateCatalogs)
	}
	if h, ok := cfg.HostFor("github.com"); !ok || h.Token != "secret" {
		t.Errorf("HostFor(github.com) = %+v, %v", h, ok)
	}
	if cfg.Hooks.Hooks["editor"].Command != "code {path}" {
		t.Errorf("hooks = %+v", cfg.Hooks.Hooks)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParseInvalidTOML(t *testing.T) {
	if _, err := Parse("[defaults"); err == nil {
		t.Error("Parse() expected error for malformed TOML")
	}
}

func TestParseHooksConfig(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected HooksConfig
	}{
		{
			name: "full hooks config",
			raw: map[string]any{
				"editor": map[string]any{
					"command":     "code {path}",
					"description": "Open VS Code",
					"on":          []any{"new"},
				},
				"tidy": map[string]any{
					"command": "go mod tidy",
				},
			},
			expected: HooksConfig{
				Hooks: map[string]Hook{
					"editor": {Command: "code {path}", Description: "Open VS Code", On: []string{"new"}},
					"tidy":   {Command: "go mod tidy"},
				},
			},
		},
		{
			name:     "non-table entries ignored",
			raw:      map[string]any{"stray": "value"},
			expected: HooksConfig{Hooks: map[string]Hook{}},
		},
		{
			name:     "nil input",
			raw:      nil,
			expected: HooksConfig{Hooks: map[string]Hook{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseHooksConfig(tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseHooksConfig() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestFindTemplate(t *testing.T) {
	cfg := Config{TemplateRepositories: []TemplateRepository{
		{Name: " Web ", URL: "https://example.com/web"},
		{Name: "cli", URL: "https://example.com/cli"},
	}}

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"web", "https://example.com/web", true},
		{"  WEB", "https://example.com/web", true},
		{"Cli", "https://example.com/cli", true},
		{"lib", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := cfg.FindTemplate(tt.query)
			if ok != tt.found || got.URL != tt.want {
				t.Errorf("FindTemplate(%q) = %q, %v; want %q, %v", tt.query, got.URL, ok, tt.want, tt.found)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{TemplateRepositories: []TemplateRepository{
				{Name: "web", URL: "git@github.com:acme/web.git"},
			}},
		},
		{
			name: "missing url",
			cfg: Config{TemplateRepositories: []TemplateRepository{
				{Name: "web"},
			}},
			wantErr: "template_repositories[0].url is required",
		},
		{
			name: "duplicate names",
			cfg: Config{TemplateRepositories: []TemplateRepository{
				{Name: "web", URL: "/tmp/a"},
				{Name: "WEB", URL: "/tmp/b"},
			}},
			wantErr: "duplicate name",
		},
		{
			name:    "bad scheme",
			cfg:     Config{TemplateCatalogs: []TemplateCatalog{{Name: "c", URL: "ftp://example.com/c"}}},
			wantErr: "scheme must be",
		},
		{
			name:    "unknown default template",
			cfg:     Config{Defaults: Defaults{TemplateRepository: "web"}},
			wantErr: "does not name a configured template repository",
		},
		{
			name: "invalid hook event",
			cfg: Config{Hooks: HooksConfig{Hooks: map[string]Hook{
				"x": {Command: "true", On: []string{"add"}},
			}}},
			wantErr: `invalid hooks.x.on "add"`,
		},
		{
			name:    "invalid theme",
			cfg:     Config{Theme: ThemeConfig{Name: "solarized", Mode: "dim"}},
			wantErr: "theme.mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	data := `
[[template_repositories]]
name = "web"
url = "https://github.com/acme/web"

[hosts."github.com"]
user = "from-config"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := SetHostIn(dir, "GitHub.com", Host{User: "octo", Token: "t0k"}); err != nil {
		t.Fatalf("SetHostIn() error = %v", err)
	}
	t.Setenv(EnvProjectName, "from-env")
	t.Setenv(EnvTemplate, "")

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if cfg.Defaults.ProjectName != "from-env" {
		t.Errorf("project_name = %q, want from-env", cfg.Defaults.ProjectName)
	}
	if h, _ := cfg.HostFor("github.com"); h.User != "octo" || h.Token != "t0k" {
		t.Errorf("hosts.toml should override config.toml, got %+v", h)
	}
}

func TestLoadDirMissingFiles(t *testing.T) {
	t.Setenv(EnvProjectName, "")
	dir := t.TempDir()
	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if cfg.Defaults.ProjectName != DefaultProjectName {
		t.Errorf("project_name = %q", cfg.Defaults.ProjectName)
	}
	if p, _ := cfg.HistoryPath(); p != filepath.Join(dir, "history.json") {
		t.Errorf("HistoryPath() = %q, want inside %s", p, dir)
	}
}

func TestSetHostKeepsOthers(t *testing.T) {
	dir := t.TempDir()
	if _, err := SetHostIn(dir, "github.com", Host{Token: "a"}); err != nil {
		t.Fatal(err)
	}
	path, err := SetHostIn(dir, "gitlab.com", Host{Token: "b"})
	if err != nil {
		t.Fatal(err)
	}

	hosts, err := loadHosts(path)
	if err != nil {
		t.Fatalf("loadHosts() error = %v", err)
	}
	if hosts["github.com"].Token != "a" || hosts["gitlab.com"].Token != "b" {
		t.Errorf("hosts = %+v", hosts)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("hosts.toml mode = %v, want 0600", info.Mode().Perm())
	}

	if _, err := SetHostIn(dir, " ", Host{}); err == nil {
		t.Error("SetHostIn() expected error for empty host")
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	path, err := Init(false)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if path != filepath.Join(dir, "config.toml") {
		t.Errorf("Init() path = %q", path)
	}
	if _, err := Init(false); err == nil {
		t.Error("Init() without force should fail when file exists")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init(force) error = %v", err)
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	var raw rawConfig
	if _, err := toml.Decode(defaultConfig, &raw); err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
	cfg, err := Parse(defaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestThemeConfigParsing(t *testing.T) {
	tests := []struct {
		name     string
		toml     string
		expected ThemeConfig
	}{
		{
			name:     "empty theme",
			toml:     `[defaults]`,
			expected: ThemeConfig{},
		},
		{
			name: "preset with override",
			toml: `[theme]
name = "nord"
accent = "#ff79c6"`,
			expected: ThemeConfig{Name: "nord", Accent: "#ff79c6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw rawConfig
			if _, err := toml.Decode(tt.toml, &raw); err != nil {
				t.Fatalf("failed to parse TOML: %v", err)
			}
			if raw.Theme != tt.expected {
				t.Errorf("Theme = %+v, want %+v", raw.Theme, tt.expected)
			}
		})
	}
}

func TestValidateEnum(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"new", false},
		{"all", false},
		{"prune", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := validateEnum(tt.value, "on", ValidHookEvents)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Defaults: Defaults{ProjectName: "x"}}
		got := FromContext(WithConfig(context.Background(), cfg))
		if got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}
