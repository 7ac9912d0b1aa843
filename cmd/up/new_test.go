package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/history"
	"github.com/raphi011/up/internal/project"
	"github.com/raphi011/up/internal/templates"
)

// writeTemplate creates a plain template directory with a Go module.
func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"go.mod":            "module example.com/tmpl\n\ngo 1.22\n",
		"main.go":           "package main\n\nimport \"example.com/tmpl/internal/app\"\n\nfunc main() { app.Run() }\n",
		"internal/app/a.go": "package app\n\nfunc Run() {}\n",
		"README.md":         "# template\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// newTestConfig returns a config with one usable template repository
// and a hook on "new". State files go to a temporary directory.
func newTestConfig(t *testing.T, tmpl string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Dir = t.TempDir()
	cfg.TemplateRepositories = []config.TemplateRepository{
		{Name: "basic", Description: "Basic module", URL: tmpl},
		{Name: "broken", Description: "No URL"},
	}
	cfg.Hooks.Hooks = map[string]config.Hook{
		"mark": {Command: "touch {name:-unnamed}.marker", On: []string{"new"}},
	}
	return &cfg
}

func TestRunNew_NonInteractive(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	cfg := newTestConfig(t, writeTemplate(t))
	ctx, out := testContext(t, cfg)

	err := runNew(ctx, nil, newOptions{
		name:     "my app",
		template: "basic",
		pkg:      "example.com/acme/myapp",
		path:     parent,
	})
	if err != nil {
		t.Fatalf("runNew() error = %v", err)
	}

	target := filepath.Join(parent, "my_app")
	if got := strings.TrimSpace(out.String()); got != target {
		t.Errorf("output = %q, want %q", got, target)
	}

	mod, err := project.ModulePath(target)
	if err != nil {
		t.Fatal(err)
	}
	if mod != "example.com/acme/myapp" {
		t.Errorf("module = %q, want example.com/acme/myapp", mod)
	}

	src, err := os.ReadFile(filepath.Join(target, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), `"example.com/acme/myapp/internal/app"`) {
		t.Errorf("main.go imports not rewritten:\n%s", src)
	}

	if _, err := os.Stat(filepath.Join(target, "my app.marker")); err != nil {
		t.Errorf("hook did not run: %v", err)
	}

	h, err := history.Load(filepath.Join(cfg.Dir, history.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Entries) != 1 || h.Entries[0].Path != target || h.Entries[0].Template != "basic" {
		t.Errorf("history = %+v, want one entry for %s", h.Entries, target)
	}
}

func TestRunNew_NoHookKeepsPackage(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	cfg := newTestConfig(t, writeTemplate(t))
	ctx, _ := testContext(t, cfg)

	if err := runNew(ctx, nil, newOptions{name: "svc", template: "basic", path: parent, noHook: true}); err != nil {
		t.Fatalf("runNew() error = %v", err)
	}

	target := filepath.Join(parent, "svc")
	mod, err := project.ModulePath(target)
	if err != nil {
		t.Fatal(err)
	}
	if mod != "example.com/tmpl" {
		t.Errorf("module = %q, want template module kept", mod)
	}
	if _, err := os.Stat(filepath.Join(target, "svc.marker")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("hook ran despite --no-hook: %v", err)
	}
}

func TestRunNew_TrimsName(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	cfg := newTestConfig(t, writeTemplate(t))
	ctx, out := testContext(t, cfg)

	if err := runNew(ctx, nil, newOptions{name: "  api ", template: "basic", path: parent}); err != nil {
		t.Fatalf("runNew() error = %v", err)
	}

	target := filepath.Join(parent, "api")
	if got := strings.TrimSpace(out.String()); got != target {
		t.Errorf("output = %q, want %q", got, target)
	}
	if _, err := os.Stat(filepath.Join(target, "api.marker")); err != nil {
		t.Errorf("hook did not see trimmed name: %v", err)
	}
}

func TestRunNew_Interactive(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	cfg := newTestConfig(t, writeTemplate(t))
	ctx, _ := testContext(t, cfg)

	term := &scriptedTerminal{
		text:   map[string]string{stepPackage: "example.com/x/api", stepPath: parent},
		choice: map[string]string{stepTemplate: "basic"},
	}
	if err := runNew(ctx, term, newOptions{noHook: true}); err != nil {
		t.Fatalf("runNew() error = %v", err)
	}

	// The name has a config default and is accepted without prompting.
	want := []string{stepTemplate, stepPackage, stepPath}
	if !slices.Equal(term.asked, want) {
		t.Errorf("asked = %v, want %v", term.asked, want)
	}
	if _, err := os.Stat(filepath.Join(parent, config.DefaultProjectName, "go.mod")); err != nil {
		t.Errorf("project not created: %v", err)
	}
}

func TestRunNew_VerifyPromptsForKnownValues(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	cfg := newTestConfig(t, writeTemplate(t))
	ctx, _ := testContext(t, cfg)

	term := &scriptedTerminal{
		text:   map[string]string{stepName: "renamed", stepPath: parent},
		choice: map[string]string{stepTemplate: "basic"},
	}
	err := runNew(ctx, term, newOptions{name: "given", template: "basic", verify: true, noHook: true})
	if err != nil {
		t.Fatalf("runNew() error = %v", err)
	}
	if !slices.Contains(term.asked, stepName) {
		t.Errorf("asked = %v, want name prompted", term.asked)
	}
	if _, err := os.Stat(filepath.Join(parent, "renamed")); err != nil {
		t.Errorf("project not created under prompted name: %v", err)
	}
}

func TestRunNew_Errors(t *testing.T) {
	t.Parallel()

	tmpl := writeTemplate(t)

	existing := t.TempDir()
	if err := os.MkdirAll(filepath.Join(existing, "taken"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(existing, "taken", "file"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    newOptions
		wantErr error
		wantMsg string
	}{
		{
			name:    "template and url",
			opts:    newOptions{name: "a", template: "basic", url: tmpl},
			wantErr: templates.ErrConflict,
		},
		{
			name:    "unknown template",
			opts:    newOptions{name: "a", template: "nope", path: t.TempDir()},
			wantErr: templates.ErrNotFound,
		},
		{
			name:    "no template without terminal",
			opts:    newOptions{name: "a", path: t.TempDir()},
			wantErr: templates.ErrNotFound,
		},
		{
			name:    "invalid package",
			opts:    newOptions{name: "a", template: "basic", pkg: "bad path//x", path: t.TempDir()},
			wantMsg: "bad path//x",
		},
		{
			name:    "target not empty",
			opts:    newOptions{name: "taken", template: "basic", path: existing},
			wantErr: project.ErrExists,
		},
		{
			name:    "unknown hook",
			opts:    newOptions{name: "a", template: "basic", hook: "missing", path: t.TempDir()},
			wantMsg: `unknown hook "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testContext(t, newTestConfig(t, tmpl))

			err := runNew(ctx, nil, tt.opts)
			if err == nil {
				t.Fatal("runNew() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("runNew() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("runNew() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestTemplateItems(t *testing.T) {
	t.Parallel()

	items := templateItems(newTestConfig(t, "/tmp/x").TemplateRepositories)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if !items[0].Enabled || items[0].Value != "basic" {
		t.Errorf("items[0] = %+v, want enabled basic", items[0])
	}
	if items[0].Name != "basic" || items[0].Description != "Basic module" {
		t.Errorf("items[0] = %+v, want plain name and separate description", items[0])
	}
	if items[1].Enabled {
		t.Errorf("items[1] = %+v, want disabled without URL", items[1])
	}
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct{ in, want string }{
		{"~", home},
		{"~/src", filepath.Join(home, "src")},
		{"/abs", "/abs"},
		{"rel/~", "rel/~"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
