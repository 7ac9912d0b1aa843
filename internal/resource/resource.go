// Package resource loads and renders the templates shown above prompts.
//
// Default templates for each step kind are embedded in the binary. A
// directory of overrides (usually $UP_CONFIG_DIR/templates) takes
// precedence file by file.
package resource

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/raphi011/up/internal/flow"
	"github.com/raphi011/up/internal/ui/styles"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Loader resolves template locations against override directories first
// and the embedded defaults last.
type Loader struct {
	layers []fs.FS
}

var _ flow.ResourceLoader = (*Loader)(nil)

// NewLoader returns a loader that checks dir before the embedded
// templates. An empty dir uses only the embedded ones.
func NewLoader(dir string) *Loader {
	var layers []fs.FS
	if dir != "" {
		layers = append(layers, os.DirFS(dir))
	}
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return &Loader{layers: append(layers, sub)}
}

// Load returns the content of location, or an error wrapping
// flow.ErrResourceNotFound if no layer has it.
func (l *Loader) Load(location string) (string, error) {
	if !fs.ValidPath(location) {
		return "", fmt.Errorf("invalid template location %q", location)
	}
	for _, layer := range l.layers {
		data, err := fs.ReadFile(layer, location)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%s: %w", location, flow.ErrResourceNotFound)
}

// Executor renders templates with text/template and the style helpers in
// [Funcs].
type Executor struct {
	funcs template.FuncMap
}

var _ flow.TemplateExecutor = (*Executor)(nil)

// NewExecutor returns an executor with the default function map.
func NewExecutor() *Executor {
	return &Executor{funcs: Funcs()}
}

// Render executes tmpl against data and splits the output into lines.
// Trailing newlines are dropped; empty output yields nil.
func (e *Executor) Render(tmpl string, data any) ([]string, error) {
	t, err := template.New("prompt").Funcs(e.funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Funcs returns the template helpers: style wrappers plus join, upper,
// lower and link.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"bold":    func(s string) string { return styles.Bold.Render(s) },
		"primary": func(s string) string { return styles.PrimaryStyle.Render(s) },
		"accent":  func(s string) string { return styles.AccentStyle.Render(s) },
		"muted":   func(s string) string { return styles.MutedStyle.Render(s) },
		"info":    func(s string) string { return styles.InfoStyle.Render(s) },
		"warning": func(s string) string { return styles.WarningStyle.Render(s) },
		"link":    styles.Link,
		"join":    strings.Join,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
	}
}
