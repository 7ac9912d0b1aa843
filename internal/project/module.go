package project

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/tools/go/ast/astutil"
)

// ErrNoModule is returned when the project has no go.mod.
var ErrNoModule = errors.New("no go.mod found")

// Rewrite summarizes a module path change.
type Rewrite struct {
	From  string
	To    string
	Files int // .go files whose imports changed
}

// ModulePath returns the module path declared in dir/go.mod.
func ModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoModule
	}
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("go.mod in %s has no module directive", dir)
	}
	return path, nil
}

// ValidateModulePath checks that p is usable as a module path.
func ValidateModulePath(p string) error {
	if err := module.CheckImportPath(p); err != nil {
		return fmt.Errorf("invalid package %q: %w", p, err)
	}
	return nil
}

// RewriteModule changes the module path in dir/go.mod to newPath and
// rewrites every import of the old module, or of its packages, in the
// .go files below dir. vendor and testdata directories are left alone.
func RewriteModule(dir, newPath string) (Rewrite, error) {
	if err := ValidateModulePath(newPath); err != nil {
		return Rewrite{}, err
	}

	modPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(modPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Rewrite{}, ErrNoModule
	}
	if err != nil {
		return Rewrite{}, err
	}
	mf, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return Rewrite{}, err
	}
	if mf.Module == nil {
		return Rewrite{}, fmt.Errorf("go.mod in %s has no module directive", dir)
	}

	rw := Rewrite{From: mf.Module.Mod.Path, To: newPath}
	if rw.From == rw.To {
		return rw, nil
	}
	if err := mf.AddModuleStmt(newPath); err != nil {
		return Rewrite{}, err
	}
	out, err := mf.Format()
	if err != nil {
		return Rewrite{}, err
	}
	if err := os.WriteFile(modPath, out, 0o644); err != nil {
		return Rewrite{}, err
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "vendor", "testdata", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		changed, err := rewriteImports(path, rw.From, rw.To)
		if err != nil {
			return fmt.Errorf("rewrite %s: %w", path, err)
		}
		if changed {
			rw.Files++
		}
		return nil
	})
	return rw, err
}

// rewriteImports replaces imports of from (or from/...) with to in one
// file and writes it back if anything changed.
func rewriteImports(path, from, to string) (bool, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return false, err
	}

	changed := false
	for _, imp := range file.Imports {
		old, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var repl string
		switch {
		case old == from:
			repl = to
		case strings.HasPrefix(old, from+"/"):
			repl = to + strings.TrimPrefix(old, from)
		default:
			continue
		}
		if astutil.RewriteImport(fset, file, old, repl) {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}
