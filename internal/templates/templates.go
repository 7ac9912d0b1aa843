// Package templates resolves template repositories from config and
// retrieves their contents into a scratch directory.
package templates

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/up/internal/config"
	"github.com/raphi011/up/internal/git"
	"github.com/raphi011/up/internal/log"
	"github.com/raphi011/up/internal/project"
)

var (
	// ErrNotFound is returned when no configured repository matches.
	ErrNotFound = errors.New("template repository not found")

	// ErrConflict is returned when both a name and a URL are given.
	ErrConflict = errors.New("template name and url can not be specified together")
)

// Source identifies a template to retrieve.
type Source struct {
	Name string // configured name; empty for ad-hoc URLs
	URL  string
}

// Label returns the name, or the repository name derived from the URL.
func (s Source) Label() string {
	return cmp.Or(s.Name, git.ExtractRepoNameFromURL(s.URL))
}

// Resolve picks the template source. A URL is used as is; otherwise the
// name, or the configured default name, is looked up case-insensitively.
func Resolve(cfg *config.Config, name, url string) (Source, error) {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)
	if name != "" && url != "" {
		return Source{}, ErrConflict
	}
	if url != "" {
		return Source{URL: url}, nil
	}

	name = cmp.Or(name, strings.TrimSpace(cfg.Defaults.TemplateRepository))
	if name == "" {
		return Source{}, fmt.Errorf("%w: no template given and no default configured", ErrNotFound)
	}
	repo, ok := cfg.FindTemplate(name)
	if !ok || strings.TrimSpace(repo.URL) == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Source{Name: repo.Name, URL: repo.URL}, nil
}

// Retrieved is a template checked out into a scratch directory.
type Retrieved struct {
	Source Source
	Dir    string // template contents, without .git
	Commit string // empty for plain local directories

	scratch string
}

// Cleanup removes the scratch directory.
func (r *Retrieved) Cleanup() error {
	if r.scratch == "" {
		return nil
	}
	return os.RemoveAll(r.scratch)
}

// Retrieve fetches src into a new scratch directory. Git URLs and local
// repositories are shallow-cloned with credentials from the config's
// hosts; plain local directories are copied.
func Retrieve(ctx context.Context, cfg *config.Config, src Source) (*Retrieved, error) {
	l := log.FromContext(ctx)

	scratch, err := os.MkdirTemp("", "up-template-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	r := &Retrieved{Source: src, Dir: filepath.Join(scratch, "src"), scratch: scratch}

	if isPlainDir(src.URL) {
		l.Debug("copying local template", "path", src.URL)
		if err := project.Copy(src.URL, r.Dir); err != nil {
			_ = r.Cleanup()
			return nil, fmt.Errorf("copy template %s: %w", src.URL, err)
		}
		return r, nil
	}

	host := git.Host(src.URL)
	var creds git.Credentials
	if h, ok := cfg.HostFor(host); ok {
		creds = git.Credentials{User: h.User, Token: h.Token}
		l.Debug("using host credentials", "host", host)
	}

	commit, err := git.Clone(ctx, src.URL, r.Dir, creds)
	if err != nil {
		_ = r.Cleanup()
		return nil, err
	}
	r.Commit = commit
	return r, nil
}

// isPlainDir reports whether raw is a local directory that is not a git
// repository.
func isPlainDir(raw string) bool {
	if strings.HasPrefix(raw, "file://") || !git.IsLocal(raw) {
		return false
	}
	_, err := os.Stat(filepath.Join(raw, ".git"))
	return errors.Is(err, os.ErrNotExist)
}
