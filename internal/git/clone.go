package git

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Credentials authenticate https clones.
type Credentials struct {
	User  string
	Token string
}

// ExtractRepoNameFromURL extracts the repository name from a git URL
func ExtractRepoNameFromURL(u string) string {
	u = strings.TrimSuffix(strings.TrimRight(u, "/"), ".git")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// Host returns the lower-cased host of a git URL, or "" for local paths.
// Both URL and scp-style (git@host:org/repo) forms are understood.
func Host(raw string) string {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}
	if at := strings.Index(raw, "@"); at >= 0 {
		rest := raw[at+1:]
		if colon := strings.Index(rest, ":"); colon > 0 {
			return strings.ToLower(rest[:colon])
		}
	}
	return ""
}

// IsLocal reports whether raw refers to a directory on disk.
func IsLocal(raw string) bool {
	if strings.HasPrefix(raw, "file://") {
		return true
	}
	if Host(raw) != "" {
		return false
	}
	info, err := os.Stat(raw)
	return err == nil && info.IsDir()
}

// AuthURL returns raw with creds embedded as userinfo. Only https URLs
// without existing userinfo are changed.
func AuthURL(raw string, creds Credentials) string {
	if creds.Token == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return raw
	}
	user := creds.User
	if user == "" {
		user = "x-access-token"
	}
	u.User = url.UserPassword(user, creds.Token)
	return u.String()
}

// Clone shallow-clones repoURL into dest, which must not exist, and
// returns the abbreviated commit it checked out. The .git directory is
// removed afterwards so dest holds only the template's files.
func Clone(ctx context.Context, repoURL, dest string, creds Credentials) (string, error) {
	if err := CheckGit(); err != nil {
		return "", err
	}
	src := AuthURL(repoURL, creds)
	if err := runGit(ctx, "", "clone", "--quiet", "--depth", "1", src, dest); err != nil {
		return "", fmt.Errorf("clone %s: %w", repoURL, err)
	}
	commit, err := headCommit(ctx, dest)
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return "", fmt.Errorf("clean clone: %w", err)
	}
	return commit, nil
}

func headCommit(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
