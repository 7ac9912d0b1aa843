// Package history records the projects created by "up new".
package history

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/up/internal/storage"
)

// MaxEntries bounds the number of remembered projects.
const MaxEntries = 50

// FileName is the history file inside the config directory.
const FileName = "history.json"

// Entry is one created project.
type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Template  string    `json:"template"`
	URL       string    `json:"url,omitempty"`
	Package   string    `json:"package,omitempty"`
	Commit    string    `json:"commit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// History lists entries, most recent first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history at path. A missing file yields an empty
// history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	return &h, nil
}

// Record prepends e to the history at path. An older entry for the
// same path is dropped.
func Record(path string, e Entry) error {
	lock := storage.NewFileLock(lockPath(path))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	h, err := Load(path)
	if err != nil {
		// unreadable history is replaced
		h = &History{}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	h.Entries = slices.DeleteFunc(h.Entries, func(old Entry) bool { return old.Path == e.Path })
	h.Entries = slices.Insert(h.Entries, 0, e)
	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[:MaxEntries]
	}
	return storage.SaveJSON(path, h)
}

// Prune removes entries whose directory no longer exists and returns how
// many were removed.
func Prune(path string) (int, error) {
	lock := storage.NewFileLock(lockPath(path))
	if err := lock.Lock(); err != nil {
		return 0, err
	}
	defer lock.Unlock()

	h, err := Load(path)
	if err != nil {
		return 0, err
	}
	before := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		_, err := os.Stat(e.Path)
		return errors.Is(err, os.ErrNotExist)
	})
	removed := before - len(h.Entries)
	if removed == 0 {
		return 0, nil
	}
	return removed, storage.SaveJSON(path, h)
}

func lockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}
