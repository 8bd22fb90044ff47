package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoPage is returned by a Store that has no page of that name.
var ErrNoPage = errors.New("page not found")

// Store hands out page templates by file name.
type Store interface {
	Load(name string) (string, error)
}

// DirStore reads page templates from a directory on every call so edits
// show up without a restart.
type DirStore struct {
	Dir string
}

func (d DirStore) Load(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(d.Dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoPage, name)
	}
	if err != nil {
		return "", fmt.Errorf("read page %s: %w", name, err)
	}
	return string(b), nil
}

// MapStore serves page templates from memory.
type MapStore map[string]string

func (m MapStore) Load(name string) (string, error) {
	s, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoPage, name)
	}
	return s, nil
}
