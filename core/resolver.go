package core

import (
	"io/fs"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// SearchPath returns a copy of the session's current search path.
func (s *Session) SearchPath() []string {
	return append([]string(nil), s.searchPath...)
}

// SetSearchPath replaces the whole search path. The previous list is
// discarded, never appended to; an empty list is legal and makes every
// external lookup fail.
func (s *Session) SetSearchPath(dirs []string) {
	s.searchPath = append([]string(nil), dirs...)
}

// Candidates returns the paths that would be tried, in order, to
// resolve the named program against the current search path.
func (s *Session) Candidates(name string) []string {
	var out []string
	for _, dir := range s.searchPath {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

// Resolve searches for an executable named name in the directories of
// the session's search path, in order, and returns the first candidate
// that exists and is executable. If the search path is empty or every
// candidate fails it returns ErrNotFound.
func (s *Session) Resolve(name string) (string, error) {
	for _, candidate := range s.Candidates(name) {
		if err := findExecutable(s.FS, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
