package safeio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SafeFS confines all filesystem operations to one fixed root directory.
// Suggestion filenames come back from the advisory oracle and are untrusted;
// every resolve rejects paths that would land outside the root.
type SafeFS struct {
	absRoot string // absolute root with symlinks resolved
}

// NewSafeFS locks all future operations to the given root directory.
// The root path is resolved to an absolute, symlink-free directory.
func NewSafeFS(root string) (*SafeFS, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("safeio: root is not a directory")
	}
	return &SafeFS{absRoot: abs}, nil
}

// Root returns the absolute root directory bound to this SafeFS.
func (s *SafeFS) Root() string {
	if s == nil {
		return ""
	}
	return s.absRoot
}

// ReadRoot lists the immediate entries of the root directory.
func (s *SafeFS) ReadRoot() ([]fs.DirEntry, error) {
	if s == nil {
		return nil, errors.New("safeio: filesystem not configured")
	}
	return os.ReadDir(s.absRoot)
}

// SafeStat returns metadata for an entry under the root.
func (s *SafeFS) SafeStat(name string) (fs.FileInfo, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

// SafeRemoveAll removes an entry under the root, recursively for
// directories. The path must resolve inside the root.
func (s *SafeFS) SafeRemoveAll(name string) error {
	p, err := s.resolve(name)
	if err != nil {
		return err
	}
	if p == s.absRoot {
		return errors.New("safeio: refusing to remove the root itself")
	}
	return os.RemoveAll(p)
}

// SafeWriteFile writes data to a file directly under the root. The name
// must be a bare filename, not a path. The write goes through a temp file
// and rename so a crash never leaves a half-written artifact behind.
func (s *SafeFS) SafeWriteFile(name string, data []byte, perm fs.FileMode) error {
	if s == nil {
		return errors.New("safeio: filesystem not configured")
	}
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("safeio: %q is not a bare filename", name)
	}
	tmp, err := os.CreateTemp(s.absRoot, "."+name+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(s.absRoot, name))
}

func (s *SafeFS) resolve(name string) (string, error) {
	if s == nil {
		return "", errors.New("safeio: filesystem not configured")
	}
	if name == "" {
		return "", errors.New("safeio: empty path")
	}
	clean := filepath.Clean(name)
	if clean == "." {
		return s.absRoot, nil
	}

	isAbs := filepath.IsAbs(clean) || (runtime.GOOS == "windows" && filepath.VolumeName(clean) != "")
	if !isAbs {
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return "", errors.New("safeio: path traversal not allowed")
		}
	}

	var joined string
	if isAbs {
		joined = clean
	} else {
		joined = filepath.Join(s.absRoot, clean)
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(resolved, s.absRoot) {
		return "", fmt.Errorf("safeio: resolved outside root (root=%s, path=%s)", s.absRoot, resolved)
	}
	return resolved, nil
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if len(root) == 0 {
		return true
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	if !strings.HasSuffix(path, sep) {
		path += sep
	}
	return strings.HasPrefix(path, root)
}
