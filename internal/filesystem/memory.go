package filesystem

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// CopyCall records a copy performed against a Memory filesystem.
type CopyCall struct {
	Src       string
	Dest      string
	Directory bool
}

// Memory is an in-memory Filesystem used by tests. Directories are created
// implicitly for every file added.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
	cwd   string

	// Copies lists every CopyFile and CopyDirectory call in order.
	Copies []CopyCall
}

func NewMemory(cwd string) *Memory {
	m := &Memory{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		cwd:   filepath.Clean(cwd),
	}
	m.addDirLocked(m.cwd)
	return m
}

// AddFile creates a file and its parent directories.
func (m *Memory) AddFile(path, content string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putLocked(filepath.Clean(path), []byte(content))
	return m
}

// AddDir creates a directory and its parents.
func (m *Memory) AddDir(path string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(filepath.Clean(path))
	return m
}

func (m *Memory) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	_, isFile := m.files[path]
	return isFile || m.dirs[path]
}

func (m *Memory) IsDirectory(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[filepath.Clean(path)]
}

func (m *Memory) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	data, ok := m.files[path]
	if !ok {
		return nil, &Error{Code: CodeNotFound, Op: "read", Path: path}
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if m.dirs[path] {
		return &Error{Code: CodeAlreadyExists, Op: "write", Path: path, Err: errors.New("is a directory")}
	}
	m.putLocked(path, append([]byte(nil), data...))
	return nil
}

func (m *Memory) CopyFile(src, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, dest = filepath.Clean(src), filepath.Clean(dest)
	m.Copies = append(m.Copies, CopyCall{Src: src, Dest: dest})

	data, ok := m.files[src]
	if !ok {
		return &Error{Code: CodeNotFound, Op: "copy", Path: src}
	}
	m.putLocked(dest, append([]byte(nil), data...))
	return nil
}

func (m *Memory) CopyDirectory(src, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, dest = filepath.Clean(src), filepath.Clean(dest)
	m.Copies = append(m.Copies, CopyCall{Src: src, Dest: dest, Directory: true})

	if !m.dirs[src] {
		return &Error{Code: CodeNotFound, Op: "copy", Path: src}
	}
	m.addDirLocked(dest)
	for dir := range m.dirs {
		if rel, ok := under(src, dir); ok {
			m.addDirLocked(filepath.Join(dest, rel))
		}
	}
	for path, data := range m.files {
		if rel, ok := under(src, path); ok {
			m.putLocked(filepath.Join(dest, rel), append([]byte(nil), data...))
		}
	}
	return nil
}

func (m *Memory) Glob(pattern, cwd string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !doublestar.ValidatePattern(pattern) {
		return nil, &Error{Code: CodeUnknown, Op: "glob", Path: pattern, Err: doublestar.ErrBadPattern}
	}
	cwd = filepath.Clean(cwd)

	var matches []string
	check := func(path string) {
		rel, ok := under(cwd, path)
		if !ok {
			return
		}
		if isGitPath(filepath.ToSlash(rel)) {
			return
		}
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); matched {
			matches = append(matches, rel)
		}
	}
	for path := range m.files {
		check(path)
	}
	for dir := range m.dirs {
		check(dir)
	}
	sort.Strings(matches)
	return matches, nil
}

func (m *Memory) Getwd() (string, error) {
	return m.cwd, nil
}

func (m *Memory) IsDirectoryEmpty(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if !m.dirs[path] {
		return false, &Error{Code: CodeNotFound, Op: "readdir", Path: path}
	}
	for p := range m.files {
		if _, ok := under(path, p); ok {
			return false, nil
		}
	}
	for d := range m.dirs {
		if _, ok := under(path, d); ok {
			return false, nil
		}
	}
	return true, nil
}

func (m *Memory) RemoveDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	delete(m.dirs, path)
	for p := range m.files {
		if _, ok := under(path, p); ok {
			delete(m.files, p)
		}
	}
	for d := range m.dirs {
		if _, ok := under(path, d); ok {
			delete(m.dirs, d)
		}
	}
	return nil
}

func (m *Memory) putLocked(path string, data []byte) {
	m.files[path] = data
	m.addDirLocked(filepath.Dir(path))
}

func (m *Memory) addDirLocked(path string) {
	for {
		m.dirs[path] = true
		parent := filepath.Dir(path)
		if parent == path {
			return
		}
		path = parent
	}
}

// under returns path relative to root when path lies strictly inside root.
func under(root, path string) (string, bool) {
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return strings.TrimPrefix(path, prefix), true
}
