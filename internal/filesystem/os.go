package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// OS implements Filesystem against the real disk.
type OS struct {
	logger *log.Logger
}

func NewOS(logger *log.Logger) *OS {
	return &OS{logger: logger}
}

func (o *OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OS) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (o *OS) ReadFile(path string) ([]byte, error) {
	o.debug("read", "path", path)
	data, err := os.ReadFile(path)
	return data, wrap("read", path, err)
}

func (o *OS) WriteFile(path string, data []byte) error {
	o.debug("write", "path", path, "bytes", len(data))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return wrap("write", path, err)
	}
	return wrap("write", path, os.WriteFile(path, data, 0644))
}

// CopyFile copies src to dest, creating parent directories and keeping the
// source file mode.
func (o *OS) CopyFile(src, dest string) error {
	o.debug("copy file", "src", src, "dest", dest)
	return wrap("copy", src, copyFile(src, dest))
}

// CopyDirectory copies the tree rooted at src into dest.
func (o *OS) CopyDirectory(src, dest string) error {
	o.debug("copy directory", "src", src, "dest", dest)
	info, err := os.Stat(src)
	if err != nil {
		return wrap("copy", src, err)
	}
	if !info.IsDir() {
		return &Error{Code: CodeUnknown, Op: "copy", Path: src, Err: errors.New("not a directory")}
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target)
		}
	})
	return wrap("copy", src, err)
}

func (o *OS) Glob(pattern, cwd string) ([]string, error) {
	o.debug("glob", "pattern", pattern, "cwd", cwd)
	if !doublestar.ValidatePattern(pattern) {
		return nil, &Error{Code: CodeUnknown, Op: "glob", Path: pattern, Err: doublestar.ErrBadPattern}
	}
	matches, err := doublestar.Glob(withoutGitDir{os.DirFS(cwd)}, filepath.ToSlash(pattern))
	if err != nil {
		return nil, wrap("glob", cwd, err)
	}
	return sortedPaths(matches), nil
}

// withoutGitDir hides the repository's .git entry so patterns such as ".*"
// or "**" never match or walk git metadata.
type withoutGitDir struct {
	fs.FS
}

func (w withoutGitDir) Open(name string) (fs.File, error) {
	if isGitPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return w.FS.Open(name)
}

func (w withoutGitDir) Stat(name string) (fs.FileInfo, error) {
	if isGitPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fs.Stat(w.FS, name)
}

func (w withoutGitDir) ReadDir(name string) ([]fs.DirEntry, error) {
	if isGitPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	entries, err := fs.ReadDir(w.FS, name)
	if name != "." {
		return entries, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Name() != gitDir {
			kept = append(kept, e)
		}
	}
	return kept, err
}

func (o *OS) Getwd() (string, error) {
	wd, err := os.Getwd()
	return wd, wrap("getwd", ".", err)
}

func (o *OS) IsDirectoryEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, wrap("readdir", path, err)
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, wrap("readdir", path, err)
}

func (o *OS) RemoveDirectory(path string) error {
	o.debug("remove directory", "path", path)
	return wrap("remove", path, os.RemoveAll(path))
}

func (o *OS) debug(msg string, keyvals ...interface{}) {
	if o.logger != nil {
		o.logger.Debug(msg, keyvals...)
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func sortedPaths(matches []string) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.FromSlash(m)
	}
	sort.Strings(out)
	return out
}
