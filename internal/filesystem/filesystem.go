// Package filesystem abstracts the file operations wt performs so the core
// workflow can run against an in-memory tree in tests.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorCode classifies filesystem failures.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeUnknown          ErrorCode = "UNKNOWN"
)

// Error wraps a failed filesystem operation.
type Error struct {
	Code ErrorCode
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, strings.ToLower(string(e.Code)))
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a filesystem Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var fsErr *Error
	return errors.As(err, &fsErr) && fsErr.Code == code
}

// Filesystem is the set of file operations used by wt.
type Filesystem interface {
	Exists(path string) bool
	IsDirectory(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	CopyFile(src, dest string) error
	CopyDirectory(src, dest string) error
	// Glob expands pattern relative to cwd and returns matches relative to
	// cwd, sorted. `*` matches within one path segment and `**` spans
	// directories. The .git entry directly under cwd is never matched.
	Glob(pattern, cwd string) ([]string, error)
	Getwd() (string, error)
	IsDirectoryEmpty(path string) (bool, error)
	RemoveDirectory(path string) error
}

const gitDir = ".git"

// isGitPath reports whether a slash-separated relative path is .git or lies
// inside it.
func isGitPath(rel string) bool {
	return rel == gitDir || strings.HasPrefix(rel, gitDir+"/")
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return err
	}
	return &Error{Code: classify(err), Op: op, Path: path, Err: err}
}

func classify(err error) ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		return CodePermissionDenied
	case errors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	default:
		return CodeUnknown
	}
}
