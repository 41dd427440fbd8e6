package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestOS_Glob_SingleLevel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config/db.json":       "{}",
		"config/api.json":      "{}",
		"config/readme.txt":    "",
		"config/nested/x.json": "{}",
	})

	matches, err := NewOS(nil).Glob("config/*.json", root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("config", "api.json"),
		filepath.Join("config", "db.json"),
	}, matches)
}

func TestOS_Glob_Recursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.env":          "",
		"sub/b.env":      "",
		"sub/deep/c.env": "",
	})

	matches, err := NewOS(nil).Glob("**/*.env", root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"a.env",
		filepath.Join("sub", "b.env"),
		filepath.Join("sub", "deep", "c.env"),
	}, matches)
}

func TestOS_Glob_Braces(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".env": "", ".env.local": "", ".envrc": ""})

	matches, err := NewOS(nil).Glob(".env{,.local}", root)

	require.NoError(t, err)
	assert.Equal(t, []string{".env", ".env.local"}, matches)
}

func TestOS_Glob_SkipsGitDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".env":           "",
		".gitignore":     "",
		".git/HEAD":      "ref: refs/heads/main",
		".git/hooks/x":   "",
		"app/.gitkeep":   "",
		"app/.git/stray": "",
	})

	dots, err := NewOS(nil).Glob(".*", root)
	require.NoError(t, err)
	assert.Equal(t, []string{".env", ".gitignore"}, dots)

	nested, err := NewOS(nil).Glob("**/.git*", root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		".gitignore",
		filepath.Join("app", ".git"),
		filepath.Join("app", ".gitkeep"),
	}, nested)
}

func TestOS_Glob_NoMatches(t *testing.T) {
	matches, err := NewOS(nil).Glob("*.missing", t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestOS_Glob_BadPattern(t *testing.T) {
	_, err := NewOS(nil).Glob("[", t.TempDir())

	assert.Error(t, err)
}

func TestOS_ReadFile_NotFound(t *testing.T) {
	_, err := NewOS(nil).ReadFile(filepath.Join(t.TempDir(), "nope"))

	assert.True(t, IsCode(err, CodeNotFound))
}

func TestOS_WriteFile_CreatesParents(t *testing.T) {
	root := t.TempDir()
	fs := NewOS(nil)
	path := filepath.Join(root, "a", "b", "c.txt")

	require.NoError(t, fs.WriteFile(path, []byte("hi")))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	assert.True(t, fs.IsDirectory(filepath.Join(root, "a", "b")))
}

func TestOS_CopyFile_PreservesMode(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "script.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh"), 0755))
	dest := filepath.Join(root, "out", "script.sh")

	require.NoError(t, NewOS(nil).CopyFile(src, dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestOS_CopyDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.txt":     "a",
		"src/sub/b.txt": "b",
	})
	fs := NewOS(nil)

	require.NoError(t, fs.CopyDirectory(filepath.Join(root, "src"), filepath.Join(root, "dest")))

	data, err := fs.ReadFile(filepath.Join(root, "dest", "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
	assert.True(t, fs.Exists(filepath.Join(root, "dest", "a.txt")))
}

func TestOS_CopyDirectory_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file": "x"})

	err := NewOS(nil).CopyDirectory(filepath.Join(root, "file"), filepath.Join(root, "dest"))

	assert.Error(t, err)
}

func TestOS_IsDirectoryEmpty(t *testing.T) {
	root := t.TempDir()
	fs := NewOS(nil)

	empty, err := fs.IsDirectoryEmpty(root)
	require.NoError(t, err)
	assert.True(t, empty)

	writeTree(t, root, map[string]string{"x": ""})
	empty, err = fs.IsDirectoryEmpty(root)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = fs.IsDirectoryEmpty(filepath.Join(root, "missing"))
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestOS_RemoveDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"dir/x": ""})
	fs := NewOS(nil)

	require.NoError(t, fs.RemoveDirectory(filepath.Join(root, "dir")))

	assert.False(t, fs.Exists(filepath.Join(root, "dir")))
}
