package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naoray/worktree-kit/internal/exec"
)

func TestCLI_ListBranches(t *testing.T) {
	repoDir := createTestRepo(t)
	runTestGit(t, repoDir, "branch", "feature/a")
	runTestGit(t, repoDir, "branch", "develop")

	branches, err := NewCLI(repoDir, nil, nil).ListBranches(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main", "feature/a", "develop"}, branches)
}

func TestCLI_ListRemoteBranches(t *testing.T) {
	mock := exec.NewMockCommander()
	mock.SetResponse("git", []string{"for-each-ref", "--format=%(refname)", "refs/remotes/"},
		"refs/remotes/origin/HEAD\nrefs/remotes/origin/main\nrefs/remotes/origin/feature/x\nrefs/remotes/upstream/main\n")

	branches, err := NewCLI("/repo", mock, nil).ListRemoteBranches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"main", "feature/x"}, branches)
	assert.Equal(t, "/repo", mock.LastCall().Dir)
}

func TestCLI_BranchExists(t *testing.T) {
	repoDir := createTestRepo(t)
	g := NewCLI(repoDir, nil, nil)
	ctx := context.Background()

	ok, err := g.BranchExists(ctx, "main")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.BranchExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCLI_CurrentAndDefaultBranch(t *testing.T) {
	repoDir := createTestRepo(t)
	runTestGit(t, repoDir, "checkout", "-b", "work")
	g := NewCLI(repoDir, nil, nil)
	ctx := context.Background()

	current, err := g.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "work", current)

	def, err := g.DefaultBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", def)
}

func TestCLI_DeleteBranch_NotMerged(t *testing.T) {
	repoDir := createTestRepo(t)
	runTestGit(t, repoDir, "checkout", "-b", "unmerged")
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "new.txt"), []byte("x"), 0644))
	runTestGit(t, repoDir, "add", ".")
	runTestGit(t, repoDir, "commit", "-m", "work")
	runTestGit(t, repoDir, "checkout", "main")
	g := NewCLI(repoDir, nil, nil)
	ctx := context.Background()

	err := g.DeleteBranch(ctx, "unmerged")
	require.Error(t, err)
	assert.Equal(t, CodeBranchNotMerged, CodeOf(err))

	require.NoError(t, g.DeleteBranchForce(ctx, "unmerged"))
	ok, _ := g.BranchExists(ctx, "unmerged")
	assert.False(t, ok)
}

func TestCLI_DeleteBranch_NotFound(t *testing.T) {
	repoDir := createTestRepo(t)

	err := NewCLI(repoDir, nil, nil).DeleteBranch(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, CodeBranchNotFound, CodeOf(err))
}

func TestCLI_IsIgnored(t *testing.T) {
	repoDir := createTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, ".gitignore"), []byte(".env\n"), 0644))
	g := NewCLI(repoDir, nil, nil)
	ctx := context.Background()

	ignored, err := g.IsIgnored(ctx, repoDir, ".env")
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = g.IsIgnored(ctx, repoDir, "README.md")
	require.NoError(t, err)
	assert.False(t, ignored)
}
