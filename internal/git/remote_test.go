package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_RemoteURL(t *testing.T) {
	repoDir := createTestRepo(t)
	remoteURL := "git@github.com:test/repo.git"
	runTestGit(t, repoDir, "remote", "add", "origin", remoteURL)
	g := NewCLI(repoDir, nil, nil)

	url, err := g.RemoteURL(context.Background(), "origin")
	require.NoError(t, err)
	assert.Equal(t, remoteURL, url)

	url, err = g.RemoteURL(context.Background(), "upstream")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestFake_RemoteURL(t *testing.T) {
	f := NewFake("/repo")

	url, err := f.RemoteURL(context.Background(), "origin")
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	url, err = f.RemoteURL(context.Background(), "upstream")
	require.NoError(t, err)
	assert.Empty(t, url)
}
