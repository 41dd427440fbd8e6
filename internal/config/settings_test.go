package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir(), nil)

	require.NoError(t, err)
	assert.False(t, settings.Verbose)
	assert.Equal(t, 5*time.Minute, settings.HookTimeout)
	assert.Equal(t, "origin", settings.Remote)
	assert.Equal(t, "text", settings.Output)
}

func TestLoadSettings_File(t *testing.T) {
	dir := t.TempDir()
	content := `verbose: true
hook_timeout: 30s
remote: upstream
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	settings, err := LoadSettings(dir, nil)

	require.NoError(t, err)
	assert.True(t, settings.Verbose)
	assert.Equal(t, 30*time.Second, settings.HookTimeout)
	assert.Equal(t, "upstream", settings.Remote)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("hook_timeout: 30s\n"), 0644))
	t.Setenv("WTK_HOOK_TIMEOUT", "2m")

	settings, err := LoadSettings(dir, nil)

	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, settings.HookTimeout)
}

func TestLoadSettings_FlagOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("verbose", false, "")
	flags.String("output", "text", "")
	require.NoError(t, flags.Parse([]string{"--verbose", "--output", "json"}))

	settings, err := LoadSettings(t.TempDir(), flags)

	require.NoError(t, err)
	assert.True(t, settings.Verbose)
	assert.Equal(t, "json", settings.Output)
}

func TestLoadSettings_InvalidOutput(t *testing.T) {
	t.Setenv("WTK_OUTPUT", "xml")

	_, err := LoadSettings(t.TempDir(), nil)

	assert.Error(t, err)
}

func TestGetGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	dir, err := GetGlobalConfigDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "worktree-kit"), dir)
}
