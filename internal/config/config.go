// Package config loads the per-repository worktree configuration and the
// per-user settings for wt.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"

	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/filesystem"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitWorktreeNotFound
	ExitGitOperationFailed
	ExitConfigurationError
)

const (
	// FileName is the project config file, stored at the main worktree root.
	FileName = ".worktreekitrc"

	// InitRootDir is the rootDir written by `wt init`.
	InitRootDir = "../worktrees"

	// DefaultRootDir is used when no config file can be loaded.
	DefaultRootDir = "../worktrees"
)

// DefaultBase selects how the base branch is chosen for interactive creation.
type DefaultBase string

const (
	DefaultBaseCurrent DefaultBase = "current"
	DefaultBaseDefault DefaultBase = "default"
	DefaultBaseAsk     DefaultBase = "ask"
)

var defaultBases = []DefaultBase{DefaultBaseCurrent, DefaultBaseDefault, DefaultBaseAsk}

// Hooks lists shell commands run at points of the worktree lifecycle.
type Hooks struct {
	PostCreate []string `mapstructure:"post-create" json:"post-create"`
}

// WorktreeConfig is the project configuration. After loading, every field is
// populated.
type WorktreeConfig struct {
	RootDir     string      `mapstructure:"rootDir" json:"rootDir"`
	Copy        []string    `mapstructure:"copy" json:"copy"`
	Hooks       Hooks       `mapstructure:"hooks" json:"hooks"`
	DefaultBase DefaultBase `mapstructure:"defaultBase" json:"defaultBase"`
}

// Default returns the configuration used when no config file is available.
func Default() *WorktreeConfig {
	return &WorktreeConfig{
		RootDir:     DefaultRootDir,
		Copy:        []string{},
		Hooks:       Hooks{PostCreate: []string{}},
		DefaultBase: DefaultBaseAsk,
	}
}

// Loaded is a successfully loaded config and the file it came from.
type Loaded struct {
	Config *WorktreeConfig
	Path   string
}

// RootFinder locates the main worktree of the current repository.
type RootFinder interface {
	MainWorktreeRoot(ctx context.Context) (string, error)
}

// Load reads and validates the config file at the main worktree root. Linked
// worktrees therefore share their main worktree's config.
func Load(ctx context.Context, git RootFinder, fs filesystem.Filesystem) (*Loaded, error) {
	root, err := git.MainWorktreeRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNotARepository, err)
	}

	path := filepath.Join(root, FileName)
	if !fs.Exists(path) {
		return nil, fmt.Errorf("%w at %s. Run 'wt init' to create one", apperrors.ErrConfigNotFound, path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w %s: %v", apperrors.ErrInvalidJSON, path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		var invalid *InvalidConfigError
		if errors.As(err, &invalid) {
			invalid.Path = path
		}
		return nil, err
	}

	return &Loaded{Config: cfg, Path: path}, nil
}

// InitOptions controls Init.
type InitOptions struct {
	Force bool
}

// Init writes a starter config file at the main worktree root and returns its path.
func Init(ctx context.Context, git RootFinder, fs filesystem.Filesystem, opts InitOptions) (string, error) {
	root, err := git.MainWorktreeRoot(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrNotARepository, err)
	}

	path := filepath.Join(root, FileName)
	if fs.Exists(path) && !opts.Force {
		return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	content, err := Template()
	if err != nil {
		return "", err
	}
	if err := fs.WriteFile(path, content); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

// Template renders the config written by Init.
func Template() ([]byte, error) {
	cfg := Default()
	cfg.RootDir = InitRootDir

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return append(content, '\n'), nil
}
