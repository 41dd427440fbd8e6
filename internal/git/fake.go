package git

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Git used by tests. Exported fields may be set before
// use; operations mutate them as a repository would.
type Fake struct {
	mu sync.Mutex

	NotARepo       bool
	Root           string
	MainRoot       string
	Current        string
	Default        string
	Worktrees      []Worktree
	Branches       []string
	RemoteBranches []string

	// Remotes maps remote names to their URLs.
	Remotes map[string]string

	// Merged lists branches that DeleteBranch may remove without force.
	Merged map[string]bool

	// Ignored lists paths, relative to a worktree, that IsIgnored reports as ignored.
	Ignored map[string]bool

	// CreateErr, when set, is returned by both create operations.
	CreateErr error

	Created         []Worktree
	Removed         []string
	DeletedBranches []string
}

// NewFake returns a Fake repository rooted at root with a main worktree on
// branch "main".
func NewFake(root string) *Fake {
	return &Fake{
		Root:      root,
		Current:   "main",
		Default:   "main",
		Worktrees: []Worktree{{Path: root, Branch: "main", Head: fakeHead(0), IsMain: true}},
		Branches:  []string{"main"},
		Remotes:   map[string]string{"origin": "git@example.com:repo.git"},
		Merged:    make(map[string]bool),
		Ignored:   make(map[string]bool),
	}
}

func (f *Fake) notARepo() error {
	return &Error{Code: CodeNotARepo, Message: "Not inside a git repository"}
}

func (f *Fake) IsRepository(ctx context.Context) (bool, error) {
	return !f.NotARepo, nil
}

func (f *Fake) RepositoryRoot(ctx context.Context) (string, error) {
	if f.NotARepo {
		return "", f.notARepo()
	}
	return f.Root, nil
}

func (f *Fake) MainWorktreeRoot(ctx context.Context) (string, error) {
	if f.NotARepo {
		return "", f.notARepo()
	}
	if f.MainRoot != "" {
		return f.MainRoot, nil
	}
	return f.Root, nil
}

func (f *Fake) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotARepo {
		return nil, f.notARepo()
	}
	return append([]Worktree(nil), f.Worktrees...), nil
}

func (f *Fake) ListBranches(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotARepo {
		return nil, f.notARepo()
	}
	return append([]string(nil), f.Branches...), nil
}

func (f *Fake) ListRemoteBranches(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotARepo {
		return nil, f.notARepo()
	}
	return append([]string(nil), f.RemoteBranches...), nil
}

func (f *Fake) BranchExists(ctx context.Context, branch string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasBranchLocked(branch), nil
}

func (f *Fake) CurrentBranch(ctx context.Context) (string, error) {
	if f.NotARepo {
		return "", f.notARepo()
	}
	return f.Current, nil
}

func (f *Fake) DefaultBranch(ctx context.Context) (string, error) {
	if f.NotARepo {
		return "", f.notARepo()
	}
	return f.Default, nil
}

func (f *Fake) CreateWorktree(ctx context.Context, branch, path, base string) (*Worktree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkCreateLocked(branch, path); err != nil {
		return nil, err
	}
	if base != "" && !f.hasBranchLocked(base) {
		return nil, &Error{Code: CodeBranchNotFound, Message: fmt.Sprintf("invalid reference: %s", base)}
	}
	return f.addLocked(branch, path), nil
}

func (f *Fake) CreateWorktreeFromRemote(ctx context.Context, branch, path, remote string) (*Worktree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkCreateLocked(branch, path); err != nil {
		return nil, err
	}
	if !contains(f.RemoteBranches, branch) {
		return nil, &Error{Code: CodeBranchNotFound, Message: fmt.Sprintf("invalid reference: %s/%s", remote, branch)}
	}
	return f.addLocked(branch, path), nil
}

func (f *Fake) CheckoutWorktree(ctx context.Context, branch, path string) (*Worktree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotARepo {
		return nil, f.notARepo()
	}
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	if !f.hasBranchLocked(branch) {
		return nil, &Error{Code: CodeBranchNotFound, Message: fmt.Sprintf("invalid reference: %s", branch)}
	}
	for _, wt := range f.Worktrees {
		if wt.Branch == branch {
			return nil, &Error{Code: CodeWorktreeExists, Message: fmt.Sprintf("'%s' is already checked out at '%s'", branch, wt.Path)}
		}
		if wt.Path == path {
			return nil, &Error{Code: CodeWorktreeExists, Message: fmt.Sprintf("'%s' already exists", path)}
		}
	}
	wt := Worktree{Path: path, Branch: branch, Head: fakeHead(len(f.Worktrees))}
	f.Worktrees = append(f.Worktrees, wt)
	f.Created = append(f.Created, wt)
	return &wt, nil
}

func (f *Fake) RemoveWorktree(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, wt := range f.Worktrees {
		if wt.Path == path {
			f.Worktrees = append(f.Worktrees[:i], f.Worktrees[i+1:]...)
			f.Removed = append(f.Removed, path)
			return nil
		}
	}
	return &Error{Code: CodeUnknown, Message: fmt.Sprintf("Worktree not found at %s", path)}
}

func (f *Fake) DeleteBranch(ctx context.Context, branch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasBranchLocked(branch) {
		return &Error{Code: CodeBranchNotFound, Message: fmt.Sprintf("Branch %q not found", branch)}
	}
	if !f.Merged[branch] {
		return &Error{Code: CodeBranchNotMerged, Message: fmt.Sprintf("Branch %q is not fully merged", branch)}
	}
	f.deleteLocked(branch)
	return nil
}

func (f *Fake) DeleteBranchForce(ctx context.Context, branch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasBranchLocked(branch) {
		return &Error{Code: CodeBranchNotFound, Message: fmt.Sprintf("Branch %q not found", branch)}
	}
	f.deleteLocked(branch)
	return nil
}

func (f *Fake) RemoteURL(ctx context.Context, remote string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NotARepo {
		return "", f.notARepo()
	}
	return f.Remotes[remote], nil
}

func (f *Fake) IsIgnored(ctx context.Context, dir, relativePath string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Ignored[relativePath], nil
}

func (f *Fake) checkCreateLocked(branch, path string) error {
	if f.NotARepo {
		return f.notARepo()
	}
	if f.CreateErr != nil {
		return f.CreateErr
	}
	if f.hasBranchLocked(branch) {
		return &Error{Code: CodeBranchExists, Message: fmt.Sprintf("a branch named '%s' already exists", branch)}
	}
	for _, wt := range f.Worktrees {
		if wt.Path == path {
			return &Error{Code: CodeWorktreeExists, Message: fmt.Sprintf("'%s' already exists", path)}
		}
	}
	return nil
}

func (f *Fake) addLocked(branch, path string) *Worktree {
	wt := Worktree{Path: path, Branch: branch, Head: fakeHead(len(f.Worktrees))}
	f.Worktrees = append(f.Worktrees, wt)
	f.Branches = append(f.Branches, branch)
	f.Created = append(f.Created, wt)
	return &wt
}

func (f *Fake) deleteLocked(branch string) {
	for i, b := range f.Branches {
		if b == branch {
			f.Branches = append(f.Branches[:i], f.Branches[i+1:]...)
			break
		}
	}
	f.DeletedBranches = append(f.DeletedBranches, branch)
}

func (f *Fake) hasBranchLocked(branch string) bool {
	if contains(f.Branches, branch) {
		return true
	}
	for _, wt := range f.Worktrees {
		if wt.Branch == branch {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func fakeHead(n int) string {
	return fmt.Sprintf("%040x", n+1)
}
