// Package worktree implements the wt workflows: creating a worktree and
// working out what to copy into it and which hooks to run, listing
// worktrees, and removing them. Every operation receives its git and
// filesystem capabilities explicitly and returns notifications instead of
// printing.
package worktree
