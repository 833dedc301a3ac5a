package git

import (
	stderrors "errors"
	"sort"

	"github.com/go-git/go-git/v5"
)

// State summarizes the working tree containing a directory.
type State struct {
	IsRepo  bool
	Clean   bool
	Changed []string // Repository-relative paths with staged, unstaged or untracked changes
}

// Inspect reports the working tree state for dir, searching parent
// directories for the repository. A directory outside any repository is
// reported with IsRepo false and no error.
func Inspect(dir string) (State, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if stderrors.Is(err, git.ErrRepositoryNotExists) {
		return State{}, nil
	}
	if err != nil {
		return State{}, wrapGitError(err, "open", dir)
	}

	w, err := repo.Worktree()
	if err != nil {
		return State{}, wrapGitError(err, "worktree", dir)
	}
	status, err := w.Status()
	if err != nil {
		return State{}, wrapGitError(err, "status", dir)
	}

	st := State{IsRepo: true, Clean: status.IsClean()}
	for p, s := range status {
		if s.Staging != git.Unmodified || s.Worktree != git.Unmodified {
			st.Changed = append(st.Changed, p)
		}
	}
	sort.Strings(st.Changed)
	return st, nil
}

// RequireClean fails when dir is inside a repository with uncommitted
// changes. Directories outside a repository pass.
func RequireClean(dir string) error {
	st, err := Inspect(dir)
	if err != nil {
		return err
	}
	if st.IsRepo && !st.Clean {
		return GitError("working tree has uncommitted changes (use --force to fix anyway)").
			WithContext("path", dir).
			WithContext("changed", len(st.Changed)).
			Build()
	}
	return nil
}
