package helpers

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SetupTestGitRepo initializes a git repository in a temporary project tree
// holding files, with everything committed.
// Returns the repository, its worktree, and the absolute path to the project.
func SetupTestGitRepo(t *testing.T, files map[string]string) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	root := WriteTree(t, files)

	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("failed to stage files: %v", err)
	}
	_, err = w.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repo, w, root
}
