package git

import (
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
)

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.NewError(errors.CategoryGit, message)
}

// wrapGitError wraps a go-git failure for op.
func wrapGitError(err error, op, dir string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}
	return errors.WrapError(err, errors.CategoryGit, "git operation failed").
		WithContext("op", op).
		WithContext("path", dir).
		Build()
}
