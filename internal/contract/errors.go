package contract

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGitOperationFailed indicates a git command returned an error.
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrMissingAuthor indicates that no author identity was configured.
	ErrMissingAuthor = errors.New("an author email is required")
)

// GitError represents a failure to read from a repository.
type GitError struct {
	RepoPath string
	Args     []string
	Err      error
	Output   string
}

// Error implements the error interface.
func (e *GitError) Error() string {
	op := "git"
	if len(e.Args) > 0 {
		op = "git " + e.Args[0]
	}
	msg := fmt.Sprintf("%s failed in %q", op, e.RepoPath)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *GitError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGitOperationFailed}
	}
	return []error{ErrGitOperationFailed, e.Err}
}

// NewGitError creates a GitError, trimming the captured git output.
func NewGitError(repoPath string, args []string, err error, output string) *GitError {
	return &GitError{
		RepoPath: repoPath,
		Args:     args,
		Err:      err,
		Output:   strings.TrimSpace(output),
	}
}
