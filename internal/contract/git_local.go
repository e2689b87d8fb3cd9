package contract

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"iter"
	"os/exec"
	"path/filepath"
	"strings"
)

// AuthorDateFormat is the git date style requested for author dates.
// It renders as "2006-01-02 15:04:05 -0700".
const AuthorDateFormat = "iso"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// WorkTree maps a stored ".git" path onto the working tree that owns it.
func WorkTree(repoPath string) string {
	cleaned := filepath.Clean(repoPath)
	if filepath.Base(cleaned) == ".git" {
		return filepath.Dir(cleaned)
	}
	return cleaned
}

func (c *LocalGitClient) command(ctx context.Context, repoPath string, args ...string) *exec.Cmd {
	fullArgs := append([]string{"-C", WorkTree(repoPath)}, args...)
	return exec.CommandContext(ctx, "git", fullArgs...)
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	out, err := c.command(ctx, repoPath, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, NewGitError(repoPath, args, exitErr, string(exitErr.Stderr))
	} else if err != nil {
		return nil, NewGitError(repoPath, args, fmt.Errorf("%w. Ensure Git is installed and available on your PATH", err), "")
	}
	return out, nil
}

// AuthorDates implements the GitClient interface. The log is streamed from
// the git process line by line; stopping the iteration early kills the process.
func (c *LocalGitClient) AuthorDates(ctx context.Context, repoPath string, author string) iter.Seq2[string, error] {
	args := []string{
		"log",
		"--all",
		"--author=" + author,
		"--pretty=format:%ad",
		"--date=" + AuthorDateFormat,
	}
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		cmd := c.command(ctx, repoPath, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield("", NewGitError(repoPath, args, err, ""))
			return
		}
		if err := cmd.Start(); err != nil {
			yield("", NewGitError(repoPath, args, err, ""))
			return
		}

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line, nil) {
				cancel()
				_ = cmd.Wait()
				return
			}
		}
		scanErr := scanner.Err()
		waitErr := cmd.Wait()
		switch {
		case scanErr != nil:
			yield("", NewGitError(repoPath, args, scanErr, stderr.String()))
		case waitErr != nil:
			yield("", NewGitError(repoPath, args, waitErr, stderr.String()))
		}
	}
}

// GetRefsDigest implements the GitClient interface.
func (c *LocalGitClient) GetRefsDigest(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "for-each-ref", "--format=%(objectname) %(refname)")
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(out)
	return fmt.Sprintf("%x", sum), nil
}
