// Package contract provides interfaces and shared utilities for the gitlocalstats internals.
package contract

import (
	"context"
	"iter"

	"github.com/huangsam/gitlocalstats/schema"
)

// GitClient defines the git operations needed to collect contribution records.
// This allows the aggregation logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// AuthorDates lazily yields the raw author date of every commit whose
	// author matches the given identity. An extraction failure is yielded
	// once, as the last element of the sequence.
	AuthorDates(ctx context.Context, repoPath string, author string) iter.Seq2[string, error]

	// GetRefsDigest returns a digest over all refs of the repository.
	// It changes whenever any branch or tag moves.
	GetRefsDigest(ctx context.Context, repoPath string) (string, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetRecordStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
