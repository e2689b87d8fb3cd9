package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/huangsam/gitlocalstats/internal/contract"
)

// currentCacheVersion defines the version of the cached record format
const currentCacheVersion = 1

// cacheTTL is how long a cached record list is trusted
const cacheTTL = 7 * 24 * time.Hour

// cachedAuthorDates serves the raw records of a repository from the store,
// reading and storing them on a miss. Cache failures fall back to a live read.
func cachedAuthorDates(ctx context.Context, opts Options, client contract.GitClient, store contract.CacheStore, repo string) (iter.Seq2[string, error], bool) {
	digest, err := client.GetRefsDigest(ctx, repo)
	if err != nil {
		// The live read reports the failure
		return client.AuthorDates(ctx, repo, opts.Author), false
	}
	key := generateCacheKey(repo, opts.Author, digest)

	if records, ok := checkCacheHit(store, key, opts.Now); ok {
		opts.Metrics.ObserveCacheLookup(true)
		return recordSeq(records), true
	}
	opts.Metrics.ObserveCacheLookup(false)
	return computeAndStore(ctx, opts, client, store, repo, key), false
}

// checkCacheHit attempts to retrieve and validate a cached record list
func checkCacheHit(store contract.CacheStore, key string, now time.Time) ([]string, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || now.Sub(time.Unix(ts, 0)) > cacheTTL {
		return nil, false
	}
	var records []string
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// computeAndStore reads the records live and stores them once the whole
// sequence has been read without error.
func computeAndStore(ctx context.Context, opts Options, client contract.GitClient, store contract.CacheStore, repo string, key string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var records []string
		for raw, err := range client.AuthorDates(ctx, repo, opts.Author) {
			if err != nil {
				yield("", err)
				return
			}
			records = append(records, raw)
			if !yield(raw, nil) {
				return
			}
		}
		if records == nil {
			records = []string{}
		}
		if data, err := json.Marshal(records); err == nil {
			_ = store.Set(key, data, currentCacheVersion, opts.Now.Unix())
		}
	}
}

func recordSeq(records []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// generateCacheKey creates a unique key for the records of one author in one
// repository state
func generateCacheKey(repo, author, refsDigest string) string {
	key := fmt.Sprintf("%s|%s|%s", contract.WorkTree(repo), author, refsDigest)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
