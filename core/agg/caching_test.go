package agg

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/huangsam/gitlocalstats/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCacheStore for testing (alias for iocache.MockCacheStore)
type MockCacheStore = iocache.MockCacheStore

var cachedRecords = []string{"2024-06-12 10:00:00 +0000", "2024-06-11 10:00:00 +0000"}

func TestCheckCacheHit(t *testing.T) {
	data, _ := json.Marshal(cachedRecords)
	tests := []struct {
		name    string
		data    []byte
		version int
		ts      int64
		err     error
		wantHit bool
	}{
		{"hit", data, currentCacheVersion, testNow.Unix(), nil, true},
		{"version mismatch", data, currentCacheVersion + 1, testNow.Unix(), nil, false},
		{"stale", data, currentCacheVersion, testNow.Add(-8 * 24 * time.Hour).Unix(), nil, false},
		{"store error", nil, 0, 0, errors.New("not found"), false},
		{"corrupt payload", []byte("{"), currentCacheVersion, testNow.Unix(), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockCacheStore{}
			store.On("Get", "key").Return(tt.data, tt.version, tt.ts, tt.err)

			records, hit := checkCacheHit(store, "key", testNow)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, cachedRecords, records)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestGenerateCacheKey(t *testing.T) {
	a := generateCacheKey("/r/.git", author, "d1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, generateCacheKey("/r", author, "d1"), "a stored .git path keys like its work tree")
	assert.NotEqual(t, a, generateCacheKey("/r", author, "d2"))
	assert.NotEqual(t, a, generateCacheKey("/r", "other@example.com", "d1"))
}

func TestAggregate_CacheHit(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRefsDigest", mock.Anything, "/r").Return("digest", nil)

	data, _ := json.Marshal(cachedRecords)
	store := &MockCacheStore{}
	store.On("Get", generateCacheKey("/r", author, "digest")).Return(data, currentCacheVersion, testNow.Unix(), nil)

	out, err := Aggregate(context.Background(), testOptions(), client, store, []string{"/r"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0, 0, 0, 0, 0}, out.Table.Values())
	assert.True(t, out.Repositories[0].CacheHit)
	client.AssertNotCalled(t, "AuthorDates", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAggregate_CacheMissStores(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRefsDigest", mock.Anything, "/r").Return("digest", nil)
	client.On("AuthorDates", mock.Anything, "/r", author).Return(cachedRecords, nil).Once()

	key := generateCacheKey("/r", author, "digest")
	data, _ := json.Marshal(cachedRecords)
	store := &MockCacheStore{}
	store.On("Get", key).Return([]byte(nil), 0, int64(0), errors.New("miss"))
	store.On("Set", key, data, currentCacheVersion, testNow.Unix()).Return(nil).Once()

	out, err := Aggregate(context.Background(), testOptions(), client, store, []string{"/r"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Table.Total())
	assert.False(t, out.Repositories[0].CacheHit)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAggregate_CacheSkipsFailedReads(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRefsDigest", mock.Anything, "/r").Return("digest", nil)
	client.On("AuthorDates", mock.Anything, "/r", author).Return(cachedRecords[:1], errors.New("broken pipe"))

	store := &MockCacheStore{}
	store.On("Get", mock.Anything).Return([]byte(nil), 0, int64(0), errors.New("miss"))

	out, err := Aggregate(context.Background(), testOptions(), client, store, []string{"/r"})
	require.NoError(t, err)
	assert.Zero(t, out.Table.Total())
	assert.True(t, out.Repositories[0].Failed())
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAggregate_DigestFailureReadsLive(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRefsDigest", mock.Anything, "/r").Return("", errors.New("no refs"))
	client.On("AuthorDates", mock.Anything, "/r", author).Return(nil, errors.New("not a repository"))

	store := &MockCacheStore{}
	out, err := Aggregate(context.Background(), testOptions(), client, store, []string{"/r"})
	require.NoError(t, err)
	assert.True(t, out.Repositories[0].Failed())
	store.AssertNotCalled(t, "Get", mock.Anything)
}
