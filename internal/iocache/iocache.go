// Package iocache caches raw commit records so unchanged repositories need no git call.
package iocache

import (
	"sync"

	"github.com/huangsam/gitlocalstats/internal/contract"
)

// CacheStoreManager holds the process-wide record store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	records      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetRecordStore returns the record CacheStore, or nil when caching was never initialized.
func (mgr *CacheStoreManager) GetRecordStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
