// Package iocache persists computed breakdowns and score history.
package iocache

import (
	"sync"

	"github.com/huangsam/spacecap/internal/contract"
)

// CacheStoreManager manages the breakdown cache and the history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	breakdown    contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetBreakdownStore returns the breakdown CacheStore.
func (mgr *CacheStoreManager) GetBreakdownStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.breakdown
}

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
