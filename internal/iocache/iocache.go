package iocache

import (
	"sync"

	"github.com/huangsam/triage/internal/contract"
)

// CacheStoreManager manages the index and analysis store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	index        contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetIndexStore returns the index CacheStore.
func (mgr *CacheStoreManager) GetIndexStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.index
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
