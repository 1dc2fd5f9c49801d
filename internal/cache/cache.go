package cache

import (
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/dgraph-io/ristretto/v2"
)

// Manager is a read-through cache in front of the persisted activation record.
// Values are cloned on the way in and out so callers never share a record.
type Manager struct {
	cache  *ristretto.Cache[string, *model.ActivationRecord]
	logger log.Logger
}

// New creates a new cache manager
func New(logger log.Logger) (*Manager, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *model.ActivationRecord]{
		NumCounters: constant.CacheNumCounters,
		MaxCost:     constant.CacheMaxCost,
		BufferItems: constant.CacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Manager{
		cache:  cache,
		logger: logger,
	}, nil
}

// Get returns the cached activation record, if any.
func (m *Manager) Get() (*model.ActivationRecord, bool) {
	if rec, found := m.cache.Get(constant.ActivationRecordCacheKey); found && rec != nil {
		return rec.Clone(), true
	}

	return nil, false
}

// Store caches the record with a fixed TTL so the persisted copy is re-read periodically.
func (m *Manager) Store(rec *model.ActivationRecord) {
	if rec == nil {
		m.Invalidate()
		return
	}

	m.cache.SetWithTTL(constant.ActivationRecordCacheKey, rec.Clone(), 1, constant.CacheTTL)
	m.cache.Wait()

	m.logger.Debugf("Cached activation record [activated: %t | status: %s | failures: %d]",
		rec.Activated, rec.Status, rec.FailureCount)
}

// Invalidate drops the cached record.
func (m *Manager) Invalidate() {
	m.cache.Del(constant.ActivationRecordCacheKey)
}

// Close releases the cache's goroutines.
func (m *Manager) Close() {
	m.cache.Close()
}
