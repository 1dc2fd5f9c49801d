package constant

import "time"

// Cache configuration constants
const (
	// CacheTTL bounds how long the activation record stays cached without a write
	CacheTTL = 5 * time.Minute
	// CacheNumCounters is the number of keys to track frequency
	CacheNumCounters = 1e3
	// CacheMaxCost is the maximum cost of cache
	CacheMaxCost = 1 << 10
	// CacheBufferItems is the number of keys per Get buffer
	CacheBufferItems = 64
	// ActivationRecordCacheKey is the single key the activation record is cached under
	ActivationRecordCacheKey = "activation_record"
)
