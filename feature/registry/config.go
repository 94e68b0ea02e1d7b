package registry

import "time"

// Config holds registry settings.
type Config struct {
	// CacheTTLSeconds is how long a listing is served from memory. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
}

// CacheTTL returns the listing cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
