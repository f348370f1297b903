package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache middleware that sits in
// front of the admin dashboard and analytics reads.  When Enabled is false or
// no Redis client is configured, caching is disabled.  KeyStrategy picks the
// request parts that make up the cache key; MaxBodyBytes bounds what is stored.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  The TTL is short because admin
// screens refetch after every mutation.
func LoadCacheConfig() CacheConfig {
    methods := map[string]bool{}
    for _, m := range envList("CACHE_METHODS", "GET") {
        methods[strings.ToUpper(m)] = true
    }
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methods,
        TTL:          envDur("CACHE_TTL", 15*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "villa:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
