package config

import "time"

// CacheConfig controls the Redis response cache applied to public
// apartment listings. Listings change rarely compared to how often
// they are browsed, so short TTL caching takes the read load off
// MySQL without risking stale calendars (quotes are never cached).
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment with
// conservative defaults.
func LoadCacheConfig() CacheConfig {
    cfg := CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
    if cfg.TTL <= 0 {
        cfg.TTL = time.Minute
    }
    return cfg
}
