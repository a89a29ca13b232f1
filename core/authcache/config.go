package authcache

import "time"

// Config sizes each cache namespace independently. All values can be loaded
// from the environment via core/config.
type Config struct {
	TokenCacheSize int           `env:"AUTH_TOKEN_CACHE_SIZE" envDefault:"1000"`
	TokenCacheTTL  time.Duration `env:"AUTH_TOKEN_CACHE_TTL" envDefault:"5m"`
	UserCacheSize  int           `env:"AUTH_USER_CACHE_SIZE" envDefault:"500"`
	UserCacheTTL   time.Duration `env:"AUTH_USER_CACHE_TTL" envDefault:"10m"`
	EmailIndexSize int           `env:"AUTH_EMAIL_INDEX_SIZE" envDefault:"500"`
	EmailIndexTTL  time.Duration `env:"AUTH_EMAIL_INDEX_TTL" envDefault:"10m"`
}
