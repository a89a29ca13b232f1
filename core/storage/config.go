package storage

// Config holds storage façade configuration, loadable from the environment
// via core/config.
type Config struct {
	// RedisEnabled selects the durable Redis backend as the preferred store.
	// When false the in-memory adapter is the configured primary and the
	// fallback flag is never raised.
	RedisEnabled bool `env:"STORAGE_REDIS_ENABLED" envDefault:"false"`
	// KeyPrefix namespaces all session keys in the durable backend.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"chatkit:session:"`
}
