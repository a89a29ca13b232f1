// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/chatkit/core/config"
//
//	type SessionConfig struct {
//		TTL        time.Duration `env:"SESSION_TTL" envDefault:"15m"`
//		MaxHistory int           `env:"SESSION_MAX_HISTORY" envDefault:"50"`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 SessionConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 SessionConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently, so the session, storage, and
// cache configurations can each be loaded where they are consumed.
package config
