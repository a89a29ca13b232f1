package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	// loaded caches parsed configurations by struct type so each type is
	// read from the environment exactly once per process.
	loaded sync.Map
)

// Load populates cfg from environment variables using its `env` struct tags.
// A .env file in the working directory is loaded once, on first use, before
// any parsing. Each configuration type is parsed once and cached; subsequent
// calls for the same type return the cached value.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env files are expected outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if v, ok := loaded.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingFailed, err)
	}

	v, _ := loaded.LoadOrStore(key, *cfg)
	*cfg = v.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use at startup where a broken
// configuration should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
