// Package redis provides production-ready Redis client initialization and
// health checking for the durable session storage backend.
//
// This package wraps the go-redis client with connection validation, retry
// logic, and configuration suited to cloud environments. Connection
// establishment validates the Redis URL format, attempts connection with
// retries, and verifies connectivity with a ping operation before returning
// the client.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// # Usage
//
//	import (
//		"github.com/dmitrymomot/chatkit/core/config"
//		redisdb "github.com/dmitrymomot/chatkit/integration/database/redis"
//	)
//
//	var cfg redisdb.Config
//	config.MustLoad(&cfg)
//
//	client, err := redisdb.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to redis:", err)
//	}
//	defer client.Close()
//
//	check := redisdb.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		log.Println("redis degraded:", err)
//	}
package redis
