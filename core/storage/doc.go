// Package storage persists session state across process restarts and
// instances through one contract with two interchangeable adapters: an
// in-memory map with per-entry expiry timers, and a durable Redis-backed
// store with JSON serialization and measured ping latency.
//
// # Façade and fallback
//
// The Facade selects an adapter at startup and degrades gracefully at
// runtime: if the configured durable backend fails a probe or any operation,
// the façade logs the failure, flips a fallback flag, and transparently
// replays the operation against the in-memory adapter. Callers never see
// durable-layer errors; they trade cross-instance consistency for
// availability until AttemptReconnection switches back.
//
// The fallback flag distinguishes degradation from choice: it is only raised
// when durable storage was the configured preference.
//
// # Usage
//
//	import (
//		"github.com/dmitrymomot/chatkit/core/storage"
//		redisdb "github.com/dmitrymomot/chatkit/integration/database/redis"
//	)
//
//	client, err := redisdb.Connect(ctx, redisCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store := storage.New(ctx, cfg,
//		storage.NewRedisStore(client, storage.WithKeyPrefix(cfg.KeyPrefix)),
//		storage.WithFacadeLogger(logger),
//	)
//
//	rec, err := store.Get(ctx, "conn-1") // (nil, nil) when absent
//
// Expected absence is a sentinel, not an error: Get returns (nil, nil),
// Has and Delete return false. Errors signal backend failures only.
package storage
