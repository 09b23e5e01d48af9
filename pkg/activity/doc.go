// Package activity tracks per-session last-activity timestamps.
//
// The Store interface persists one timestamp per session token. Two
// implementations are provided: MemoryStore for single-process deployments
// and tests, and RedisStore for sharing activity across processes, with
// Redis TTLs expiring abandoned sessions.
//
// Recorder decouples request handling from timestamp writes: Record is a
// non-blocking enqueue with per-token deduplication, and a background
// worker persists touches to the store. The queue is drained on Close so no
// recorded activity is lost during shutdown.
//
//	store := activity.NewMemoryStore(48*time.Hour, 10*time.Minute)
//	defer store.Close()
//
//	recorder := activity.NewRecorder(store)
//	defer recorder.Close()
//
//	// On each authenticated request:
//	recorder.Record(sessionToken)
package activity
