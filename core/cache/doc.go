// Package cache provides the namespaced in-memory TTL cache that keeps
// expensive library scans and catalog fetches bounded.
//
// # Model
//
// Entries live under a composite "namespace:key" and expire lazily: the
// read that discovers an expired entry removes it. There is no background
// sweeper and no eviction by size; the key space is small and stable, so
// unbounded growth is accepted.
//
// # Concurrency
//
// A single coarse mutex serializes map mutation. Value production never
// runs under that lock: Fetch performs the fill through a singleflight
// group so concurrent requests for the same key share one scan, while
// concurrent fills for different keys proceed in parallel. Races between
// plain Set calls resolve last-writer-wins; staleness is bounded by one
// TTL window.
package cache
