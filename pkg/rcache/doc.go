// Package rcache provides the bounded render cache.
//
// Rendered HTML is stored under a component fingerprint and served until the
// entry expires, is evicted, or the fingerprint changes. The cache enforces
// an entry-count bound and a memory bound with LRU eviction, sweeps expired
// entries in the background, and optionally reports hit/miss/eviction
// counters to Prometheus. It is strictly best effort: a full or closed cache
// never fails a render, it just stops saving work.
package rcache
