// Package vthumb prefetches and caches decoded video-frame thumbnails.
//
// Decoding a movie frame is expensive, so thumbnails are fetched by a
// cooperative background pass instead of on paint: StartPrefetch builds a
// deduplicated worklist from every MOVIE clip in both open documents, sorted
// so each resource is opened once and seeks run forward, and Step processes
// one entry per call before yielding back to the host loop. At most one
// pass is ever active.
//
// Any mutation that invalidates the worklist requests a restart; the running
// pass notices between entries, rebuilds the worklist from the now-current
// documents, and carries on; already-cached entries make the rerun cheap.
// An explicit cancel stops the pass without restarting. Decode failures
// degrade to a rendered placeholder tile and are never fatal.
package vthumb
