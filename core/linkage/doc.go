// Package linkage contains the shared matching primitives of the
// reconciliation engine: the catalog entry model, the O(1) lookup index,
// and the ordered matcher strategies.
//
// Three independently evolving sources (the file store, the catalog, and
// per-tag hardware state) describe the same content through different,
// sometimes-absent keys. This package defines how a candidate
// (a content file or a device tag) resolves to at most one catalog entry:
// an explicit list of pure matcher functions evaluated in priority order,
// with the first non-nil result used. Matching never mutates the catalog.
package linkage
