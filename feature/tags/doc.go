// Package tags reconciles physical proximity tags with the content catalog
// (the tag-centric view) and performs the link write.
//
// Box registrations come from overlay config lines; certificate ids are
// resolved to on-disk content directories by exact match, case-insensitive
// match, single-directory inference, or verbatim fallback. Tag state lives
// in per-tag hardware files the service only reads and, through the one
// link operation, partially updates with an atomic replace.
package tags
