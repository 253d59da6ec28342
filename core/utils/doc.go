// Package utils provides small shared helpers: the pagination window used
// by every collection endpoint, and the atomic file replacement used for
// catalog and tag-state writes.
package utils
