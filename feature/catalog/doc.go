// Package catalog manages the user content catalog (tonies.custom.json).
//
// Reads go through the device API and are cached with a short TTL.
// Mutations operate on the on-disk file under the device config volume:
// every save keeps a timestamped local backup, optionally uploads the
// previous content to object storage, writes via atomic replace, and then
// asks the device to reload its catalog.
package catalog
