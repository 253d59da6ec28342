// Package history keeps an audit log of link writes in MySQL.
//
// The database is strictly optional: without a connection the feature
// stays unloaded and recording is a no-op.
package history
