// Package volumes defines the filesystem layout of the shared data volume
// mounted from the TeddyCloud instance. Every path the service touches is
// derived from one configured data root.
package volumes
