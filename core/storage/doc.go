// Package storage provides the object storage client used for off-site
// catalog backups.
//
// It wraps the MinIO Go client behind a small interface so both AWS S3 and
// self-hosted MinIO work, and so backup interactions can be mocked in unit
// tests (see core/storage/mocks). The content library itself is never
// stored here; the only objects this service owns are timestamped catalog
// backups.
package storage
