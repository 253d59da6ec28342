package cache

// Config holds the per-namespace default TTLs.
type Config struct {
	// LibraryTTLSeconds is the lifetime of cached library scans.
	LibraryTTLSeconds int `mapstructure:"library_ttl_seconds" default:"300"`
	// CatalogTTLSeconds is the lifetime of cached catalog fetches.
	CatalogTTLSeconds int `mapstructure:"catalog_ttl_seconds" default:"60"`
}
