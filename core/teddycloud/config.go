package teddycloud

// Config holds connection settings for the TeddyCloud instance.
type Config struct {
	// URL is the base URL of the TeddyCloud server.
	URL string `mapstructure:"url" default:"http://docker"`
	// APIBase is the API path prefix.
	APIBase string `mapstructure:"api_base" default:"/api"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
