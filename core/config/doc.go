// Package config provides configuration management for the Tag Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags on the partial
// configuration structs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application
// settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - TeddyCloud: device API URL and timeouts
//   - Volumes: data volume layout (config, library, content paths)
//   - Cache: per-namespace TTLs
//   - Storage: S3/MinIO backup credentials and bucket settings
//   - Log: logging level and format
//   - Database: optional MySQL link-history connection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
