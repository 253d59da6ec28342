// Package database handles the optional MySQL connection backing the
// link-history feature.
//
// It wraps GORM to configure the MySQL connection from the application's
// configuration. The connection is strictly optional: when it fails, the
// service starts without link history rather than refusing to run.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
