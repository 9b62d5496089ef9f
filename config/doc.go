// Package config provides configuration loading and validation for cloudstore
// applications.
//
// It uses Viper to load configuration from files and environment variables,
// with .env support via godotenv and environment-specific overrides.
//
// # Usage
//
//	var cfg MyConfig
//	if err := config.LoadConfig("my-service", &cfg); err != nil {
//	    return err
//	}
//
// Environment variables override file values; underscore-separated names map
// onto nested keys (e.g. STORAGE_BUCKET binds to storage.bucket).
package config
