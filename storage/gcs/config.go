package gcs

import (
	"os"

	"github.com/siri1404/OSPSD-Spring-26/storage"
)

// Config holds Google Cloud Storage settings.
type Config struct {
	// Bucket is the target bucket name. Resolution is deferred to first
	// use: a missing bucket surfaces as a configuration error from the
	// first operation, not from construction.
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// ProjectID is the owning GCP project.
	ProjectID string `mapstructure:"project_id" json:"project_id"`

	// CredentialsPath points at a service-account key file. When set it
	// takes precedence over ServiceKey, which is ignored.
	CredentialsPath string `mapstructure:"credentials_path" json:"credentials_path"`

	// ServiceKey is service-account key material, either base64-encoded
	// or raw JSON. When empty and CredentialsPath is also empty, ambient
	// application default credentials are used.
	ServiceKey string `mapstructure:"service_key" json:"-"`
}

// ApplyDefaults fills unset fields from the conventional environment
// variables. Explicit values always win.
func (c *Config) ApplyDefaults() {
	if c.Bucket == "" {
		c.Bucket = os.Getenv(storage.EnvGCSBucket)
	}
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv(storage.EnvGCPProject)
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = os.Getenv(storage.EnvGCPCredentials)
	}
	if c.ServiceKey == "" {
		c.ServiceKey = os.Getenv(storage.EnvGCPServiceKey)
	}
}

// FromStorageConfig derives a GCS config from the core storage config.
func FromStorageConfig(cfg *storage.Config) *Config {
	return &Config{
		Bucket:          cfg.Bucket,
		ProjectID:       cfg.ProjectID,
		CredentialsPath: cfg.CredentialsPath,
	}
}
