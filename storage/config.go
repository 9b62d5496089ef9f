package storage

import (
	"os"

	"github.com/siri1404/OSPSD-Spring-26/validation"
)

// Provider constants for supported storage backends.
const (
	ProviderGCS   = "gcs"
	ProviderS3    = "s3"
	ProviderLocal = "local"
)

// Default configuration values.
const (
	DefaultProvider = ProviderGCS
	DefaultBasePath = "/tmp/storage"
	DefaultRegion   = "us-east-1"
)

// Environment variable fallbacks for GCS settings.
const (
	EnvGCSBucket      = "GCS_BUCKET_NAME"
	EnvGCPProject     = "GOOGLE_CLOUD_PROJECT"
	EnvGCPCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvGCPServiceKey  = "GCP_SERVICE_KEY"
)

// Config holds core storage configuration.
type Config struct {
	// Provider selects the storage backend: "gcs", "s3" or "local".
	Provider string `mapstructure:"provider" json:"provider"`

	// Bucket is the target bucket name (gcs, s3).
	Bucket string `mapstructure:"bucket" json:"bucket"`

	// ProjectID is the owning GCP project (gcs).
	ProjectID string `mapstructure:"project_id" json:"project_id"`

	// CredentialsPath is the path to a service-account key file (gcs).
	CredentialsPath string `mapstructure:"credentials_path" json:"credentials_path"`

	// BasePath is the root directory for local storage.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// Region is the AWS region for S3.
	Region string `mapstructure:"region" json:"region"`

	// Endpoint is a custom S3-compatible endpoint (e.g. MinIO).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`

	// AccessKey is the AWS access key ID.
	AccessKey string `mapstructure:"access_key" json:"access_key"`

	// SecretKey is the AWS secret access key.
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`

	// Enabled controls whether the storage component is active.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// ApplyDefaults fills in zero-valued fields with defaults and environment
// fallbacks. Explicit values always win over environment variables.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Bucket == "" {
		c.Bucket = os.Getenv(EnvGCSBucket)
	}
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv(EnvGCPProject)
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = os.Getenv(EnvGCPCredentials)
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks that the configuration is valid for the selected provider.
func (c *Config) Validate() error {
	v := validation.New()
	v.Required("provider", c.Provider)

	switch c.Provider {
	case ProviderGCS:
		// Bucket resolution is deliberately NOT validated here: the GCS
		// backend is lazily initialized and reports a missing bucket as a
		// configuration error on first operation, before any network call.
	case ProviderS3:
		v.Required("bucket", c.Bucket)
		v.Required("region", c.Region)
	case ProviderLocal:
		v.Required("base_path", c.BasePath)
	default:
		// Custom providers registered via RegisterFactory validate their
		// own configuration at construction time.
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// GetBucket returns the bucket name.
func (c *Config) GetBucket() string { return c.Bucket }
