package cloudinary

import "os"

// Environment variable keys for the Cloudinary credentials.
const (
	EnvKeyCloudName = "CLOUDINARY_CLOUD_NAME"
	EnvKeyAPIKey    = "CLOUDINARY_API_KEY"
	EnvKeyAPISecret = "CLOUDINARY_API_SECRET"
)

// Config holds the Cloudinary account credentials used to sign
// direct browser uploads.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// LoadConfig reads the Cloudinary credentials from environment variables.
func LoadConfig() Config {
	return Config{
		CloudName: os.Getenv(EnvKeyCloudName),
		APIKey:    os.Getenv(EnvKeyAPIKey),
		APISecret: os.Getenv(EnvKeyAPISecret),
	}
}

// Configured reports whether all credentials required for signing are present.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}
