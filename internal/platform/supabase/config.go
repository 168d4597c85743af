// Package supabase provides a client for the Supabase authentication API.
package supabase

import (
	"os"
	"time"
)

// Config holds configuration for the Supabase auth client.
type Config struct {
	BaseURL string        // Project base URL (e.g., "https://xyz.supabase.co")
	AnonKey string        // Public anon key sent as the apikey header
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Supabase configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL: os.Getenv("SUPABASE_URL"),
		AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		Timeout: 10 * time.Second,
	}
}

// Configured reports whether both credentials are present.
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.AnonKey != ""
}
