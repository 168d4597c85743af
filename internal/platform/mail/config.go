// Package mail provides the SMTP transactional mail sender.
package mail

import "os"

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LoadConfig reads the SMTP settings from environment variables.
// An empty host leaves the sender in log-only mode.
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return cfg
}

// Configured reports whether the settings are sufficient to send mail.
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}
