// Package config provides configuration types for coursedesk.
//
// All data lives behind the platform's HTTP API; the only local
// concerns a config file carries are where that API is, where the
// session and activity files live, and how the tool renders output.
package config

import (
	"os"
	"path/filepath"
)

// Config is the top-level coursedesk configuration.
type Config struct {
	// API configures the connection to the platform API server.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Session configures the durable session record.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// Activity configures the local activity log.
	Activity ActivityConfig `yaml:"activity" mapstructure:"activity"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Output is the default rendering format for listings.
	// Valid values: "table", "json", "yaml". Defaults to "table".
	Output string `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=table json yaml"`
}

// APIConfig configures the outbound API connection.
type APIConfig struct {
	// URL is the base URL of the platform API (e.g.
	// "https://api.example.com/api").
	URL string `yaml:"url" mapstructure:"url" validate:"omitempty,url"`

	// Timeout is the per-request timeout (e.g. "30s", "1m").
	// Defaults to "30s" if not specified.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`
}

// SessionConfig configures the durable session record.
type SessionConfig struct {
	// File is the path of the session file.
	// Defaults to ~/.coursedesk/session.json.
	File string `yaml:"file" mapstructure:"file"`
}

// ActivityConfig configures the local activity log.
type ActivityConfig struct {
	// File is the path of the sqlite activity database.
	// Defaults to ~/.coursedesk/activity.db.
	File string `yaml:"file" mapstructure:"file"`

	// RetentionDays is the number of days entries are kept.
	// Defaults to 7.
	RetentionDays int `yaml:"retention_days" mapstructure:"retention_days" validate:"omitempty,min=1"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	if c.API.URL == "" {
		c.API.URL = "http://localhost:5000/api"
	}
	if c.API.Timeout == "" {
		c.API.Timeout = "30s"
	}

	home, _ := os.UserHomeDir()
	if c.Session.File == "" {
		c.Session.File = filepath.Join(home, ".coursedesk", "session.json")
	}
	if c.Activity.File == "" {
		c.Activity.File = filepath.Join(home, ".coursedesk", "activity.db")
	}
	if c.Activity.RetentionDays == 0 {
		c.Activity.RetentionDays = 7
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Output == "" {
		c.Output = "table"
	}
}
