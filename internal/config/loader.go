package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and
// environment variables. If configFile is empty, it searches for
// coursedesk.yaml/.yml in standard locations. A .env file in the
// working directory is loaded first so COURSEDESK_* variables can live
// there during development.
func InitViper(configFile string) {
	_ = godotenv.Load()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file found in any standard location.
		// Set name/type without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by callers).
		viper.SetConfigName("coursedesk")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: COURSEDESK_API_URL
	viper.SetEnvPrefix("COURSEDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a coursedesk config
// file with an explicit YAML extension (.yaml or .yml). This prevents
// Viper from matching the binary "coursedesk" (no extension) in the
// current directory.
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".coursedesk"),
	}
	if runtime.GOOS == "windows" {
		if pd := os.Getenv("ProgramData"); pd != "" {
			paths = append(paths, filepath.Join(pd, "coursedesk"))
		}
	} else {
		paths = append(paths, "/etc/coursedesk")
	}
	return findConfigFileInPaths(paths)
}

// findConfigFileInPaths searches the given directories for
// coursedesk.yaml or .yml. Returns the full path of the first match,
// or empty string if none found.
func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "coursedesk"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable
// support. Example: COURSEDESK_API_URL overrides api.url.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("api.url")
	_ = viper.BindEnv("api.timeout")

	_ = viper.BindEnv("session.file")

	_ = viper.BindEnv("activity.file")
	_ = viper.BindEnv("activity.retention_days")

	_ = viper.BindEnv("log_level")
	_ = viper.BindEnv("output")
}

// LoadConfig reads the configuration file, applies environment
// overrides, sets defaults, validates, and returns the Config.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with env vars only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path to the configuration file that was
// loaded. Returns an empty string if no config file was found.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
