// This file defines the configuration structure for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port        int    `mapstructure:"port"`
	APIURL      string `mapstructure:"api_url"`
	Environment string `mapstructure:"environment"`
	Session     struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"session"`
}

// IsProduction reports whether the server runs in production mode,
// which turns on the Secure flag for session cookies.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
//
// Environment variables with a "BOOKSTORE_" prefix override file values,
// e.g. BOOKSTORE_API_URL overrides the `api_url` key.
//
// The backend origin (api_url) and the session secret have no usable
// defaults: a missing value is a configuration error and the caller is
// expected to treat it as fatal at startup.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOOKSTORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("environment", "development")
	viper.SetDefault("api_url", "")
	viper.SetDefault("session.secret", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; env vars and defaults still apply
		} else {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.APIURL == "" {
		return nil, fmt.Errorf("api_url is not configured (set it in config.yml or via BOOKSTORE_API_URL)")
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")

	if config.Session.Secret == "" {
		return nil, fmt.Errorf("session.secret is not configured (set it in config.yml or via BOOKSTORE_SESSION_SECRET)")
	}

	return &config, nil
}
