// Package config loads server configuration from a config file and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Trust  TrustConfig  `mapstructure:"trust"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// TrustConfig holds signature verification settings
type TrustConfig struct {
	// PEMPath points to a PEM bundle of trusted root certificates for the
	// verify endpoint. Empty disables chain validation.
	PEMPath string `mapstructure:"pem_path"`
}

// Load reads configuration from the given file (optional) and from
// environment variables with the INVOICE_PARSER_ prefix. Environment
// variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICE_PARSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.debug", false)
	v.SetDefault("trust.pem_path", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
