// Package config loads settings for the optional HTTP service from the
// environment (UNIQUE_* prefix) and an optional file, via
// github.com/spf13/viper. The cmd/unique CLI itself stays flag-driven and
// does not use this package.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "UNIQUE"

// Config wraps a viper instance with the defaults the HTTP service needs.
type Config struct {
	v *viper.Viper
}

// Options seeds New with defaults before environment/file values are layered
// on top.
type Options struct {
	// ConfigFile, if non-empty, is read in addition to the environment
	// (TOML/YAML/JSON, detected by extension). Missing is not an error.
	ConfigFile string
}

// New builds a Config with the service's defaults: debug=false, port=8080,
// default-conflict-limit=1000 (matching cmd/unique's own flag default).
func New(opts Options) (*Config, error) {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("port", 8080)
	v.SetDefault("default-conflict-limit", 1000)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
