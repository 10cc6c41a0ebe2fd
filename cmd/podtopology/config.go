package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/numtide/podtopology/pkg/topology"
	"github.com/numtide/podtopology/pkg/version"
)

// Config holds the CLI configuration.
type Config struct {
	Namespace    string        `mapstructure:"namespace"`
	DefaultUses  string        `mapstructure:"default_uses"`
	UseTestImage bool          `mapstructure:"use_test_image"`
	Version      VersionConfig `mapstructure:"version"`
}

// VersionConfig configures the image version lookup.
type VersionConfig struct {
	// Runtime is the runtime version to deploy. Empty deploys the fallback.
	Runtime string `mapstructure:"runtime"`
	// RegistryURL lists the published image tags.
	RegistryURL string `mapstructure:"registry_url"`
	// Timeout bounds the registry lookup.
	Timeout time.Duration `mapstructure:"timeout"`
	// Lookup disables the registry call when false; Runtime is then used as is.
	Lookup bool `mapstructure:"lookup"`
}

// Options converts the configuration into resolution options.
func (c *Config) Options() topology.Options {
	opts := topology.Options{
		Namespace:    c.Namespace,
		DefaultUses:  c.DefaultUses,
		UseTestImage: c.UseTestImage,
	}
	switch {
	case c.Version.Runtime == "":
	case c.Version.Lookup:
		l := version.NewRegistryLookup(c.Version.RegistryURL, c.Version.Runtime)
		if c.Version.Timeout > 0 {
			l.Timeout = c.Version.Timeout
		}
		opts.Lookup = l
	default:
		opts.Lookup = version.Static(c.Version.Runtime)
	}
	return opts
}

// flag name -> config key
var configFlags = map[string]string{
	"namespace":       "namespace",
	"default-uses":    "default_uses",
	"use-test-image":  "use_test_image",
	"runtime-version": "version.runtime",
	"registry-url":    "version.registry_url",
	"version-timeout": "version.timeout",
	"version-lookup":  "version.lookup",
}

func bindConfigFlags(fs *pflag.FlagSet) {
	fs.String("namespace", topology.DefaultNamespace, "namespace for Pods that do not set one")
	fs.String("default-uses", topology.DefaultUses, "executor reference served by the stock image")
	fs.Bool("use-test-image", false, "deploy the test image instead of a released one")
	fs.String("runtime-version", "", "runtime version to deploy")
	fs.String("registry-url", version.DefaultRegistryURL, "URL listing the published image tags")
	fs.Duration("version-timeout", version.DefaultTimeout, "timeout of the image version lookup")
	fs.Bool("version-lookup", true, "check the runtime version against the registry")
}

// LoadConfig reads configuration from defaults, an optional file, the
// environment (PODTOPOLOGY_ prefix) and explicitly set flags, in increasing
// order of precedence.
func LoadConfig(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("namespace", topology.DefaultNamespace)
	v.SetDefault("default_uses", topology.DefaultUses)
	v.SetDefault("use_test_image", false)
	v.SetDefault("version.runtime", "")
	v.SetDefault("version.registry_url", version.DefaultRegistryURL)
	v.SetDefault("version.timeout", version.DefaultTimeout.String())
	v.SetDefault("version.lookup", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PODTOPOLOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flagName, key := range configFlags {
			f := fs.Lookup(flagName)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
