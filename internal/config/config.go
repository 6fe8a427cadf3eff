// Package config loads depboot's layered configuration: built-in
// defaults, an optional config file, DEPBOOT_* environment variables,
// and command-line flags, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ift-infra/depboot/internal/env"
)

const (
	// DefaultRepo is the upstream pyHealpix repository.
	DefaultRepo = "https://gitlab.mpcdf.mpg.de/ift/pyHealpix.git"

	// DefaultJobs bounds make's worker pool.
	DefaultJobs = 4

	configName = "config"
	configType = "toml"
	envPrefix  = "DEPBOOT"
)

// Config holds one bootstrap run's settings.
type Config struct {
	Repo         string        `mapstructure:"repo"`
	Ref          string        `mapstructure:"ref"`
	Prefix       string        `mapstructure:"prefix"`
	SplitPrefix  bool          `mapstructure:"split_prefix"`
	Jobs         int           `mapstructure:"jobs"`
	Python       string        `mapstructure:"python"`
	PythonConfig string        `mapstructure:"python_config"`
	WorkRoot     string        `mapstructure:"work_root"`
	Timeout      time.Duration `mapstructure:"timeout"`
	KeepWork     bool          `mapstructure:"keep_work"`
	Verbose      bool          `mapstructure:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Repo:     DefaultRepo,
		Ref:      "HEAD",
		Jobs:     DefaultJobs,
		Python:   "python3",
		WorkRoot: env.WorkRoot(),
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile, when set, is used instead of the default search path.
	ConfigFile string
}

// Load resolves the configuration. A missing config file is not an
// error; a malformed one is.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	defaults := Default()
	v.SetDefault("repo", defaults.Repo)
	v.SetDefault("ref", defaults.Ref)
	v.SetDefault("prefix", defaults.Prefix)
	v.SetDefault("split_prefix", defaults.SplitPrefix)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("python", defaults.Python)
	v.SetDefault("python_config", defaults.PythonConfig)
	v.SetDefault("work_root", defaults.WorkRoot)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("keep_work", defaults.KeepWork)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.AddConfigPath(env.ConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no run can proceed with.
func (c *Config) Validate() error {
	if c.Repo == "" {
		return fmt.Errorf("config: repo must not be empty")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1, got %d", c.Jobs)
	}
	if c.WorkRoot == "" {
		return fmt.Errorf("config: work_root must not be empty")
	}
	return nil
}
