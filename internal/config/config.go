// Package config loads application settings with file < env < flag
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all runtime settings for the revise binary.
type Config struct {
	// Addr is the listen address for the web UI.
	Addr string `koanf:"addr" validate:"required"`
	// DB is the path to the sqlite database file.
	DB string `koanf:"db" validate:"required"`
	// ReposDir is where git deck sources are cloned.
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// Defaults returned when neither file, env, nor flags override them.
func defaults() Config {
	return Config{
		Addr:     ":8484",
		DB:       "revise.db",
		ReposDir: "repos",
	}
}

// Load builds the configuration by layering an optional yaml file, REVISE_
// environment variables, and command-line flags, in increasing precedence.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			// A missing default config file is fine; an unreadable
			// explicit one is not surfaced differently here because the
			// caller passes "" when no file was requested.
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("REVISE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "REVISE_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
