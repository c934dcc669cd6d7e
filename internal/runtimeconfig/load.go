package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GUIDE_"

// Load builds a Config from defaults, the YAML file at path and GUIDE_*
// environment variables, in that order. A missing file is not an error. Values
// from .env files in the working directory are loaded first and never replace
// variables already set in the process environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadEnvFiles(); err != nil {
		return cfg, err
	}

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("guide config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("guide config: parse %s: %w", path, err)
			}
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadEnvFiles() error {
	if envFile := os.Getenv(EnvPrefix + "ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("guide config: load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("guide config: load %s: %w", name, err)
		}
	}
	return nil
}

type binding struct {
	key   string
	apply func(cfg *Config, value string) error
}

func stringVar(field func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func boolVar(field func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(cfg) = parsed
		return nil
	}
}

func durationVar(field func(*Config) *time.Duration) func(*Config, string) error {
	return func(cfg *Config, value string) error {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(cfg) = parsed
		return nil
	}
}

var bindings = []binding{
	{"SITE_NAME", stringVar(func(c *Config) *string { return &c.Site.Name })},
	{"SITE_CANONICAL_BASE", stringVar(func(c *Config) *string { return &c.Site.CanonicalBase })},
	{"SITE_STORAGE_BASE", stringVar(func(c *Config) *string { return &c.Site.StorageBase })},
	{"SITE_DESCRIPTION", stringVar(func(c *Config) *string { return &c.Site.Description })},
	{"SITE_OG_IMAGE", stringVar(func(c *Config) *string { return &c.Site.OGImage })},
	{"SITE_LOCALE", stringVar(func(c *Config) *string { return &c.Site.Locale })},
	{"STORAGE_DRIVER", stringVar(func(c *Config) *string { return &c.Storage.Driver })},
	{"STORAGE_DSN", stringVar(func(c *Config) *string { return &c.Storage.DSN })},
	{"CACHE_ENABLED", boolVar(func(c *Config) *bool { return &c.Cache.Enabled })},
	{"CACHE_TTL", durationVar(func(c *Config) *time.Duration { return &c.Cache.TTL })},
	{"SERVER_ADDR", stringVar(func(c *Config) *string { return &c.Server.Addr })},
	{"SERVER_READ_TIMEOUT", durationVar(func(c *Config) *time.Duration { return &c.Server.ReadTimeout })},
	{"LOG_PROVIDER", stringVar(func(c *Config) *string { return &c.Logging.Provider })},
	{"LOG_LEVEL", stringVar(func(c *Config) *string { return &c.Logging.Level })},
	{"LOG_FORMAT", stringVar(func(c *Config) *string { return &c.Logging.Format })},
	{"IMPORT_CONTENT_DIR", stringVar(func(c *Config) *string { return &c.Import.ContentDir })},
	{"IMPORT_PATTERN", stringVar(func(c *Config) *string { return &c.Import.Pattern })},
	{"IMPORT_RECURSIVE", boolVar(func(c *Config) *bool { return &c.Import.Recursive })},
	{"IMPORT_PUBLISH", boolVar(func(c *Config) *bool { return &c.Import.Publish })},
}

// ApplyEnv overrides cfg with GUIDE_* variables resolved through lookup.
// Empty values are ignored.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil || lookup == nil {
		return nil
	}
	for _, b := range bindings {
		value, ok := lookup(EnvPrefix + b.key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := b.apply(cfg, value); err != nil {
			return fmt.Errorf("guide config: %s%s: %w", EnvPrefix, b.key, err)
		}
	}
	return nil
}
