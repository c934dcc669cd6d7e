package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrSiteNameRequired        = errors.New("guide config: site name is required")
	ErrCanonicalBaseInvalid    = errors.New("guide config: canonical base url must be absolute http(s)")
	ErrStorageBaseInvalid      = errors.New("guide config: storage base url must be absolute http(s)")
	ErrStorageDriverUnknown    = errors.New("guide config: storage driver is invalid")
	ErrStorageDSNRequired      = errors.New("guide config: storage dsn is required")
	ErrCacheTTLInvalid         = errors.New("guide config: cache ttl must be positive when cache is enabled")
	ErrServerAddrRequired      = errors.New("guide config: server address is required")
	ErrLoggingProviderUnknown  = errors.New("guide config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("guide config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("guide config: logging format is invalid")
	ErrImportContentDirMissing = errors.New("guide config: import content directory is required")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates runtime settings for the guide.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Import  ImportConfig  `yaml:"import"`
}

// SiteConfig holds site-wide SEO defaults and public URL bases.
type SiteConfig struct {
	Name          string `yaml:"name"`
	CanonicalBase string `yaml:"canonical_base"`
	StorageBase   string `yaml:"storage_base"`
	Description   string `yaml:"description"`
	OGImage       string `yaml:"og_image"`
	Locale        string `yaml:"locale"`
}

// StorageConfig selects the database driver and connection string.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CacheConfig toggles the store-layer record cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// LoggingConfig selects the logging provider. Format applies to gologger only.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// ImportConfig configures listing imports from Markdown.
type ImportConfig struct {
	ContentDir string `yaml:"content_dir"`
	Pattern    string `yaml:"pattern"`
	Recursive  bool   `yaml:"recursive"`
	Publish    bool   `yaml:"publish"`
}

// DefaultConfig returns settings suitable for local development.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:          "Saltaire Guide",
			CanonicalBase: "https://saltaireguide.uk",
			Description:   "The independent guide to businesses, food and things to do in Saltaire.",
			OGImage:       "/og-default.jpg",
			Locale:        "en_GB",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "file:guide.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			ReadTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Import: ImportConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Name) == "" {
		return ErrSiteNameRequired
	}
	if !isAbsoluteHTTP(cfg.Site.CanonicalBase) {
		return fmt.Errorf("%w: %q", ErrCanonicalBaseInvalid, cfg.Site.CanonicalBase)
	}
	if base := strings.TrimSpace(cfg.Site.StorageBase); base != "" && !isAbsoluteHTTP(base) {
		return fmt.Errorf("%w: %q", ErrStorageBaseInvalid, base)
	}
	switch normalize(cfg.Storage.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	if strings.TrimSpace(cfg.Import.ContentDir) == "" {
		return ErrImportContentDirMissing
	}
	return nil
}

func isAbsoluteHTTP(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
