package guide

import "github.com/saltaireguide/directory/internal/runtimeconfig"

var (
	ErrSiteNameRequired        = runtimeconfig.ErrSiteNameRequired
	ErrCanonicalBaseInvalid    = runtimeconfig.ErrCanonicalBaseInvalid
	ErrStorageBaseInvalid      = runtimeconfig.ErrStorageBaseInvalid
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrServerAddrRequired      = runtimeconfig.ErrServerAddrRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrImportContentDirMissing = runtimeconfig.ErrImportContentDirMissing
)

type (
	Config        = runtimeconfig.Config
	SiteConfig    = runtimeconfig.SiteConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	ServerConfig  = runtimeconfig.ServerConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	ImportConfig  = runtimeconfig.ImportConfig
)

// DefaultConfig returns settings suitable for local development.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, the YAML file at path and GUIDE_* variables.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
