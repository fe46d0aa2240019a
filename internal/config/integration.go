package config

import (
	"sync"
)

var globalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig

// GetGlobalConfig returns the global configuration, loading it with New on
// first use.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the global configuration, typically with the
// project-merged one built at CLI start-up.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest clears the global config so the next
// GetGlobalConfig reloads it.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetConcurrency returns the configured batch concurrency.
func GetConcurrency() int {
	return GetGlobalConfig().Batch.Concurrency
}

// GetBatchSize returns the configured scenarios per batch, falling back to
// DefaultBatchSize when unset.
func GetBatchSize() int {
	if n := GetGlobalConfig().Batch.BatchSize; n > 0 {
		return n
	}
	return DefaultBatchSize
}
