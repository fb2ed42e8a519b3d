// Package config holds environment-driven configuration for the application
// manager core.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Mobile    MobileConfig
	HMI       HMIConfig
	Admin     AdminConfig
	Dispatch  DispatchConfig
	SyncP     SyncPConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
}

// StorageConfig configures the per-app file sandbox used by PutFile/
// DeleteFile/ListFiles (spec §4.5, §6).
type StorageConfig struct {
	RootDir     string `envconfig:"STORAGE_ROOT_DIR" default:"./appdata"`
	QuotaBytes  int64  `envconfig:"STORAGE_QUOTA_BYTES" default:"104857600"`
}

// MobileConfig configures the mobile-facing WebSocket listener.
type MobileConfig struct {
	ListenAddr string `envconfig:"MOBILE_LISTEN_ADDR" default:"0.0.0.0:9000"`
}

// HMIConfig configures the HMI bus connection.
type HMIConfig struct {
	Addr           string `envconfig:"HMI_ADDR" default:"localhost:9001"`
	DialTimeoutSec int    `envconfig:"HMI_DIAL_TIMEOUT_SEC" default:"5"`
}

// AdminConfig configures the admin/diagnostics HTTP surface.
type AdminConfig struct {
	ListenAddr string `envconfig:"ADMIN_LISTEN_ADDR" default:"0.0.0.0:9090"`
	DevicesYAML string `envconfig:"DEVICES_YAML" default:"devices.yaml"`
}

// DispatchConfig configures the two dispatcher queues.
type DispatchConfig struct {
	MobileQueueCapacity int `envconfig:"MOBILE_QUEUE_CAPACITY" default:"256"`
	HMIQueueCapacity    int `envconfig:"HMI_QUEUE_CAPACITY" default:"256"`
}

// SyncPConfig configures the deferred sync-P send worker pool.
type SyncPConfig struct {
	Workers int `envconfig:"SYNCP_WORKERS" default:"4"`
	QueueCapacity int `envconfig:"SYNCP_QUEUE_CAPACITY" default:"64"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig bounds admission of mobile requests per session.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Mobile:  MobileConfig{ListenAddr: "0.0.0.0:9000"},
		HMI:     HMIConfig{Addr: "localhost:9001", DialTimeoutSec: 5},
		Admin:   AdminConfig{ListenAddr: "0.0.0.0:9090", DevicesYAML: "devices.yaml"},
		Dispatch: DispatchConfig{MobileQueueCapacity: 256, HMIQueueCapacity: 256},
		SyncP:   SyncPConfig{Workers: 4, QueueCapacity: 64},
		Logging: LogConfig{Level: "info", Development: false},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
		Storage: StorageConfig{RootDir: "./appdata", QuotaBytes: 104857600},
	}
}
