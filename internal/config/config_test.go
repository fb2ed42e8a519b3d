package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0:9000", cfg.Mobile.ListenAddr)
	assert.Equal(t, "localhost:9001", cfg.HMI.Addr)
	assert.Equal(t, 5, cfg.HMI.DialTimeoutSec)
	assert.Equal(t, 256, cfg.Dispatch.MobileQueueCapacity)
	assert.Equal(t, 4, cfg.SyncP.Workers)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, int64(104857600), cfg.Storage.QuotaBytes)
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("MOBILE_LISTEN_ADDR", "127.0.0.1:7000")
	t.Setenv("HMI_DIAL_TIMEOUT_SEC", "9")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Mobile.ListenAddr)
	assert.Equal(t, 9, cfg.HMI.DialTimeoutSec)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefaultFallsBackOnParseError(t *testing.T) {
	t.Setenv("HMI_DIAL_TIMEOUT_SEC", "not-an-int")
	defer os.Unsetenv("HMI_DIAL_TIMEOUT_SEC")

	cfg := LoadOrDefault()
	assert.Equal(t, Default().HMI, cfg.HMI)
}
