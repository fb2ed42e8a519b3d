package devices

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyRegistry(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Empty(t, r.Discover())
}

func TestLoadSeedsKnownDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devices:\n  - name: \"GENIVI Simulator\"\n  - name: \"SPT\"\n"), 0o644))

	r, err := Load(path, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GENIVI Simulator", "SPT"}, r.Discover())
}

func TestConnectRegistersNewDeviceIdempotently(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)

	require.NoError(t, r.Connect("USB-1"))
	require.NoError(t, r.Connect("USB-1"))

	assert.ElementsMatch(t, []string{"USB-1"}, r.Discover())
}

func TestConnectRejectsEmptyName(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.NoError(t, err)
	assert.Error(t, r.Connect(""))
}
