package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeworks/appmgr/internal/protocol/common"
)

func TestFreshCacheIsNotReadyAndReturnsZeroValueSnapshot(t *testing.T) {
	c := New()
	assert.False(t, c.Ready())
	assert.Empty(t, c.Snapshot().DisplayCapabilities)
}

func TestSettersPopulateSnapshot(t *testing.T) {
	c := New()
	c.MarkReady()
	c.SetButtonCapabilities([]string{"OK", "SEEKLEFT"})
	c.SetDisplayCapabilities([]string{"TEXT", "GRAPHIC"})
	c.SetHMIZoneCapabilities([]string{"FRONT"})
	c.SetSpeechCapabilities([]string{"TEXT"})
	c.SetVRCapabilities([]string{"TEXT"})
	c.SetUILanguage(common.LanguageEnUS)
	c.SetVehicleType("SDL Vehicle")

	assert.True(t, c.Ready())
	snap := c.Snapshot()
	assert.Equal(t, []string{"OK", "SEEKLEFT"}, snap.ButtonCapabilities)
	assert.Equal(t, []string{"TEXT", "GRAPHIC"}, snap.DisplayCapabilities)
	assert.Equal(t, common.LanguageEnUS, snap.Language)
	assert.Equal(t, "SDL Vehicle", c.VehicleType)
}
