// Package capability holds the HMI-advertised capability snapshot the core
// caches on OnReady (spec §4.6): button/display/HMI-zone/speech/VR
// capabilities and the current UI/VR/TTS languages and vehicle type.
// Populated as GetCapabilitiesResponse/GetLanguageResponse/
// GetVehicleTypeResponse arrive; read by RegisterAppInterface to build the
// capability snapshot returned to newly-registering apps.
package capability

import "github.com/latticeworks/appmgr/internal/protocol/common"

// Cache is the dispatcher-confined capability snapshot; like Registry and
// Tables it carries no lock of its own (spec §5 single logical mutex).
type Cache struct {
	ButtonCapabilities  []string
	DisplayCapabilities []string
	HMIZoneCapabilities []string
	SpeechCapabilities  []string
	VRCapabilities      []string

	UILanguage  common.Language
	VRLanguage  common.Language
	TTSLanguage common.Language

	VehicleType string

	// ready is set once OnReady has fired; RegisterAppInterface may still
	// succeed before this point but returns zero-value capabilities
	// (spec §4.6: "until all answers arrive... returned capabilities may be
	// defaults").
	ready bool
}

// New builds an empty Cache with no capabilities populated yet.
func New() *Cache {
	return &Cache{}
}

// MarkReady records that OnReady has fired and capability queries were
// dispatched; it does not by itself imply every answer has arrived.
func (c *Cache) MarkReady() { c.ready = true }

// Ready reports whether OnReady has fired.
func (c *Cache) Ready() bool { return c.ready }

// SetButtonCapabilities stores Buttons.GetCapabilitiesResponse's payload.
func (c *Cache) SetButtonCapabilities(caps []string) { c.ButtonCapabilities = caps }

// SetDisplayCapabilities stores UI.GetCapabilitiesResponse's payload.
func (c *Cache) SetDisplayCapabilities(caps []string) { c.DisplayCapabilities = caps }

// SetHMIZoneCapabilities stores the HMI-zone capability set.
func (c *Cache) SetHMIZoneCapabilities(caps []string) { c.HMIZoneCapabilities = caps }

// SetSpeechCapabilities stores TTS.GetCapabilitiesResponse's payload.
func (c *Cache) SetSpeechCapabilities(caps []string) { c.SpeechCapabilities = caps }

// SetVRCapabilities stores VR.GetCapabilitiesResponse's payload.
func (c *Cache) SetVRCapabilities(caps []string) { c.VRCapabilities = caps }

// SetUILanguage stores UI.GetLanguageResponse's payload.
func (c *Cache) SetUILanguage(lang common.Language) { c.UILanguage = lang }

// SetVRLanguage stores VR.GetLanguageResponse's payload.
func (c *Cache) SetVRLanguage(lang common.Language) { c.VRLanguage = lang }

// SetTTSLanguage stores TTS.GetLanguageResponse's payload.
func (c *Cache) SetTTSLanguage(lang common.Language) { c.TTSLanguage = lang }

// SetVehicleType stores VehicleInfo.GetVehicleTypeResponse's payload.
func (c *Cache) SetVehicleType(vt string) { c.VehicleType = vt }

// Snapshot is the capability set returned by RegisterAppInterface.
type Snapshot struct {
	ButtonCapabilities  []string
	DisplayCapabilities []string
	HMIZoneCapabilities []string
	SpeechCapabilities  []string
	VRCapabilities      []string
	Language            common.Language
}

// Snapshot returns the currently cached capability set.
func (c *Cache) Snapshot() Snapshot {
	return Snapshot{
		ButtonCapabilities:  c.ButtonCapabilities,
		DisplayCapabilities: c.DisplayCapabilities,
		HMIZoneCapabilities: c.HMIZoneCapabilities,
		SpeechCapabilities:  c.SpeechCapabilities,
		VRCapabilities:      c.VRCapabilities,
		Language:            c.UILanguage,
	}
}
