package core

import "github.com/latticeworks/appmgr/internal/domain/registry"

// CorrelationSizes reports the live size of each correlation table, for the
// admin diagnostics surface.
type CorrelationSizes struct {
	Outbound int `json:"outbound"`
	Command  int `json:"command"`
	Buttons  int `json:"buttons"`
	Devices  int `json:"devices"`
}

// DebugApps snapshots the registry for the admin diagnostics surface.
func (c *Core) DebugApps() []registry.Entry {
	c.lock()
	defer c.unlock()
	return c.registry.Snapshot()
}

// DebugCorrelation snapshots CorrelationTables' table sizes.
func (c *Core) DebugCorrelation() CorrelationSizes {
	c.lock()
	defer c.unlock()
	outbound, cmd, buttons, devices := c.tables.Sizes()
	return CorrelationSizes{Outbound: outbound, Command: cmd, Buttons: buttons, Devices: devices}
}
