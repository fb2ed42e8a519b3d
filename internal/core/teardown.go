package core

import (
	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
)

// teardownAppLocked strips an app's HMI bus footprint (spec §4.6): every
// registered command counterpart, submenu and choice set is deleted from
// the HMI. Deletion responses are discarded by
// handleHMICommandFanoutResponse, which finds no outbound correlation for them, so none of these ids are
// recorded in CorrelationTables. Caller must hold the lock; the returned
// thunks perform the actual outbound sends and must run only after
// unlocking (spec §5).
func (c *Core) teardownAppLocked(state *appstate.State) []func() {
	var sends []func()

	for cmdID, cmd := range state.Commands {
		cmdID := cmdID
		if cmd.HasUI {
			id := c.ids.Next()
			sends = append(sends, func() {
				c.sendHMIRequest(id, hmi.MethodUIDeleteCommand, translate.DeleteCommandParams(state.SessionKey, cmdID))
			})
		}
		if cmd.HasVR {
			id := c.ids.Next()
			sends = append(sends, func() {
				c.sendHMIRequest(id, hmi.MethodVRDeleteCommand, translate.DeleteCommandParams(state.SessionKey, cmdID))
			})
		}
	}

	for menuID := range state.Menus {
		menuID := menuID
		id := c.ids.Next()
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUIDeleteSubMenu, translate.DeleteSubMenuParams(state.SessionKey, menuID))
		})
	}

	for setID := range state.ChoiceSets {
		setID := setID
		id := c.ids.Next()
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUIDeleteChoiceSet, translate.DeleteChoiceSetParams(state.SessionKey, setID))
		})
	}

	return sends
}
