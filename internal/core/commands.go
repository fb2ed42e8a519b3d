package core

import (
	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// handleAddCommand fans out to UI.AddCommand and/or VR.AddCommand depending
// on which fields are set, seeding the outstanding-reply counter (invariant
// 3) and recording the mobile correlation to release exactly once, on the
// 1->0 transition (invariant 4).
func (c *Core) handleAddCommand(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var cmdID uint32
	var menuParams *common.MenuParams
	var vrCommands []string
	if req.IsV2() {
		var r v2.AddCommandRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		cmdID, menuParams, vrCommands = r.CmdID, r.MenuParams, r.VRCommands
	} else {
		var r v1.AddCommandRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		cmdID, menuParams, vrCommands = r.CmdID, r.MenuParams, r.VRCommands
	}
	if menuParams == nil && len(vrCommands) == 0 {
		c.replyInvalidData(req)
		return
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	cmd := state.AddCommand(cmdID, menuParams, vrCommands)
	state.PendingCmdReply[cmdID] = pendingCommandFor(req, false)

	var sends []func()
	if cmd.HasUI {
		id := c.allocateAndRecord(req.SessionKey)
		c.tables.RecordCommand(id, cmdID)
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUIAddCommand, translate.AddCommandParams(req.SessionKey, cmdID, menuParams, nil))
		})
	}
	if cmd.HasVR {
		id := c.allocateAndRecord(req.SessionKey)
		c.tables.RecordCommand(id, cmdID)
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodVRAddCommand, translate.AddCommandParams(req.SessionKey, cmdID, nil, vrCommands))
		})
	}
	c.unlock()

	for _, send := range sends {
		send()
	}
}

// handleDeleteCommand mirrors handleAddCommand's fanout, releasing the
// mobile reply once every counterpart that was actually registered answers.
func (c *Core) handleDeleteCommand(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var cmdID uint32
	if req.IsV2() {
		var r v2.DeleteCommandRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		cmdID = r.CmdID
	} else {
		var r v1.DeleteCommandRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		cmdID = r.CmdID
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	cmd, exists := state.Commands[cmdID]
	if !exists {
		c.unlock()
		c.replyInvalidData(req)
		return
	}
	state.PendingCmdReply[cmdID] = pendingCommandFor(req, true)

	var sends []func()
	outstanding := uint32(0)
	if cmd.HasUI {
		outstanding++
		id := c.allocateAndRecord(req.SessionKey)
		c.tables.RecordCommand(id, cmdID)
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUIDeleteCommand, translate.DeleteCommandParams(req.SessionKey, cmdID))
		})
	}
	if cmd.HasVR {
		outstanding++
		id := c.allocateAndRecord(req.SessionKey)
		c.tables.RecordCommand(id, cmdID)
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodVRDeleteCommand, translate.DeleteCommandParams(req.SessionKey, cmdID))
		})
	}
	state.UnrespondedByCmd[cmdID] = outstanding
	c.unlock()

	for _, send := range sends {
		send()
	}
}

func pendingCommandFor(req mobile.RpcRequest, isDelete bool) appstate.PendingCommand {
	return appstate.PendingCommand{CorrelationID: req.CorrelationID, IsDelete: isDelete}
}

func (c *Core) handleAddSubMenu(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var menuID uint32
	var name string
	var position *uint32
	if req.IsV2() {
		var r v2.AddSubMenuRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		menuID, name, position = r.MenuID, r.MenuName, r.Position
	} else {
		var r v1.AddSubMenuRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		menuID, name, position = r.MenuID, r.MenuName, r.Position
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	state.Menus[menuID] = &appstate.Menu{MenuID: menuID, Name: name, Position: position}
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putAddSubMenu(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIAddSubMenu, translate.AddSubMenuParams(req.SessionKey, menuID, name, position))
}

// handleDeleteSubMenu cascades to every command parented under the menu
// (spec §4.5): each is deleted from the HMI before the menu delete is
// itself issued, though none of these cascade deletes block the mobile
// reply — that still resolves off the single DeleteSubMenu response.
func (c *Core) handleDeleteSubMenu(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var menuID uint32
	if req.IsV2() {
		var r v2.DeleteSubMenuRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		menuID = r.MenuID
	} else {
		var r v1.DeleteSubMenuRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		menuID = r.MenuID
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	if !state.HasMenu(menuID) {
		c.unlock()
		c.replyInvalidData(req)
		return
	}
	cascadeIDs := state.CommandsUnderMenu(menuID)
	var cascadeSends []func()
	for _, cmdID := range cascadeIDs {
		cmdID := cmdID
		cmd, ok := state.Commands[cmdID]
		if !ok {
			continue
		}
		if cmd.HasUI {
			id := c.ids.Next()
			cascadeSends = append(cascadeSends, func() {
				c.sendHMIRequest(id, hmi.MethodUIDeleteCommand, translate.DeleteCommandParams(req.SessionKey, cmdID))
			})
		}
		if cmd.HasVR {
			id := c.ids.Next()
			cascadeSends = append(cascadeSends, func() {
				c.sendHMIRequest(id, hmi.MethodVRDeleteCommand, translate.DeleteCommandParams(req.SessionKey, cmdID))
			})
		}
		state.RemoveCommand(cmdID)
	}
	state.RemoveMenu(menuID)
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putDeleteSubMenu(id, req)
	c.unlock()

	for _, send := range cascadeSends {
		send()
	}
	c.sendHMIRequest(id, hmi.MethodUIDeleteSubMenu, translate.DeleteSubMenuParams(req.SessionKey, menuID))
}

func (c *Core) handleCreateInteractionChoiceSet(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var setID uint32
	var choices []common.Choice
	if req.IsV2() {
		var r v2.CreateInteractionChoiceSetRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		setID, choices = r.InteractionChoiceSetID, r.Choices
	} else {
		var r v1.CreateInteractionChoiceSetRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		setID, choices = r.InteractionChoiceSetID, r.Choices
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	state.ChoiceSets[setID] = &appstate.ChoiceSet{SetID: setID, Choices: choices}
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putCreateChoiceSet(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUICreateChoiceSet, translate.ChoiceSetParams(req.SessionKey, setID, choices))
}

func (c *Core) handleDeleteInteractionChoiceSet(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var setID uint32
	if req.IsV2() {
		var r v2.DeleteInteractionChoiceSetRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		setID = r.InteractionChoiceSetID
	} else {
		var r v1.DeleteInteractionChoiceSetRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		setID = r.InteractionChoiceSetID
	}

	c.lock()
	state, _ := c.lookupApp(req.SessionKey)
	if !state.HasChoiceSet(setID) {
		c.unlock()
		c.replyInvalidData(req)
		return
	}
	delete(state.ChoiceSets, setID)
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putDeleteChoiceSet(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIDeleteChoiceSet, translate.DeleteChoiceSetParams(req.SessionKey, setID))
}

// handlePerformInteraction is wholly independent of Alert end to end
// (O.Q. 4): it never touches AlertParams or the driver-distraction cache.
func (c *Core) handlePerformInteraction(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var v1req *v1.PerformInteractionRequest
	var v2req *v2.PerformInteractionRequest
	if req.IsV2() {
		v2req = &v2.PerformInteractionRequest{}
		if err := decodeV2(req, v2req); err != nil {
			c.replyInvalidData(req)
			return
		}
	} else {
		v1req = &v1.PerformInteractionRequest{}
		if err := decodeV1(req, v1req); err != nil {
			c.replyInvalidData(req)
			return
		}
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putPerformInteraction(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIPerformInteraction, translate.PerformInteractionParams(req.SessionKey, v1req, v2req))
}

// handleEncodedSyncPData stages opaque sync-P lines for the SendData
// deferred flush (spec §4.7); it never waits on the HMI bus.
func (c *Core) handleEncodedSyncPData(req mobile.RpcRequest) {
	var data []string
	if req.IsV2() {
		var r v2.EncodedSyncPDataRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		data = r.Data
	} else {
		var r v1.EncodedSyncPDataRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		data = r.Data
	}

	c.lock()
	if _, ok := c.lookupApp(req.SessionKey); !ok {
		c.unlock()
		c.replyNotRegistered(req)
		return
	}
	c.sp.AppendAll(req.SessionKey, data)
	c.unlock()

	c.sendMobileResponse(req, versionedResponse(versionOf(req),
		translate.EncodedSyncPDataResponseV1(common.ResultSuccess), translate.EncodedSyncPDataResponseV2(common.ResultSuccess)))
	c.sendHMINotification(hmi.MethodAppLinkCoreOnEncodedSyncPData, translate.EncodedSyncPDataParams(req.SessionKey, data))
}
