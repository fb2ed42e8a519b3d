package core

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/domain/syncp"
	"github.com/latticeworks/appmgr/internal/id"
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
)

// sendMobileResponseRaw addresses a mobile response without an inbound
// RpcRequest to hang it off, for responses resolved asynchronously from an
// HMI bus reply rather than synchronously off a mobile request.
func (c *Core) sendMobileResponseRaw(sessionKey uint32, version mobile.Version, method mobile.MethodID, correlationID uint32, payload any) {
	if c.mobileOut == nil {
		return
	}
	if err := c.mobileOut.SendResponse(sessionKey, version, method, correlationID, payload); err != nil {
		c.log.Warn("mobile response send failed", zap.Uint32("session_key", sessionKey), zap.Error(err))
	}
}

func (c *Core) sendMobileResponseForOp(op pendingOp, payload any) {
	c.sendMobileResponseRaw(op.sessionKey, op.version, op.method, op.correlationID, payload)
}

// resultCodeOnly extracts a bare `{resultCode}` field, the common shape
// shared by every HMI response payload that carries nothing else.
type resultCodeOnly struct {
	ResultCode hmi.ResultCode `json:"resultCode"`
}

func extractResultCode(cmd hmi.Command) hmi.ResultCode {
	if cmd.Error != nil {
		return cmd.Error.Code
	}
	var body resultCodeOnly
	_ = json.Unmarshal(cmd.Result, &body)
	return body.ResultCode
}

// handleHMIResponse resolves an inbound `{id, result}`/`{id, error}` bus
// message against either the single-reply pending table or the cmd_id
// fanout counters, and never both (spec §4.4/§4.5 invariant 3/4).
func (c *Core) handleHMIResponse(cmd hmi.Command) {
	id := *cmd.ID

	c.lock()
	op, isPending := c.pending.take(id)
	if !isPending {
		c.handleHMICommandFanoutResponse(id, cmd)
		c.unlock()
		return
	}
	c.unlock()

	c.resolvePendingOp(op, cmd)
}

func (c *Core) resolvePendingOp(op pendingOp, cmd hmi.Command) {
	switch op.kind {
	case opShow:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.ShowResponseV1(hmi.ShowResult{ResultCode: extractResultCode(cmd)}),
			translate.ShowResponseV2(hmi.ShowResult{ResultCode: extractResultCode(cmd)})))
	case opSpeak:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.SpeakResponseV1(hmi.SpeakResult{ResultCode: extractResultCode(cmd)}),
			translate.SpeakResponseV2(hmi.SpeakResult{ResultCode: extractResultCode(cmd)})))
	case opSetGlobalProperties:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.GlobalPropertiesResponseV1(hmi.GlobalPropertiesResult{ResultCode: extractResultCode(cmd)}),
			translate.GlobalPropertiesResponseV2(hmi.GlobalPropertiesResult{ResultCode: extractResultCode(cmd)})))
	case opResetGlobalProperties:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.ResetGlobalPropertiesResponseV1(hmi.GlobalPropertiesResult{ResultCode: extractResultCode(cmd)}),
			translate.ResetGlobalPropertiesResponseV2(hmi.GlobalPropertiesResult{ResultCode: extractResultCode(cmd)})))
	case opAlert:
		var body struct {
			TryAgainTime *uint32 `json:"tryAgainTime,omitempty"`
		}
		_ = json.Unmarshal(cmd.Result, &body)
		result := hmi.AlertResult{ResultCode: extractResultCode(cmd), TryAgainTime: body.TryAgainTime}
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.AlertResponseV1(result), translate.AlertResponseV2(result)))
	case opAddSubMenu:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.AddSubMenuResponseV1(hmi.MenuResult{ResultCode: extractResultCode(cmd)}),
			translate.AddSubMenuResponseV2(hmi.MenuResult{ResultCode: extractResultCode(cmd)})))
	case opDeleteSubMenu:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.DeleteSubMenuResponseV1(hmi.MenuResult{ResultCode: extractResultCode(cmd)}),
			translate.DeleteSubMenuResponseV2(hmi.MenuResult{ResultCode: extractResultCode(cmd)})))
	case opCreateChoiceSet:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.ChoiceSetResponseV1(hmi.ChoiceSetResult{ResultCode: extractResultCode(cmd)}),
			translate.ChoiceSetResponseV2(hmi.ChoiceSetResult{ResultCode: extractResultCode(cmd)})))
	case opDeleteChoiceSet:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.DeleteChoiceSetResponseV1(hmi.ChoiceSetResult{ResultCode: extractResultCode(cmd)}),
			translate.DeleteChoiceSetResponseV2(hmi.ChoiceSetResult{ResultCode: extractResultCode(cmd)})))
	case opPerformInteraction:
		var body struct {
			ChoiceID *uint32 `json:"choiceID,omitempty"`
		}
		_ = json.Unmarshal(cmd.Result, &body)
		result := hmi.PerformInteractionResult{ResultCode: extractResultCode(cmd), ChoiceID: body.ChoiceID}
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.PerformInteractionResponseV1(result), translate.PerformInteractionResponseV2(result)))
	case opSetMediaClockTimer:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.MediaClockTimerResponseV1(hmi.MediaClockTimerResult{ResultCode: extractResultCode(cmd)}),
			translate.MediaClockTimerResponseV2(hmi.MediaClockTimerResult{ResultCode: extractResultCode(cmd)})))
	case opSubscribeButton:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.SubscribeButtonResponseV1(hmi.SubscribeButtonResult{ResultCode: extractResultCode(cmd)}),
			translate.SubscribeButtonResponseV2(hmi.SubscribeButtonResult{ResultCode: extractResultCode(cmd)})))
	case opUnsubscribeButton:
		c.sendMobileResponseForOp(op, versionedResponse(op.version,
			translate.UnsubscribeButtonResponseV1(hmi.SubscribeButtonResult{ResultCode: extractResultCode(cmd)}),
			translate.UnsubscribeButtonResponseV2(hmi.SubscribeButtonResult{ResultCode: extractResultCode(cmd)})))
	case opSlider:
		var body struct {
			SliderPosition *uint32 `json:"sliderPosition,omitempty"`
		}
		_ = json.Unmarshal(cmd.Result, &body)
		c.sendMobileResponseForOp(op, translate.SliderResponseV2(translate.ResultCodeFromHMI(extractResultCode(cmd)), body.SliderPosition))
	case opScrollableMessage:
		c.sendMobileResponseForOp(op, translate.ScrollableMessageResponseV2(translate.ResultCodeFromHMI(extractResultCode(cmd))))
	case opSetAppIcon:
		c.sendMobileResponseForOp(op, translate.SetAppIconResponseV2(translate.ResultCodeFromHMI(extractResultCode(cmd))))
	case opGetButtonCapabilities:
		c.applySystemQuery(cmd, func(caps []string) { c.caps.SetButtonCapabilities(caps) })
	case opGetDisplayCapabilities:
		c.applySystemQuery(cmd, func(caps []string) { c.caps.SetDisplayCapabilities(caps) })
	case opGetHMIZoneCapabilities:
		c.applySystemQuery(cmd, func(caps []string) { c.caps.SetHMIZoneCapabilities(caps) })
	case opGetSpeechCapabilities:
		c.applySystemQuery(cmd, func(caps []string) { c.caps.SetSpeechCapabilities(caps) })
	case opGetVRCapabilities:
		c.applySystemQuery(cmd, func(caps []string) { c.caps.SetVRCapabilities(caps) })
	case opGetUILanguage:
		var body hmi.GetLanguageResult
		_ = json.Unmarshal(cmd.Result, &body)
		c.lock()
		c.caps.SetUILanguage(body.Language)
		c.unlock()
	case opGetVRLanguage:
		var body hmi.GetLanguageResult
		_ = json.Unmarshal(cmd.Result, &body)
		c.lock()
		c.caps.SetVRLanguage(body.Language)
		c.unlock()
	case opGetTTSLanguage:
		var body hmi.GetLanguageResult
		_ = json.Unmarshal(cmd.Result, &body)
		c.lock()
		c.caps.SetTTSLanguage(body.Language)
		c.unlock()
	case opGetVehicleType:
		var body hmi.GetVehicleTypeResult
		_ = json.Unmarshal(cmd.Result, &body)
		c.lock()
		c.caps.SetVehicleType(body.VehicleType)
		c.unlock()
	}
}

func (c *Core) applySystemQuery(cmd hmi.Command, set func([]string)) {
	var body hmi.CapabilitiesResult
	_ = json.Unmarshal(cmd.Result, &body)
	c.lock()
	set(body.Capabilities)
	c.unlock()
}

// versionedResponse selects the v1 or v2 payload by version, keeping every
// resolvePendingOp branch a one-liner regardless of which two concrete
// response types translate.go returns.
func versionedResponse(version mobile.Version, v1resp, v2resp any) any {
	if version == mobile.V2 {
		return v2resp
	}
	return v1resp
}

// handleHMICommandFanoutResponse resolves one counterpart's AddCommand or
// DeleteCommand response against invariant 3/4: a mobile reply is only
// sent once every fanned-out counterpart for the same cmd_id has answered.
// Caller holds the lock; it is released around the final mobile send and
// taken again before returning.
func (c *Core) handleHMICommandFanoutResponse(id uint32, cmd hmi.Command) {
	sessionKey, ok := c.tables.ResolveOutbound(id)
	if !ok {
		c.log.Debug("unmatched hmi response, discarding", zap.Uint32("hmi_id", id))
		return
	}
	c.tables.ForgetOutbound(id)

	cmdID, ok := c.tables.ResolveCommand(id)
	if !ok {
		c.log.Debug("hmi response has no command correlation, discarding", zap.Uint32("hmi_id", id))
		return
	}
	c.tables.ForgetCommand(id)

	state, ok := c.lookupApp(sessionKey)
	if !ok {
		return // app unregistered mid-fanout; response is moot
	}
	pendingCmd, ok := state.PendingCmdReply[cmdID]
	if !ok {
		return
	}
	if extractResultCode(cmd) != hmi.ResultSuccess {
		pendingCmd.Failed = true
		state.PendingCmdReply[cmdID] = pendingCmd
	}

	if !state.ResolveCommandReply(cmdID) {
		return // counterparts still outstanding
	}

	rc := common.ResultSuccess
	if pendingCmd.Failed {
		rc = common.ResultGenericError
	}
	version := mobile.V1
	if state.ProtocolVersion == 2 {
		version = mobile.V2
	}
	if pendingCmd.IsDelete {
		state.RemoveCommand(cmdID)
		method := mobile.MethodDeleteCommand
		c.unlock()
		c.sendMobileResponseRaw(sessionKey, version, method, pendingCmd.CorrelationID, versionedResponse(version,
			translate.DeleteCommandResponseV1(rc), translate.DeleteCommandResponseV2(rc)))
		c.lock()
	} else {
		delete(state.PendingCmdReply, cmdID)
		method := mobile.MethodAddCommand
		c.unlock()
		c.sendMobileResponseRaw(sessionKey, version, method, pendingCmd.CorrelationID, versionedResponse(version,
			translate.AddCommandResponseV1(rc), translate.AddCommandResponseV2(rc)))
		c.lock()
	}
}

// handleHMIOnReady fires the capability/language/vehicle-type query burst
// once at startup (spec §4.6): every answer lands back through
// resolvePendingOp's system-query branch.
func (c *Core) handleHMIOnReady() {
	c.lock()
	c.caps.MarkReady()
	queries := []struct {
		method hmi.Method
		kind   opKind
	}{
		{hmi.MethodButtonsGetCapabilities, opGetButtonCapabilities},
		{hmi.MethodUIGetCapabilities, opGetDisplayCapabilities},
		{hmi.MethodVRGetCapabilities, opGetVRCapabilities},
		{hmi.MethodTTSGetCapabilities, opGetSpeechCapabilities},
		{hmi.MethodUIGetLanguage, opGetUILanguage},
		{hmi.MethodVRGetLanguage, opGetVRLanguage},
		{hmi.MethodTTSGetLanguage, opGetTTSLanguage},
		{hmi.MethodVehicleInfoGetVehicleType, opGetVehicleType},
	}
	ids := make([]uint32, len(queries))
	for i, q := range queries {
		id := c.ids.Next()
		c.pending.putSystemQuery(id, q.kind)
		ids[i] = id
	}
	c.unlock()

	for i, q := range queries {
		c.sendHMIRequest(ids[i], q.method, struct{}{})
	}
}

func (c *Core) handleHMIOnButtonEvent(cmd hmi.Command) {
	var p hmi.OnButtonEventParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	sessionKey, ok := c.tables.ResolveButton(p.ButtonName)
	var state *appstate.State
	if ok {
		state, ok = c.lookupApp(sessionKey)
	}
	c.unlock()
	if !ok {
		return
	}
	if state.ProtocolVersion == 2 {
		c.sendMobileNotification(sessionKey, mobile.V2, mobile.MethodOnButtonEvent, translate.OnButtonEventNotificationV2(p))
	} else {
		c.sendMobileNotification(sessionKey, mobile.V1, mobile.MethodOnButtonEvent, translate.OnButtonEventNotificationV1(p))
	}
}

func (c *Core) handleHMIOnButtonPress(cmd hmi.Command) {
	var p hmi.OnButtonPressParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	sessionKey, ok := c.tables.ResolveButton(p.ButtonName)
	var state *appstate.State
	if ok {
		state, ok = c.lookupApp(sessionKey)
	}
	c.unlock()
	if !ok {
		return
	}
	if state.ProtocolVersion == 2 {
		c.sendMobileNotification(sessionKey, mobile.V2, mobile.MethodOnButtonPress, translate.OnButtonPressNotificationV2(p))
	} else {
		c.sendMobileNotification(sessionKey, mobile.V1, mobile.MethodOnButtonPress, translate.OnButtonPressNotificationV1(p))
	}
}

// handleHMIOnCommand resolves the owning app by the bus appId field (O.Q. 3)
// and verifies cmd_id is actually registered there before forwarding the
// menu/VR trigger, rather than scanning every app for whichever one happens
// to hold that cmd_id.
func (c *Core) handleHMIOnCommand(cmd hmi.Command) {
	var p hmi.OnCommandParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	state, ok := c.lookupApp(p.AppID)
	if ok {
		_, ok = state.Commands[p.CmdID]
	}
	c.unlock()
	if !ok {
		return
	}
	if state.ProtocolVersion == 2 {
		c.sendMobileNotification(state.SessionKey, mobile.V2, mobile.MethodOnCommand, translate.OnCommandNotificationV2(p))
	} else {
		c.sendMobileNotification(state.SessionKey, mobile.V1, mobile.MethodOnCommand, translate.OnCommandNotificationV1(p))
	}
}

// handleHMIOnSystemContext updates the app's system context and, only on
// the MAIN transition, forces hmi_level=FULL and replays it to the mobile
// side as OnHMIStatus (spec §4.6, grounded in AppMgrCore.cpp:2981-3031's
// `if (SYSCTXT_MAIN == ...)` guard plus `set_hmiLevel(HMI_FULL)`). Every
// other context value just updates the cached state silently.
func (c *Core) handleHMIOnSystemContext(cmd hmi.Command) {
	var p hmi.OnSystemContextParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	state, ok := c.lookupApp(p.AppID)
	if ok {
		state.SystemContext = p.SystemContext
	}
	isMain := ok && p.SystemContext == common.SystemContextMain
	var audio common.AudioStreamingState
	if isMain {
		state.HMILevel = common.HMIFull
		audio = state.AudioState
	}
	c.unlock()
	if !isMain {
		return
	}
	if state.ProtocolVersion == 2 {
		c.sendMobileNotification(p.AppID, mobile.V2, mobile.MethodOnHMIStatus, translate.OnHMIStatusV2(common.HMIFull, audio, p.SystemContext))
	} else {
		c.sendMobileNotification(p.AppID, mobile.V1, mobile.MethodOnHMIStatus, translate.OnHMIStatusV1(common.HMIFull, audio, p.SystemContext))
	}
}

// handleHMIOnDriverDistraction caches the state per protocol version (spec
// §4.6) and replays it to whichever apps are currently registered.
func (c *Core) handleHMIOnDriverDistraction(cmd hmi.Command) {
	var p hmi.OnDriverDistractionParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	c.driverDistraction[1] = p.State
	c.driverDistraction[2] = p.State
	targets := c.registry.Snapshot()
	c.unlock()

	for _, entry := range targets {
		c.lock()
		state, ok := c.lookupApp(entry.SessionKey)
		c.unlock()
		if !ok {
			continue
		}
		if state.ProtocolVersion == 2 {
			c.sendMobileNotification(entry.SessionKey, mobile.V2, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV2(p.State))
		} else {
			c.sendMobileNotification(entry.SessionKey, mobile.V1, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV1(p.State))
		}
	}
}

func (c *Core) handleHMIOnEncodedSyncPData(cmd hmi.Command) {
	var p hmi.OnEncodedSyncPDataParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		return
	}
	c.lock()
	c.sp.AppendAll(p.AppID, p.Data)
	c.unlock()
}

// ackResult is the shared `{resultCode}` reply body for bus requests whose
// response carries no other information.
type ackResult struct {
	ResultCode hmi.ResultCode `json:"resultCode"`
}

// handleHMIActivateApp resolves the app by name, tears down and backgrounds
// whichever app is currently active, activates the target, and replays its
// registered commands/menus/choice sets (spec §4.6 activation state
// machine).
func (c *Core) handleHMIActivateApp(cmd hmi.Command) {
	var p hmi.ActivateAppParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: hmi.ResultInvalidData})
		return
	}

	c.lock()
	target, ok := c.registry.LookupByName(p.AppName)
	if !ok {
		c.unlock()
		c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: hmi.ResultRejected})
		return
	}

	var teardownSends, replaySends []func()
	prior, hadPrior := c.registry.Active()
	alreadyActive := hadPrior && prior.SessionKey == target.SessionKey
	if hadPrior && !alreadyActive {
		teardownSends = c.teardownAppLocked(prior)
		c.registry.DeactivateActive()
	}
	if !alreadyActive {
		if _, err := c.registry.Activate(target.SessionKey); err != nil {
			c.unlock()
			c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: hmi.ResultGenericError})
			return
		}
	}
	replaySends = c.replayAppLocked(target)
	priorLevel, priorAudio, priorCtx := common.HMIBackground, common.AudioNotAudible, common.SystemContextMain
	if hadPrior {
		priorLevel, priorAudio, priorCtx = prior.HMILevel, prior.AudioState, prior.SystemContext
	}
	targetLevel, targetAudio, targetCtx := target.HMILevel, target.AudioState, target.SystemContext
	driverDistraction := c.driverDistraction[driverDistractionSlot(target.ProtocolVersion)]
	c.unlock()

	for _, send := range teardownSends {
		send()
	}
	for _, send := range replaySends {
		send()
	}

	if hadPrior && prior.SessionKey != target.SessionKey {
		if prior.ProtocolVersion == 2 {
			c.sendMobileNotification(prior.SessionKey, mobile.V2, mobile.MethodOnHMIStatus, translate.OnHMIStatusV2(priorLevel, priorAudio, priorCtx))
		} else {
			c.sendMobileNotification(prior.SessionKey, mobile.V1, mobile.MethodOnHMIStatus, translate.OnHMIStatusV1(priorLevel, priorAudio, priorCtx))
		}
	}
	if target.ProtocolVersion == 2 {
		c.sendMobileNotification(target.SessionKey, mobile.V2, mobile.MethodOnHMIStatus, translate.OnHMIStatusV2(targetLevel, targetAudio, targetCtx))
	} else {
		c.sendMobileNotification(target.SessionKey, mobile.V1, mobile.MethodOnHMIStatus, translate.OnHMIStatusV1(targetLevel, targetAudio, targetCtx))
	}
	if driverDistraction != "" {
		if target.ProtocolVersion == 2 {
			c.sendMobileNotification(target.SessionKey, mobile.V2, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV2(driverDistraction))
		} else {
			c.sendMobileNotification(target.SessionKey, mobile.V1, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV1(driverDistraction))
		}
	}

	c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: hmi.ResultSuccess})
}

// replayAppLocked re-issues every registered command, submenu and choice
// set as fresh bus requests after activation (spec §4.6 "teardown +
// replay"). Responses are not correlated to any PendingCmdReply, so
// handleHMICommandFanoutResponse silently discards them when they arrive.
// Caller must hold the lock.
func (c *Core) replayAppLocked(state *appstate.State) []func() {
	var sends []func()

	for _, menu := range state.Menus {
		menu := menu
		id := c.ids.Next()
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUIAddSubMenu, translate.AddSubMenuParams(state.SessionKey, menu.MenuID, menu.Name, menu.Position))
		})
	}
	for cmdID, cmd := range state.Commands {
		cmdID, cmd := cmdID, cmd
		if cmd.HasUI {
			id := c.ids.Next()
			sends = append(sends, func() {
				c.sendHMIRequest(id, hmi.MethodUIAddCommand, translate.AddCommandParams(state.SessionKey, cmdID, cmd.MenuParams, nil))
			})
		}
		if cmd.HasVR {
			id := c.ids.Next()
			sends = append(sends, func() {
				c.sendHMIRequest(id, hmi.MethodVRAddCommand, translate.AddCommandParams(state.SessionKey, cmdID, nil, cmd.VRCommands))
			})
		}
	}
	for setID, set := range state.ChoiceSets {
		setID, set := setID, set
		id := c.ids.Next()
		sends = append(sends, func() {
			c.sendHMIRequest(id, hmi.MethodUICreateChoiceSet, translate.ChoiceSetParams(state.SessionKey, setID, set.Choices))
		})
	}
	return sends
}

func (c *Core) handleHMIGetAppList(cmd hmi.Command) {
	c.lock()
	entries := c.registry.Snapshot()
	c.unlock()

	list := make([]hmi.AppListEntry, len(entries))
	for i, e := range entries {
		list[i] = hmi.AppListEntry{AppName: e.AppName, AppID: e.SessionKey}
	}
	c.sendHMIResponse(*cmd.ID, hmi.GetAppListResult{AppList: list})
}

func (c *Core) handleHMIGetDeviceList(cmd hmi.Command) {
	var names []string
	if c.devices != nil {
		names = c.devices.Discover()
	}
	list := make([]hmi.DeviceListEntry, len(names))
	for i, n := range names {
		list[i] = hmi.DeviceListEntry{Name: n}
	}
	c.sendHMIResponse(*cmd.ID, hmi.GetDeviceListResult{DeviceList: list})
}

func (c *Core) handleHMIOnDeviceChosen(cmd hmi.Command) {
	var p hmi.OnDeviceChosenParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: hmi.ResultInvalidData})
		return
	}
	rc := hmi.ResultSuccess
	if c.devices != nil {
		if err := c.devices.Connect(p.DeviceName); err != nil {
			rc = hmi.ResultGenericError
		}
	}
	c.sendHMIResponse(*cmd.ID, ackResult{ResultCode: rc})
}

// handleHMISendData stores the HMI-pushed raw payload and either spawns a
// deferred worker-pool job when a url is supplied, replying before the
// transfer completes (spec §4.7: "response sent before data transmits",
// best effort), or otherwise pushes OnEncodedSyncPData straight down to the
// active app (spec §4.6).
func (c *Core) handleHMISendData(cmd hmi.Command) {
	var p hmi.SendDataParams
	if err := json.Unmarshal(cmd.Params, &p); err != nil {
		c.sendHMIResponse(*cmd.ID, hmi.SendDataResult{ResultCode: hmi.ResultInvalidData})
		return
	}

	c.lock()
	if c.sp != nil {
		c.sp.SetRaw(p.Data)
	}
	active, hasActive := c.registry.Active()
	c.unlock()

	if p.URL == nil {
		if hasActive {
			if active.ProtocolVersion == 2 {
				c.sendMobileNotification(active.SessionKey, mobile.V2, mobile.MethodOnEncodedSyncPData, translate.OnEncodedSyncPDataV2(p.Data))
			} else {
				c.sendMobileNotification(active.SessionKey, mobile.V1, mobile.MethodOnEncodedSyncPData, translate.OnEncodedSyncPDataV1(p.Data))
			}
		}
		c.sendHMIResponse(*cmd.ID, hmi.SendDataResult{ResultCode: hmi.ResultSuccess})
		return
	}

	c.lock()
	lines := c.sp.Drain(p.AppID)
	c.unlock()

	timeout := 5 * time.Second
	if p.Timeout != nil {
		timeout = time.Duration(*p.Timeout) * time.Second
	}

	token := id.Default().JobToken()
	rc := hmi.ResultSuccess
	if c.sp == nil || !c.sp.Enqueue(syncp.Job{AppID: p.AppID, URL: *p.URL, Timeout: timeout, Lines: lines, Token: token}) {
		rc = hmi.ResultGenericError
	}
	c.log.Debug("queued deferred syncp send", zap.Uint32("app_id", p.AppID), zap.String("token", token), zap.String("result", string(rc)))
	c.sendHMIResponse(*cmd.ID, hmi.SendDataResult{ResultCode: rc})
}
