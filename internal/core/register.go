package core

import (
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// handleRegisterAppInterface creates the AppState, emits OnHMIStatus(NONE)
// to the registering session, returns the capability snapshot, and emits
// OnAppRegistered on the bus (spec §4.5).
func (c *Core) handleRegisterAppInterface(req mobile.RpcRequest) {
	c.lock()

	var (
		name            string
		isMedia         bool
		usesVehicleData bool
		langDesired     common.Language
		hmiLangDesired  common.Language
		appTypes        []common.AppType
		syncVer         common.SyncMsgVersion
		ngnScreenName   string
		vrSynonyms      []string
		protocolVersion int
	)

	if req.IsV2() {
		var r v2.RegisterAppInterfaceRequest
		if err := decodeV2(req, &r); err != nil {
			c.unlock()
			c.sendMobileResponse(req, v2GenericResponse(common.ResultInvalidData, "malformed RegisterAppInterface"))
			return
		}
		name, isMedia, langDesired, hmiLangDesired, appTypes, syncVer, protocolVersion = r.AppName, r.IsMediaApplication, r.LanguageDesired, r.HMIDisplayLanguageDesired, r.AppHMIType, r.SyncMsgVersion, 2
		vrSynonyms = r.VRSynonyms
		if r.NgnMediaScreenAppName != nil {
			ngnScreenName = *r.NgnMediaScreenAppName
		}
	} else {
		var r v1.RegisterAppInterfaceRequest
		if err := decodeV1(req, &r); err != nil {
			c.unlock()
			c.sendMobileResponse(req, v1GenericResponse(common.ResultInvalidData, "malformed RegisterAppInterface"))
			return
		}
		name, isMedia, usesVehicleData, langDesired, syncVer, protocolVersion = r.AppName, r.IsMediaApplication, r.UsesVehicleData, r.LanguageDesired, r.SyncMsgVersion, 1
		vrSynonyms = r.VRSynonyms
		if r.NgnMediaScreenAppName != nil {
			ngnScreenName = *r.NgnMediaScreenAppName
		}
	}

	if name == "" {
		c.unlock()
		if req.IsV2() {
			c.sendMobileResponse(req, v2.RegisterAppInterfaceResponse{Success: false, ResultCode: common.ResultInvalidData})
		} else {
			c.sendMobileResponse(req, v1.RegisterAppInterfaceResponse{Success: false, ResultCode: common.ResultInvalidData})
		}
		return
	}

	state := appstate.New(req.SessionKey, name, protocolVersion, c.log.With(zap.Uint32("session_key", req.SessionKey)))
	state.IsMedia = isMedia
	state.UsesVehicleData = usesVehicleData
	state.LanguageDesired = langDesired
	state.HMIDisplayLanguageDesired = hmiLangDesired
	state.AppTypes = appTypes
	state.SyncMsgVersion = syncVer
	state.NgnScreenName = ngnScreenName
	state.VRSynonyms = vrSynonyms

	if err := c.registry.Register(state); err != nil {
		c.unlock()
		if req.IsV2() {
			c.sendMobileResponse(req, v2.RegisterAppInterfaceResponse{Success: false, ResultCode: common.ResultApplicationRegisteredAlready})
		} else {
			c.sendMobileResponse(req, v1.RegisterAppInterfaceResponse{Success: false, ResultCode: common.ResultApplicationRegisteredAlready})
		}
		return
	}

	snap := c.snapshotCapabilities()
	driverDistraction := c.driverDistraction[driverDistractionSlot(protocolVersion)]
	c.unlock()

	if req.IsV2() {
		c.sendMobileResponse(req, v2.RegisterAppInterfaceResponse{
			Success:                true,
			ResultCode:             common.ResultSuccess,
			ButtonCapabilities:     snap.ButtonCapabilities,
			DisplayCapabilities:    snap.DisplayCapabilities,
			HMIZoneCapabilities:    snap.HMIZoneCapabilities,
			SpeechCapabilities:     snap.SpeechCapabilities,
			VRCapabilities:         snap.VRCapabilities,
			SoftButtonCapabilities: snap.DisplayCapabilities,
			Language:               snap.Language,
			HMIDisplayLanguage:     snap.Language,
		})
	} else {
		c.sendMobileResponse(req, v1.RegisterAppInterfaceResponse{
			Success:             true,
			ResultCode:          common.ResultSuccess,
			ButtonCapabilities:  snap.ButtonCapabilities,
			DisplayCapabilities: snap.DisplayCapabilities,
			HMIZoneCapabilities: snap.HMIZoneCapabilities,
			SpeechCapabilities:  snap.SpeechCapabilities,
			VRCapabilities:      snap.VRCapabilities,
			Language:            snap.Language,
		})
	}

	if req.IsV2() {
		c.sendMobileNotification(req.SessionKey, mobile.V2, mobile.MethodOnHMIStatus, translate.OnHMIStatusV2(common.HMINone, common.AudioNotAudible, common.SystemContextMain))
	} else {
		c.sendMobileNotification(req.SessionKey, mobile.V1, mobile.MethodOnHMIStatus, translate.OnHMIStatusV1(common.HMINone, common.AudioNotAudible, common.SystemContextMain))
	}

	c.sendHMINotification(hmi.MethodAppLinkCoreOnAppRegistered, hmi.OnAppRegisteredParams{
		AppName:       name,
		AppID:         req.SessionKey,
		VersionNumber: protocolVersion,
	})

	if driverDistraction != "" {
		if req.IsV2() {
			c.sendMobileNotification(req.SessionKey, mobile.V2, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV2(driverDistraction))
		} else {
			c.sendMobileNotification(req.SessionKey, mobile.V1, mobile.MethodOnDriverDistraction, translate.OnDriverDistractionV1(driverDistraction))
		}
	}
}

// handleUnregisterAppInterface runs the teardown path, frees the AppState,
// and notifies both sides (spec §4.5).
func (c *Core) handleUnregisterAppInterface(req mobile.RpcRequest) {
	c.lock()
	state, ok := c.lookupApp(req.SessionKey)
	if !ok {
		c.unlock()
		c.replyNotRegistered(req)
		return
	}
	teardownSends := c.teardownAppLocked(state)
	c.registry.Unregister(req.SessionKey)
	c.tables.DropAllFor(req.SessionKey)
	c.pending.dropAllFor(req.SessionKey)
	c.unlock()

	for _, send := range teardownSends {
		send()
	}

	if req.IsV2() {
		c.sendMobileResponse(req, v2.UnregisterAppInterfaceResponse{Success: true, ResultCode: common.ResultSuccess})
		c.sendMobileNotification(req.SessionKey, mobile.V2, mobile.MethodOnAppInterfaceUnregistered, translate.OnAppInterfaceUnregisteredV2(common.UnregisterUserExit))
	} else {
		c.sendMobileResponse(req, v1.UnregisterAppInterfaceResponse{Success: true, ResultCode: common.ResultSuccess})
		c.sendMobileNotification(req.SessionKey, mobile.V1, mobile.MethodOnAppInterfaceUnregistered, translate.OnAppInterfaceUnregisteredV1(common.UnregisterUserExit))
	}
	c.sendHMINotification(hmi.MethodAppLinkCoreOnAppUnregistered, hmi.OnAppUnregisteredParams{
		AppID:  req.SessionKey,
		Reason: common.UnregisterUserExit,
	})
}

func (c *Core) replyNotRegistered(req mobile.RpcRequest) {
	if req.IsV2() {
		c.sendMobileResponse(req, v2GenericResponse(common.ResultApplicationNotRegistered, "not registered"))
	} else {
		c.sendMobileResponse(req, v1GenericResponse(common.ResultApplicationNotRegistered, "not registered"))
	}
}

// handleSubscribeButton validates the hmi_level!=NONE pre-condition (spec
// §4.5 step 2), then subscribes exclusively (invariant 5, O.Q. 1).
func (c *Core) handleSubscribeButton(req mobile.RpcRequest) {
	buttonName, ok := decodeButtonName(req)
	if !ok {
		c.replyInvalidData(req)
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.replyNotRegistered(req)
		return
	}
	if !state.IsActivatable() {
		c.unlock()
		c.replyRejected(req)
		return
	}
	c.tables.SubscribeButton(buttonName, req.SessionKey)
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putSubscribeButton(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodButtonsSubscribe, translate.SubscribeButtonParams(req.SessionKey, buttonName))
}

func (c *Core) handleUnsubscribeButton(req mobile.RpcRequest) {
	buttonName, ok := decodeButtonName(req)
	if !ok {
		c.replyInvalidData(req)
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.replyNotRegistered(req)
		return
	}
	if !state.IsActivatable() {
		c.unlock()
		c.replyRejected(req)
		return
	}
	c.tables.UnsubscribeButton(buttonName, req.SessionKey)
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putUnsubscribeButton(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodButtonsUnsubscribe, translate.SubscribeButtonParams(req.SessionKey, buttonName))
}

func decodeButtonName(req mobile.RpcRequest) (string, bool) {
	if req.IsV2() {
		var r v2.SubscribeButtonRequest
		if err := decodeV2(req, &r); err != nil || r.ButtonName == "" {
			return "", false
		}
		return r.ButtonName, true
	}
	var r v1.SubscribeButtonRequest
	if err := decodeV1(req, &r); err != nil || r.ButtonName == "" {
		return "", false
	}
	return r.ButtonName, true
}

func (c *Core) replyInvalidData(req mobile.RpcRequest) {
	if req.IsV2() {
		c.sendMobileResponse(req, v2GenericResponse(common.ResultInvalidData, "invalid request"))
	} else {
		c.sendMobileResponse(req, v1GenericResponse(common.ResultInvalidData, "invalid request"))
	}
}

func (c *Core) replyRejected(req mobile.RpcRequest) {
	if req.IsV2() {
		c.sendMobileResponse(req, v2GenericResponse(common.ResultRejected, "hmi level none"))
	} else {
		c.sendMobileResponse(req, v1GenericResponse(common.ResultRejected, "hmi level none"))
	}
}
