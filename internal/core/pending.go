package core

import "github.com/latticeworks/appmgr/internal/protocol/mobile"

// opKind identifies which mobile response shape a pending single-reply HMI
// request expects once its response arrives. Distinct from the cmd_id
// fanout bookkeeping in appstate.State.PendingCmdReply, which can require
// more than one HMI response before anything is emitted upstream.
type opKind int

const (
	opShow opKind = iota
	opSpeak
	opSetGlobalProperties
	opResetGlobalProperties
	opAlert
	opAddSubMenu
	opDeleteSubMenu
	opCreateChoiceSet
	opDeleteChoiceSet
	opPerformInteraction
	opSetMediaClockTimer
	opSubscribeButton
	opUnsubscribeButton
	opSlider
	opScrollableMessage
	opSetAppIcon

	// System capability queries fired once on OnReady; these carry no
	// originating session or correlation id, only enough to route the
	// response into the right Cache setter.
	opGetButtonCapabilities
	opGetDisplayCapabilities
	opGetHMIZoneCapabilities
	opGetSpeechCapabilities
	opGetVRCapabilities
	opGetUILanguage
	opGetVRLanguage
	opGetTTSLanguage
	opGetVehicleType
)

// pendingOp is what's needed to translate an HMI response back into a
// mobile response once resolved via CorrelationTables.ResolveOutbound.
type pendingOp struct {
	kind          opKind
	sessionKey    uint32
	correlationID uint32
	version       mobile.Version
	method        mobile.MethodID
}

// pendingOps is a dispatcher-confined table of outstanding single-reply HMI
// requests, keyed by hmi_id, alongside CorrelationTables. Kept in Core
// rather than in the correlation package because it is response-shape
// bookkeeping specific to MobileHandlers, not a bidirectional identity map.
type pendingOps struct {
	byHMIID map[uint32]pendingOp
}

func newPendingOps() *pendingOps {
	return &pendingOps{byHMIID: make(map[uint32]pendingOp)}
}

func (p *pendingOps) put(hmiID uint32, op pendingOp) {
	p.byHMIID[hmiID] = op
}

func (p *pendingOps) take(hmiID uint32) (pendingOp, bool) {
	op, ok := p.byHMIID[hmiID]
	if ok {
		delete(p.byHMIID, hmiID)
	}
	return op, ok
}

// dropAllFor removes every pending single-reply op belonging to sessionKey,
// mirroring correlation.Tables.DropAllFor. System queries (opGetUILanguage
// and friends) carry a zero sessionKey and are never swept by this, since
// they belong to no app.
func (p *pendingOps) dropAllFor(sessionKey uint32) {
	for hmiID, op := range p.byHMIID {
		if op.sessionKey == sessionKey {
			delete(p.byHMIID, hmiID)
		}
	}
}

func versionOf(req mobile.RpcRequest) mobile.Version {
	if req.IsV2() {
		return mobile.V2
	}
	return mobile.V1
}

func (p *pendingOps) putShow(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opShow, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodShow})
}

func (p *pendingOps) putSpeak(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opSpeak, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodSpeak})
}

func (p *pendingOps) putGlobalProps(hmiID uint32, req mobile.RpcRequest, isReset bool) {
	kind := opSetGlobalProperties
	method := mobile.MethodSetGlobalProperties
	if isReset {
		kind = opResetGlobalProperties
		method = mobile.MethodResetGlobalProperties
	}
	p.put(hmiID, pendingOp{kind: kind, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: method})
}

func (p *pendingOps) putAlert(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opAlert, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodAlert})
}

func (p *pendingOps) putAddSubMenu(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opAddSubMenu, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodAddSubMenu})
}

func (p *pendingOps) putDeleteSubMenu(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opDeleteSubMenu, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodDeleteSubMenu})
}

func (p *pendingOps) putCreateChoiceSet(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opCreateChoiceSet, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodCreateInteractionChoiceSet})
}

func (p *pendingOps) putDeleteChoiceSet(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opDeleteChoiceSet, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodDeleteInteractionChoiceSet})
}

func (p *pendingOps) putPerformInteraction(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opPerformInteraction, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodPerformInteraction})
}

func (p *pendingOps) putMediaClock(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opSetMediaClockTimer, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodSetMediaClockTimer})
}

func (p *pendingOps) putSubscribeButton(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opSubscribeButton, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodSubscribeButton})
}

func (p *pendingOps) putUnsubscribeButton(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opUnsubscribeButton, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodUnsubscribeButton})
}

func (p *pendingOps) putSlider(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opSlider, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodSlider})
}

func (p *pendingOps) putScrollableMessage(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opScrollableMessage, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodScrollableMessage})
}

func (p *pendingOps) putSetAppIcon(hmiID uint32, req mobile.RpcRequest) {
	p.put(hmiID, pendingOp{kind: opSetAppIcon, sessionKey: req.SessionKey, correlationID: req.CorrelationID, version: versionOf(req), method: mobile.MethodSetAppIcon})
}

// putSystemQuery records a capability/language/vehicle-type query fired on
// OnReady; these have no originating session, so most pendingOp fields stay
// zero-valued.
func (p *pendingOps) putSystemQuery(hmiID uint32, kind opKind) {
	p.put(hmiID, pendingOp{kind: kind})
}
