// Package correlation implements the four bidirectional maps described in
// spec §4.2: outbound HMI message id to originating session, HMI message id
// to a pending logical command id, button name to its exclusive subscriber,
// and session key to device handle. Modeled as dedicated maps rather than
// one shared table with ad-hoc invariants (spec §9).
//
// All four maps are confined to core.Core's single logical mutex; this
// package carries no lock of its own.
package correlation

import "go.uber.org/zap"

// Tables holds the four correlation maps.
type Tables struct {
	outboundSession map[uint32]uint32 // hmiMsgId -> sessionKey
	outboundCmd     map[uint32]uint32 // hmiMsgId -> pendingCmdId
	buttonSubs      map[string]uint32 // buttonName -> sessionKey
	deviceHandles   map[uint32]string // sessionKey -> deviceHandle
	log             *zap.Logger
}

// New builds an empty Tables.
func New(log *zap.Logger) *Tables {
	return &Tables{
		outboundSession: make(map[uint32]uint32),
		outboundCmd:     make(map[uint32]uint32),
		buttonSubs:      make(map[string]uint32),
		deviceHandles:   make(map[uint32]string),
		log:             log,
	}
}

// RecordOutbound records that hmiID was issued on behalf of sessionKey.
func (t *Tables) RecordOutbound(hmiID, sessionKey uint32) {
	t.outboundSession[hmiID] = sessionKey
}

// ResolveOutbound returns the session that issued hmiID, if any.
func (t *Tables) ResolveOutbound(hmiID uint32) (uint32, bool) {
	sessionKey, ok := t.outboundSession[hmiID]
	return sessionKey, ok
}

// ForgetOutbound removes hmiID's session correlation.
func (t *Tables) ForgetOutbound(hmiID uint32) {
	delete(t.outboundSession, hmiID)
}

// RecordCommand records that hmiID corresponds to logical command cmdID.
func (t *Tables) RecordCommand(hmiID, cmdID uint32) {
	t.outboundCmd[hmiID] = cmdID
}

// ResolveCommand returns the cmd_id associated with hmiID, if any.
func (t *Tables) ResolveCommand(hmiID uint32) (uint32, bool) {
	cmdID, ok := t.outboundCmd[hmiID]
	return cmdID, ok
}

// ForgetCommand removes hmiID's command correlation.
func (t *Tables) ForgetCommand(hmiID uint32) {
	delete(t.outboundCmd, hmiID)
}

// SubscribeButton grants sessionKey exclusive delivery of buttonName's
// events. Subscription is global, last-writer-wins (O.Q. 1); a displaced
// prior subscriber is logged at Warn rather than silently dropped.
func (t *Tables) SubscribeButton(buttonName string, sessionKey uint32) {
	if prior, ok := t.buttonSubs[buttonName]; ok && prior != sessionKey && t.log != nil {
		t.log.Warn("button subscription displaced",
			zap.String("button", buttonName),
			zap.Uint32("prior_session", prior),
			zap.Uint32("new_session", sessionKey),
		)
	}
	t.buttonSubs[buttonName] = sessionKey
}

// ResolveButton returns the session currently subscribed to buttonName.
func (t *Tables) ResolveButton(buttonName string) (uint32, bool) {
	sessionKey, ok := t.buttonSubs[buttonName]
	return sessionKey, ok
}

// UnsubscribeButton releases a button subscription only if sessionKey is
// the current holder; a stale unsubscribe from a displaced session is a
// no-op.
func (t *Tables) UnsubscribeButton(buttonName string, sessionKey uint32) {
	if current, ok := t.buttonSubs[buttonName]; ok && current == sessionKey {
		delete(t.buttonSubs, buttonName)
	}
}

// RecordDevice associates a session with the device handle it connected
// through.
func (t *Tables) RecordDevice(sessionKey uint32, handle string) {
	t.deviceHandles[sessionKey] = handle
}

// ResolveDevice returns the device handle a session connected through.
func (t *Tables) ResolveDevice(sessionKey uint32) (string, bool) {
	handle, ok := t.deviceHandles[sessionKey]
	return handle, ok
}

// DropAllFor sweeps every map for entries keyed by or pointing at
// sessionKey (spec §4.2: invoked once per unregister, O(N) in table size).
func (t *Tables) DropAllFor(sessionKey uint32) {
	for hmiID, sk := range t.outboundSession {
		if sk == sessionKey {
			delete(t.outboundSession, hmiID)
			delete(t.outboundCmd, hmiID)
		}
	}
	for button, sk := range t.buttonSubs {
		if sk == sessionKey {
			delete(t.buttonSubs, button)
		}
	}
	delete(t.deviceHandles, sessionKey)
}

// Sizes reports the current size of each map, for metrics/debug endpoints.
func (t *Tables) Sizes() (outbound, cmd, buttons, devices int) {
	return len(t.outboundSession), len(t.outboundCmd), len(t.buttonSubs), len(t.deviceHandles)
}
