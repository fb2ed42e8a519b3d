package core

import (
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// precheckActivatable runs pipeline steps 1-2 of §4.5: app must be
// registered and hmi_level != NONE. On failure it sends the terminal
// mobile response itself and returns ok=false.
func (c *Core) precheckActivatable(req mobile.RpcRequest) (ok bool) {
	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.replyNotRegistered(req)
		return false
	}
	if !state.IsActivatable() {
		c.unlock()
		c.replyRejected(req)
		return false
	}
	c.unlock()
	return true
}

func (c *Core) handleShow(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var v1req *v1.ShowRequest
	var v2req *v2.ShowRequest
	if req.IsV2() {
		v2req = &v2.ShowRequest{}
		if err := decodeV2(req, v2req); err != nil {
			c.replyInvalidData(req)
			return
		}
	} else {
		v1req = &v1.ShowRequest{}
		if err := decodeV1(req, v1req); err != nil {
			c.replyInvalidData(req)
			return
		}
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putShow(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIShow, translate.ShowParams(req.SessionKey, v1req, v2req))
}

func (c *Core) handleSpeak(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var chunks []common.TTSChunk
	if req.IsV2() {
		var r v2.SpeakRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		chunks = r.TTSChunks
	} else {
		var r v1.SpeakRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		chunks = r.TTSChunks
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putSpeak(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUISpeak, translate.SpeakParams(req.SessionKey, chunks))
}

func (c *Core) handleSetGlobalProperties(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var help, timeout []common.TTSChunk
	if req.IsV2() {
		var r v2.SetGlobalPropertiesRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		help, timeout = r.HelpPrompt, r.TimeoutPrompt
	} else {
		var r v1.SetGlobalPropertiesRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		help, timeout = r.HelpPrompt, r.TimeoutPrompt
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putGlobalProps(id, req, false)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUISetGlobalProperties, translate.SetGlobalPropertiesParams(req.SessionKey, help, timeout))
}

func (c *Core) handleResetGlobalProperties(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var props []string
	if req.IsV2() {
		var r v2.ResetGlobalPropertiesRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		props = r.Properties
	} else {
		var r v1.ResetGlobalPropertiesRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		props = r.Properties
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putGlobalProps(id, req, true)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIResetGlobalProperties, translate.ResetGlobalPropertiesParams(req.SessionKey, props))
}

func (c *Core) handleAlert(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var v1req *v1.AlertRequest
	var v2req *v2.AlertRequest
	if req.IsV2() {
		v2req = &v2.AlertRequest{}
		if err := decodeV2(req, v2req); err != nil {
			c.replyInvalidData(req)
			return
		}
	} else {
		v1req = &v1.AlertRequest{}
		if err := decodeV1(req, v1req); err != nil {
			c.replyInvalidData(req)
			return
		}
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putAlert(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIAlert, translate.AlertParams(req.SessionKey, v1req, v2req))
}

func (c *Core) handleSetMediaClockTimer(req mobile.RpcRequest) {
	if !c.precheckActivatable(req) {
		return
	}

	var startTime *string
	var updateMode string
	if req.IsV2() {
		var r v2.SetMediaClockTimerRequest
		if err := decodeV2(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		startTime, updateMode = r.StartTime, r.UpdateMode
	} else {
		var r v1.SetMediaClockTimerRequest
		if err := decodeV1(req, &r); err != nil {
			c.replyInvalidData(req)
			return
		}
		startTime, updateMode = r.StartTime, r.UpdateMode
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putMediaClock(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUISetMediaClockTimer, translate.MediaClockTimerParams(req.SessionKey, startTime, updateMode))
}
