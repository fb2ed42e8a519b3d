package core

import (
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/protocol/hmi"
)

// sendHMIRequest marshals params and issues an HMI bus request under id.
// Must be called after the caller has released the state lock (spec §5:
// "holding it across an outbound send is forbidden").
func (c *Core) sendHMIRequest(id uint32, method hmi.Method, params any) {
	if c.hmiOut == nil {
		return
	}
	req := hmi.Request{ID: id, Method: method, Params: mustMarshal(params)}
	if err := c.hmiOut.SendRequest(req); err != nil {
		c.log.Warn("hmi request send failed", zap.Uint32("hmi_id", id), zap.String("method", string(method)), zap.Error(err))
	}
}

// sendHMIResponse replies to a bus-originated request (e.g. ActivateApp).
func (c *Core) sendHMIResponse(id uint32, result any) {
	if c.hmiOut == nil {
		return
	}
	if err := c.hmiOut.SendResponse(hmi.Response{ID: id, Result: mustMarshal(result)}); err != nil {
		c.log.Warn("hmi response send failed", zap.Uint32("hmi_id", id), zap.Error(err))
	}
}

// sendHMINotification emits an unsolicited notification on the bus.
func (c *Core) sendHMINotification(method hmi.Method, params any) {
	if c.hmiOut == nil {
		return
	}
	n := hmi.Notification{Method: method, Params: mustMarshal(params)}
	if err := c.hmiOut.SendNotification(n); err != nil {
		c.log.Warn("hmi notification send failed", zap.String("method", string(method)), zap.Error(err))
	}
}

// allocateAndRecord obtains the next HMI id and records its session
// correlation. Caller must hold the lock.
func (c *Core) allocateAndRecord(sessionKey uint32) uint32 {
	id := c.ids.Next()
	c.tables.RecordOutbound(id, sessionKey)
	return id
}
