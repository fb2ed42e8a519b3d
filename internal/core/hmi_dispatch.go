package core

import (
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/protocol/hmi"
)

// HandleHMI is the dispatcher's HMIHandlerFunc: it classifies the inbound
// bus Command per hmi.Command's three-way predicate set and routes it to
// the response-resolution path, the bus-request path, or the notification
// path (spec §4.1, §4.6).
func (c *Core) HandleHMI(cmd hmi.Command) {
	switch {
	case cmd.IsResponse():
		c.handleHMIResponse(cmd)
	case cmd.IsRequest():
		c.handleHMIRequest(cmd)
	case cmd.IsNotification():
		c.handleHMINotification(cmd)
	default:
		c.log.Warn("unclassifiable hmi command", zap.Any("id", cmd.ID), zap.String("method", string(cmd.Method)))
	}
}

func (c *Core) handleHMIRequest(cmd hmi.Command) {
	switch cmd.Method {
	case hmi.MethodAppLinkCoreActivateApp:
		c.handleHMIActivateApp(cmd)
	case hmi.MethodAppLinkCoreGetAppList:
		c.handleHMIGetAppList(cmd)
	case hmi.MethodAppLinkCoreGetDeviceList:
		c.handleHMIGetDeviceList(cmd)
	case hmi.MethodAppLinkCoreOnDeviceChosen:
		c.handleHMIOnDeviceChosen(cmd)
	case hmi.MethodAppLinkCoreSendData:
		c.handleHMISendData(cmd)
	default:
		c.log.Warn("unknown hmi bus request", zap.String("method", string(cmd.Method)))
	}
}

func (c *Core) handleHMINotification(cmd hmi.Command) {
	switch cmd.Method {
	case hmi.MethodAppLinkCoreOnReady:
		c.handleHMIOnReady()
	case hmi.MethodButtonsOnButtonEvent:
		c.handleHMIOnButtonEvent(cmd)
	case hmi.MethodButtonsOnButtonPress:
		c.handleHMIOnButtonPress(cmd)
	case hmi.MethodUIOnCommand, hmi.MethodVROnCommand:
		c.handleHMIOnCommand(cmd)
	case hmi.MethodAppLinkCoreOnSystemContext:
		c.handleHMIOnSystemContext(cmd)
	case hmi.MethodAppLinkCoreOnDriverDistraction:
		c.handleHMIOnDriverDistraction(cmd)
	case hmi.MethodAppLinkCoreOnEncodedSyncPData:
		c.handleHMIOnEncodedSyncPData(cmd)
	default:
		c.log.Warn("unknown hmi bus notification", zap.String("method", string(cmd.Method)))
	}
}
