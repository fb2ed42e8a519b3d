package core

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// HandleMobile is the dispatcher's MobileHandlerFunc: it decodes the
// versioned payload and routes to the method-specific handler. Unknown
// methods yield GenericResponse(INVALID_DATA) (spec §7).
func (c *Core) HandleMobile(req mobile.RpcRequest) {
	switch req.Method {
	case mobile.MethodRegisterAppInterface:
		c.handleRegisterAppInterface(req)
	case mobile.MethodUnregisterAppInterface:
		c.handleUnregisterAppInterface(req)
	case mobile.MethodSubscribeButton:
		c.handleSubscribeButton(req)
	case mobile.MethodUnsubscribeButton:
		c.handleUnsubscribeButton(req)
	case mobile.MethodShow:
		c.handleShow(req)
	case mobile.MethodSpeak:
		c.handleSpeak(req)
	case mobile.MethodSetGlobalProperties:
		c.handleSetGlobalProperties(req)
	case mobile.MethodResetGlobalProperties:
		c.handleResetGlobalProperties(req)
	case mobile.MethodAlert:
		c.handleAlert(req)
	case mobile.MethodAddCommand:
		c.handleAddCommand(req)
	case mobile.MethodDeleteCommand:
		c.handleDeleteCommand(req)
	case mobile.MethodAddSubMenu:
		c.handleAddSubMenu(req)
	case mobile.MethodDeleteSubMenu:
		c.handleDeleteSubMenu(req)
	case mobile.MethodCreateInteractionChoiceSet:
		c.handleCreateInteractionChoiceSet(req)
	case mobile.MethodDeleteInteractionChoiceSet:
		c.handleDeleteInteractionChoiceSet(req)
	case mobile.MethodPerformInteraction:
		c.handlePerformInteraction(req)
	case mobile.MethodSetMediaClockTimer:
		c.handleSetMediaClockTimer(req)
	case mobile.MethodEncodedSyncPData:
		c.handleEncodedSyncPData(req)
	case mobile.MethodPutFile:
		c.handlePutFile(req)
	case mobile.MethodDeleteFile:
		c.handleDeleteFile(req)
	case mobile.MethodListFiles:
		c.handleListFiles(req)
	case mobile.MethodSlider:
		c.handleSlider(req)
	case mobile.MethodScrollableMessage:
		c.handleScrollableMessage(req)
	case mobile.MethodSetAppIcon:
		c.handleSetAppIcon(req)
	default:
		c.replyUnknownMethod(req)
	}
}

func (c *Core) replyUnknownMethod(req mobile.RpcRequest) {
	c.log.Warn("unknown mobile method", zap.Uint32("session_key", req.SessionKey), zap.String("method", string(req.Method)))
	if req.IsV2() {
		c.sendMobileResponse(req, v2GenericResponse(common.ResultInvalidData, "unknown method"))
	} else {
		c.sendMobileResponse(req, v1GenericResponse(common.ResultInvalidData, "unknown method"))
	}
}

func v1GenericResponse(rc common.ResultCode, info string) v1.GenericResponse {
	return v1.GenericResponse{Success: rc == common.ResultSuccess, ResultCode: rc, Info: &info}
}

func v2GenericResponse(rc common.ResultCode, info string) v2.GenericResponse {
	return v2.GenericResponse{Success: rc == common.ResultSuccess, ResultCode: rc, Info: &info}
}

// sendMobileResponse emits payload as the response to req, choosing the
// wire version from which of req's payload fields is set.
func (c *Core) sendMobileResponse(req mobile.RpcRequest, payload any) {
	if c.mobileOut == nil {
		return
	}
	version := mobile.V1
	if req.IsV2() {
		version = mobile.V2
	}
	if err := c.mobileOut.SendResponse(req.SessionKey, version, req.Method, req.CorrelationID, payload); err != nil {
		c.log.Warn("mobile response send failed", zap.Uint32("session_key", req.SessionKey), zap.Error(err))
	}
}

// sendMobileNotification emits an unsolicited notification to sessionKey.
func (c *Core) sendMobileNotification(sessionKey uint32, version mobile.Version, method mobile.MethodID, payload any) {
	if c.mobileOut == nil {
		return
	}
	if err := c.mobileOut.SendNotification(sessionKey, version, method, payload); err != nil {
		c.log.Warn("mobile notification send failed", zap.Uint32("session_key", sessionKey), zap.Error(err))
	}
}

// decodeV1 unmarshals req's v1 payload into v.
func decodeV1(req mobile.RpcRequest, v any) error {
	return json.Unmarshal(req.V1Payload, v)
}

// decodeV2 unmarshals req's v2 payload into v.
func decodeV2(req mobile.RpcRequest, v any) error {
	return json.Unmarshal(req.V2Payload, v)
}
