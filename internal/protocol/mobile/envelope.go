// Package mobile defines the version-tagged mobile message envelope that
// arrives from the mobile transport and the tagged-union request type the
// dispatcher passes to MobileHandlers. Modeling it as a sum type (§9,
// "Version dispatch") keeps the v1/v2 branch total: every handler switches
// on exactly one of RpcRequest.V1Payload / RpcRequest.V2Payload being non-nil.
package mobile

import "encoding/json"

// Version identifies which wire schema a session negotiated at
// RegisterAppInterface time. It is immutable for the life of the session
// (spec invariant 1).
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

// MessageType classifies a mobile wire message.
type MessageType string

const (
	TypeRequest      MessageType = "REQUEST"
	TypeResponse     MessageType = "RESPONSE"
	TypeNotification MessageType = "NOTIFICATION"
)

// MethodID names a mobile RPC method; the same identifiers are used for
// both protocol versions, since only the payload shape differs.
type MethodID string

const (
	MethodRegisterAppInterface        MethodID = "RegisterAppInterface"
	MethodUnregisterAppInterface      MethodID = "UnregisterAppInterface"
	MethodSubscribeButton             MethodID = "SubscribeButton"
	MethodUnsubscribeButton           MethodID = "UnsubscribeButton"
	MethodShow                        MethodID = "Show"
	MethodSpeak                       MethodID = "Speak"
	MethodSetGlobalProperties         MethodID = "SetGlobalProperties"
	MethodResetGlobalProperties       MethodID = "ResetGlobalProperties"
	MethodAlert                       MethodID = "Alert"
	MethodAddCommand                  MethodID = "AddCommand"
	MethodDeleteCommand               MethodID = "DeleteCommand"
	MethodAddSubMenu                  MethodID = "AddSubMenu"
	MethodDeleteSubMenu               MethodID = "DeleteSubMenu"
	MethodCreateInteractionChoiceSet  MethodID = "CreateInteractionChoiceSet"
	MethodDeleteInteractionChoiceSet  MethodID = "DeleteInteractionChoiceSet"
	MethodPerformInteraction          MethodID = "PerformInteraction"
	MethodSetMediaClockTimer          MethodID = "SetMediaClockTimer"
	MethodEncodedSyncPData            MethodID = "EncodedSyncPData"
	MethodPutFile                     MethodID = "PutFile"     // v2 only
	MethodDeleteFile                  MethodID = "DeleteFile"  // v2 only
	MethodListFiles                   MethodID = "ListFiles"   // v2 only
	MethodSlider                      MethodID = "Slider"      // v2 only
	MethodScrollableMessage           MethodID = "ScrollableMessage" // v2 only
	MethodSetAppIcon                  MethodID = "SetAppIcon"  // v2 only

	// Notification-only methods (no correlated request from mobile).
	MethodOnHMIStatus                MethodID = "OnHMIStatus"
	MethodOnAppInterfaceUnregistered MethodID = "OnAppInterfaceUnregistered"
	MethodOnButtonEvent              MethodID = "OnButtonEvent"
	MethodOnButtonPress              MethodID = "OnButtonPress"
	MethodOnCommand                  MethodID = "OnCommand"
	MethodOnDriverDistraction        MethodID = "OnDriverDistraction"
	MethodOnEncodedSyncPData         MethodID = "OnEncodedSyncPData"
)

// Envelope is the transport-level frame delivered by the mobile transport,
// tagged with the session that sent it (out-of-scope collaborator contract,
// spec §1).
type Envelope struct {
	SessionKey    uint32          `json:"sessionKey"`
	Version       Version         `json:"protocolVersion"`
	Method        MethodID        `json:"method"`
	Type          MessageType     `json:"type"`
	CorrelationID uint32          `json:"correlationID"`
	Payload       json.RawMessage `json:"payload"`
	// BinaryData carries PutFile's raw file bytes, sent alongside the JSON
	// payload rather than embedded in it.
	BinaryData []byte `json:"binaryData,omitempty"`
}

// RpcRequest is the tagged union `V1(V1Request) | V2(V2Request)` called for
// in §9's design notes: exactly one of the two payload fields is non-nil,
// selected by Envelope.Version.
type RpcRequest struct {
	SessionKey    uint32
	CorrelationID uint32
	Method        MethodID
	V1Payload     json.RawMessage
	V2Payload     json.RawMessage
	BinaryData    []byte
}

// IsV1 reports whether this request was sent over the v1 wire schema.
func (r RpcRequest) IsV1() bool { return r.V1Payload != nil }

// IsV2 reports whether this request was sent over the v2 wire schema.
func (r RpcRequest) IsV2() bool { return r.V2Payload != nil }

// FromEnvelope builds a totalized RpcRequest from a raw transport envelope.
func FromEnvelope(env Envelope) RpcRequest {
	req := RpcRequest{
		SessionKey:    env.SessionKey,
		CorrelationID: env.CorrelationID,
		Method:        env.Method,
		BinaryData:    env.BinaryData,
	}
	switch env.Version {
	case V2:
		req.V2Payload = env.Payload
	default:
		req.V1Payload = env.Payload
	}
	return req
}
