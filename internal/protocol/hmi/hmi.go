// Package hmi defines the JSON-RPC-2-style envelope used on the HMI bus
// (spec §6): `{id, method, params}` requests, `{id, result}` responses, and
// `{method, params}` notifications, namespaced UI.*, VR.*, TTS.*,
// Buttons.*, AppLinkCore.*, VehicleInfo.*.
package hmi

import "encoding/json"

// Namespace is the leading component of an HMI bus method name.
type Namespace string

const (
	NamespaceUI          Namespace = "UI"
	NamespaceVR          Namespace = "VR"
	NamespaceTTS         Namespace = "TTS"
	NamespaceButtons     Namespace = "Buttons"
	NamespaceAppLinkCore Namespace = "AppLinkCore"
	NamespaceVehicleInfo Namespace = "VehicleInfo"
)

// Method names every HMI bus method the core issues or handles.
type Method string

const (
	MethodUIShow                       Method = "UI.Show"
	MethodUIShowResponse               Method = "UI.ShowResponse"
	MethodUISpeak                      Method = "TTS.Speak"
	MethodUISpeakResponse              Method = "TTS.SpeakResponse"
	MethodUISetGlobalProperties        Method = "UI.SetGlobalProperties"
	MethodUISetGlobalPropertiesResp    Method = "UI.SetGlobalPropertiesResponse"
	MethodUIResetGlobalProperties      Method = "UI.ResetGlobalProperties"
	MethodUIResetGlobalPropertiesResp  Method = "UI.ResetGlobalPropertiesResponse"
	MethodUIAlert                      Method = "UI.Alert"
	MethodUIAlertResponse              Method = "UI.AlertResponse"
	MethodUIAddCommand                 Method = "UI.AddCommand"
	MethodUIAddCommandResponse         Method = "UI.AddCommandResponse"
	MethodVRAddCommand                 Method = "VR.AddCommand"
	MethodVRAddCommandResponse         Method = "VR.AddCommandResponse"
	MethodUIDeleteCommand              Method = "UI.DeleteCommand"
	MethodUIDeleteCommandResponse      Method = "UI.DeleteCommandResponse"
	MethodVRDeleteCommand              Method = "VR.DeleteCommand"
	MethodVRDeleteCommandResponse      Method = "VR.DeleteCommandResponse"
	MethodUIAddSubMenu                 Method = "UI.AddSubMenu"
	MethodUIAddSubMenuResponse         Method = "UI.AddSubMenuResponse"
	MethodUIDeleteSubMenu              Method = "UI.DeleteSubMenu"
	MethodUIDeleteSubMenuResponse      Method = "UI.DeleteSubMenuResponse"
	MethodUICreateChoiceSet            Method = "UI.CreateInteractionChoiceSet"
	MethodUICreateChoiceSetResponse    Method = "UI.CreateInteractionChoiceSetResponse"
	MethodUIDeleteChoiceSet            Method = "UI.DeleteInteractionChoiceSet"
	MethodUIDeleteChoiceSetResponse    Method = "UI.DeleteInteractionChoiceSetResponse"
	MethodUIPerformInteraction         Method = "UI.PerformInteraction"
	MethodUIPerformInteractionResponse Method = "UI.PerformInteractionResponse"
	MethodUISetMediaClockTimer         Method = "UI.SetMediaClockTimer"
	MethodUISetMediaClockTimerResp     Method = "UI.SetMediaClockTimerResponse"
	MethodUISlider                     Method = "UI.Slider"
	MethodUISliderResponse             Method = "UI.SliderResponse"
	MethodUIScrollableMessage          Method = "UI.ScrollableMessage"
	MethodUIScrollableMessageResponse  Method = "UI.ScrollableMessageResponse"
	MethodUISetAppIcon                 Method = "UI.SetAppIcon"
	MethodUISetAppIconResponse         Method = "UI.SetAppIconResponse"
	MethodUIOnCommand                  Method = "UI.OnCommand"
	MethodVROnCommand                  Method = "VR.OnCommand"
	MethodButtonsSubscribe             Method = "Buttons.SubscribeButton"
	MethodButtonsSubscribeResponse     Method = "Buttons.SubscribeButtonResponse"
	MethodButtonsUnsubscribe           Method = "Buttons.UnsubscribeButton"
	MethodButtonsUnsubscribeResponse   Method = "Buttons.UnsubscribeButtonResponse"
	MethodButtonsOnButtonEvent         Method = "Buttons.OnButtonEvent"
	MethodButtonsOnButtonPress         Method = "Buttons.OnButtonPress"
	MethodButtonsGetCapabilities       Method = "Buttons.GetCapabilities"
	MethodButtonsGetCapabilitiesResp   Method = "Buttons.GetCapabilitiesResponse"
	MethodUIGetCapabilities            Method = "UI.GetCapabilities"
	MethodUIGetCapabilitiesResponse    Method = "UI.GetCapabilitiesResponse"
	MethodVRGetCapabilities            Method = "VR.GetCapabilities"
	MethodVRGetCapabilitiesResponse    Method = "VR.GetCapabilitiesResponse"
	MethodTTSGetCapabilities           Method = "TTS.GetCapabilities"
	MethodTTSGetCapabilitiesResponse   Method = "TTS.GetCapabilitiesResponse"
	MethodUIGetLanguage                Method = "UI.GetLanguage"
	MethodUIGetLanguageResponse        Method = "UI.GetLanguageResponse"
	MethodVRGetLanguage                Method = "VR.GetLanguage"
	MethodVRGetLanguageResponse        Method = "VR.GetLanguageResponse"
	MethodTTSGetLanguage               Method = "TTS.GetLanguage"
	MethodTTSGetLanguageResponse       Method = "TTS.GetLanguageResponse"
	MethodVehicleInfoGetVehicleType    Method = "VehicleInfo.GetVehicleType"
	MethodVehicleInfoGetVehicleTypeResp Method = "VehicleInfo.GetVehicleTypeResponse"
	MethodAppLinkCoreOnReady           Method = "AppLinkCore.OnReady"
	MethodAppLinkCoreOnAppRegistered   Method = "AppLinkCore.OnAppRegistered"
	MethodAppLinkCoreOnAppUnregistered Method = "AppLinkCore.OnAppUnregistered"
	MethodAppLinkCoreActivateApp       Method = "AppLinkCore.ActivateApp"
	MethodAppLinkCoreActivateAppResp   Method = "AppLinkCore.ActivateAppResponse"
	MethodAppLinkCoreOnSystemContext   Method = "AppLinkCore.OnSystemContext"
	MethodAppLinkCoreOnDriverDistraction Method = "AppLinkCore.OnDriverDistraction"
	MethodAppLinkCoreSendData          Method = "AppLinkCore.SendData"
	MethodAppLinkCoreSendDataResponse  Method = "AppLinkCore.SendDataResponse"
	MethodAppLinkCoreOnEncodedSyncPData Method = "AppLinkCore.OnEncodedSyncPData"
	MethodAppLinkCoreGetAppList        Method = "AppLinkCore.GetAppList"
	MethodAppLinkCoreGetAppListResp    Method = "AppLinkCore.GetAppListResponse"
	MethodAppLinkCoreGetDeviceList     Method = "AppLinkCore.GetDeviceList"
	MethodAppLinkCoreGetDeviceListResp Method = "AppLinkCore.GetDeviceListResponse"
	MethodAppLinkCoreOnDeviceChosen    Method = "AppLinkCore.OnDeviceChosen"
)

// ResultCode mirrors the mobile common.ResultCode vocabulary on the bus.
type ResultCode string

const (
	ResultSuccess      ResultCode = "SUCCESS"
	ResultInvalidData  ResultCode = "INVALID_DATA"
	ResultGenericError ResultCode = "GENERIC_ERROR"
	ResultRejected     ResultCode = "REJECTED"
	ResultUnsupportedResource ResultCode = "UNSUPPORTED_RESOURCE"
)

// Request is an outbound `{id, method, params}` bus request. Id is assigned
// by the core's IdAllocator, never by the caller (spec §1).
type Request struct {
	ID     uint32          `json:"id"`
	Method Method          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is an inbound or outbound `{id, result}` bus response.
type Response struct {
	ID     uint32          `json:"id"`
	Result json.RawMessage `json:"result"`
}

// ErrorResponse is an inbound or outbound `{id, error}` bus response.
type ErrorResponse struct {
	ID    uint32 `json:"id"`
	Error struct {
		Code    ResultCode `json:"code"`
		Message string     `json:"message"`
	} `json:"error"`
}

// Notification is an inbound or outbound `{method, params}` bus message
// with no correlation id.
type Notification struct {
	Method Method          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Command is a generic inbound bus message before it has been classified
// as Response or Notification; it is what the HMI transport hands the
// HMI-inbound dispatcher queue.
type Command struct {
	ID     *uint32         `json:"id,omitempty"`
	Method Method          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *struct {
		Code    ResultCode `json:"code"`
		Message string     `json:"message"`
	} `json:"error,omitempty"`
}

// IsResponse reports whether this Command is a response to an outbound
// request the core issued (it carries an id and either Result or Error but
// no Method).
func (c Command) IsResponse() bool {
	return c.ID != nil && c.Method == "" && (c.Result != nil || c.Error != nil)
}

// IsRequest reports whether this Command is a bus-originated request that
// expects a `{id, result}` reply (e.g. ActivateApp, GetAppList).
func (c Command) IsRequest() bool {
	return c.ID != nil && c.Method != ""
}

// IsNotification reports whether this Command is a bus-originated event
// with no reply expected.
func (c Command) IsNotification() bool {
	return c.ID == nil && c.Method != ""
}
