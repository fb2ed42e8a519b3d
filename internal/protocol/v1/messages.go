// Package v1 defines the v1 mobile wire request/response payloads named in
// the request inventory (spec §4.5). v1 omits the language-negotiation and
// file-transfer surface that v2 adds (internal/protocol/v2).
package v1

import "github.com/latticeworks/appmgr/internal/protocol/common"

// RegisterAppInterfaceRequest registers a new application session.
type RegisterAppInterfaceRequest struct {
	AppName          string               `json:"appName"`
	NgnMediaScreenAppName *string         `json:"ngnMediaScreenAppName,omitempty"`
	VRSynonyms       []string             `json:"vrSynonyms,omitempty"`
	IsMediaApplication bool               `json:"isMediaApplication"`
	LanguageDesired  common.Language      `json:"languageDesired"`
	SyncMsgVersion   common.SyncMsgVersion `json:"syncMsgVersion"`
	AutoActivateID   *string              `json:"autoActivateID,omitempty"`
	UsesVehicleData  bool                 `json:"usesVehicleData"`
}

// RegisterAppInterfaceResponse carries the HMI capability snapshot back.
type RegisterAppInterfaceResponse struct {
	Success             bool                `json:"success"`
	ResultCode          common.ResultCode   `json:"resultCode"`
	ButtonCapabilities  []string            `json:"buttonCapabilities,omitempty"`
	DisplayCapabilities []string            `json:"displayCapabilities,omitempty"`
	HMIZoneCapabilities []string            `json:"hmiZoneCapabilities,omitempty"`
	SpeechCapabilities  []string            `json:"speechCapabilities,omitempty"`
	VRCapabilities      []string            `json:"vrCapabilities,omitempty"`
	Language            common.Language     `json:"language,omitempty"`
}

// UnregisterAppInterfaceRequest tears down the calling application.
type UnregisterAppInterfaceRequest struct{}

// UnregisterAppInterfaceResponse acknowledges teardown.
type UnregisterAppInterfaceResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// OnAppInterfaceUnregisteredNotification informs the app it was torn down.
type OnAppInterfaceUnregisteredNotification struct {
	Reason common.UnregisterReason `json:"reason"`
}

// SubscribeButtonRequest requests exclusive delivery of a hardware button's
// events to this application.
type SubscribeButtonRequest struct {
	ButtonName string `json:"buttonName"`
}

// SubscribeButtonResponse acknowledges the subscription.
type SubscribeButtonResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// UnsubscribeButtonRequest releases a button subscription.
type UnsubscribeButtonRequest struct {
	ButtonName string `json:"buttonName"`
}

// UnsubscribeButtonResponse acknowledges the release.
type UnsubscribeButtonResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// OnButtonEventNotification reports a physical button press/release.
type OnButtonEventNotification struct {
	ButtonName  string `json:"buttonName"`
	ButtonEventMode string `json:"buttonEventMode"`
}

// OnButtonPressNotification reports a completed button press.
type OnButtonPressNotification struct {
	ButtonName string `json:"buttonName"`
	ButtonPressMode string `json:"buttonPressMode"`
}

// ShowRequest updates the main display fields.
type ShowRequest struct {
	MainField1 *string `json:"mainField1,omitempty"`
	MainField2 *string `json:"mainField2,omitempty"`
	StatusBar  *string `json:"statusBar,omitempty"`
	MediaClock *string `json:"mediaClock,omitempty"`
	Alignment  *string `json:"alignment,omitempty"`
}

// ShowResponse reports the outcome of a Show request.
type ShowResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// SpeakRequest asks the HMI to speak a TTS chunk list.
type SpeakRequest struct {
	TTSChunks []common.TTSChunk `json:"ttsChunks"`
}

// SpeakResponse reports the outcome of a Speak request.
type SpeakResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// SetGlobalPropertiesRequest sets the help-prompt/timeout-prompt globals.
type SetGlobalPropertiesRequest struct {
	HelpPrompt    []common.TTSChunk `json:"helpPrompt,omitempty"`
	TimeoutPrompt []common.TTSChunk `json:"timeoutPrompt,omitempty"`
}

// SetGlobalPropertiesResponse reports the outcome.
type SetGlobalPropertiesResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// ResetGlobalPropertiesRequest resets one or more global properties.
type ResetGlobalPropertiesRequest struct {
	Properties []string `json:"properties"`
}

// ResetGlobalPropertiesResponse reports the outcome.
type ResetGlobalPropertiesResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// AlertRequest presents a modal alert.
type AlertRequest struct {
	AlertText1 *string           `json:"alertText1,omitempty"`
	AlertText2 *string           `json:"alertText2,omitempty"`
	AlertText3 *string           `json:"alertText3,omitempty"`
	TTSChunks  []common.TTSChunk `json:"ttsChunks,omitempty"`
	Duration   *uint32           `json:"duration,omitempty"`
}

// AlertResponse reports the outcome of an Alert request.
type AlertResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// AddCommandRequest registers a command; it may carry menu params (UI
// counterpart), vrCommands (VR counterpart), or both.
type AddCommandRequest struct {
	CmdID      uint32            `json:"cmdID"`
	MenuParams *common.MenuParams `json:"menuParams,omitempty"`
	VRCommands []string          `json:"vrCommands,omitempty"`
}

// AddCommandResponse is released only once every fanned-out counterpart of
// CmdID has replied.
type AddCommandResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// DeleteCommandRequest removes a previously added command.
type DeleteCommandRequest struct {
	CmdID uint32 `json:"cmdID"`
}

// DeleteCommandResponse is released once every fanned-out delete replies.
type DeleteCommandResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// AddSubMenuRequest creates a named menu.
type AddSubMenuRequest struct {
	MenuID   uint32  `json:"menuID"`
	MenuName string  `json:"menuName"`
	Position *uint32 `json:"position,omitempty"`
}

// AddSubMenuResponse reports the outcome.
type AddSubMenuResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// DeleteSubMenuRequest removes a menu and cascades to its commands.
type DeleteSubMenuRequest struct {
	MenuID uint32 `json:"menuID"`
}

// DeleteSubMenuResponse reports the outcome.
type DeleteSubMenuResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// CreateInteractionChoiceSetRequest registers a named set of choices.
type CreateInteractionChoiceSetRequest struct {
	InteractionChoiceSetID uint32          `json:"interactionChoiceSetID"`
	Choices                []common.Choice `json:"choiceSet"`
}

// CreateInteractionChoiceSetResponse reports the outcome.
type CreateInteractionChoiceSetResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// DeleteInteractionChoiceSetRequest removes a previously created choice set.
type DeleteInteractionChoiceSetRequest struct {
	InteractionChoiceSetID uint32 `json:"interactionChoiceSetID"`
}

// DeleteInteractionChoiceSetResponse reports the outcome.
type DeleteInteractionChoiceSetResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// PerformInteractionRequest presents a selectable list built from one or
// more previously created choice sets.
type PerformInteractionRequest struct {
	InitialText             string            `json:"initialText"`
	InteractionChoiceSetIDList []uint32       `json:"interactionChoiceSetIDList"`
	InteractionMode         string            `json:"interactionMode"`
	TTSChunks               []common.TTSChunk `json:"initialPrompt,omitempty"`
	TimeoutMs               *uint32           `json:"timeout,omitempty"`
}

// PerformInteractionResponse reports the choice the user made.
type PerformInteractionResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
	ChoiceID   *uint32           `json:"choiceID,omitempty"`
}

// SetMediaClockTimerRequest updates the media clock display.
type SetMediaClockTimerRequest struct {
	StartTime  *string `json:"startTime,omitempty"`
	UpdateMode string  `json:"updateMode"`
}

// SetMediaClockTimerResponse reports the outcome.
type SetMediaClockTimerResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// EncodedSyncPDataRequest forwards an opaque encoded sync-P payload.
type EncodedSyncPDataRequest struct {
	Data []string `json:"data"`
}

// EncodedSyncPDataResponse reports the outcome.
type EncodedSyncPDataResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
}

// OnHMIStatusNotification reports the app's current HMI level/audio/context.
type OnHMIStatusNotification struct {
	HMILevel      common.HMILevel            `json:"hmiLevel"`
	AudioStreamingState common.AudioStreamingState `json:"audioStreamingState,omitempty"`
	SystemContext common.SystemContext       `json:"systemContext,omitempty"`
}

// OnCommandNotification reports a menu/VR command invocation.
type OnCommandNotification struct {
	CmdID         uint32               `json:"cmdID"`
	TriggerSource common.TriggerSource `json:"triggerSource"`
}

// OnDriverDistractionNotification reports current driver-distraction state.
type OnDriverDistractionNotification struct {
	State string `json:"state"`
}

// OnEncodedSyncPDataNotification forwards the HMI-pushed sync-P raw payload
// down to the active app, when AppLinkCore.SendData carried no url.
type OnEncodedSyncPDataNotification struct {
	Data []byte `json:"data"`
}

// GenericResponse is used when a request's method could not be resolved.
type GenericResponse struct {
	Success    bool              `json:"success"`
	ResultCode common.ResultCode `json:"resultCode"`
	Info       *string           `json:"info,omitempty"`
}
