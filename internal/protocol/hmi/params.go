package hmi

import "github.com/latticeworks/appmgr/internal/protocol/common"

// Every bus request carries the originating app's id so `AppLinkCore.*`
// notifications, and OnCommand lookups, can disambiguate
// across apps even when a correlation table lookup also succeeds (O.Q. 3).

// ShowParams is UI.Show's request payload.
type ShowParams struct {
	AppID         uint32              `json:"appId"`
	MainField1    *string             `json:"mainField1,omitempty"`
	MainField2    *string             `json:"mainField2,omitempty"`
	MainField3    *string             `json:"mainField3,omitempty"`
	MainField4    *string             `json:"mainField4,omitempty"`
	StatusBar     *string             `json:"statusBar,omitempty"`
	MediaClock    *string             `json:"mediaClock,omitempty"`
	Alignment     *string             `json:"alignment,omitempty"`
	Graphic       *string             `json:"graphic,omitempty"`
	SoftButtons   []common.SoftButton `json:"softButtons,omitempty"`
	CustomPresets []string            `json:"customPresets,omitempty"`
}

// ShowResult is UI.ShowResponse's result payload.
type ShowResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// SpeakParams is TTS.Speak's request payload.
type SpeakParams struct {
	AppID     uint32            `json:"appId"`
	TTSChunks []common.TTSChunk `json:"ttsChunks"`
}

// SpeakResult is TTS.SpeakResponse's result payload.
type SpeakResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// GlobalPropertiesParams is UI.SetGlobalProperties/ResetGlobalProperties.
type GlobalPropertiesParams struct {
	AppID         uint32            `json:"appId"`
	HelpPrompt    []common.TTSChunk `json:"helpPrompt,omitempty"`
	TimeoutPrompt []common.TTSChunk `json:"timeoutPrompt,omitempty"`
	Properties    []string          `json:"properties,omitempty"`
}

// GlobalPropertiesResult is the shared response result payload.
type GlobalPropertiesResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// AlertParams is UI.Alert's request payload.
type AlertParams struct {
	AppID       uint32              `json:"appId"`
	AlertText1  *string             `json:"alertText1,omitempty"`
	AlertText2  *string             `json:"alertText2,omitempty"`
	AlertText3  *string             `json:"alertText3,omitempty"`
	TTSChunks   []common.TTSChunk   `json:"ttsChunks,omitempty"`
	Duration    *uint32             `json:"duration,omitempty"`
	SoftButtons []common.SoftButton `json:"softButtons,omitempty"`
}

// AlertResult is UI.AlertResponse's result payload.
type AlertResult struct {
	ResultCode   ResultCode `json:"resultCode"`
	TryAgainTime *uint32    `json:"tryAgainTime,omitempty"`
}

// AddCommandParams is UI.AddCommand/VR.AddCommand's request payload; both
// namespaces share this shape, differing only in which fields are set.
type AddCommandParams struct {
	AppID      uint32             `json:"appId"`
	CmdID      uint32             `json:"cmdID"`
	MenuParams *common.MenuParams `json:"menuParams,omitempty"`
	VRCommands []string           `json:"vrCommands,omitempty"`
}

// CommandResult is the shared AddCommand/DeleteCommand response payload.
type CommandResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// DeleteCommandParams is UI.DeleteCommand/VR.DeleteCommand's request payload.
type DeleteCommandParams struct {
	AppID uint32 `json:"appId"`
	CmdID uint32 `json:"cmdID"`
}

// AddSubMenuParams is UI.AddSubMenu's request payload.
type AddSubMenuParams struct {
	AppID    uint32  `json:"appId"`
	MenuID   uint32  `json:"menuID"`
	MenuName string  `json:"menuName"`
	Position *uint32 `json:"position,omitempty"`
}

// DeleteSubMenuParams is UI.DeleteSubMenu's request payload.
type DeleteSubMenuParams struct {
	AppID  uint32 `json:"appId"`
	MenuID uint32 `json:"menuID"`
}

// MenuResult is the shared AddSubMenu/DeleteSubMenu response payload.
type MenuResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// ChoiceSetParams is UI.CreateInteractionChoiceSet's request payload.
type ChoiceSetParams struct {
	AppID                   uint32          `json:"appId"`
	InteractionChoiceSetID  uint32          `json:"interactionChoiceSetID"`
	Choices                 []common.Choice `json:"choiceSet"`
}

// DeleteChoiceSetParams is UI.DeleteInteractionChoiceSet's request payload.
type DeleteChoiceSetParams struct {
	AppID                  uint32 `json:"appId"`
	InteractionChoiceSetID uint32 `json:"interactionChoiceSetID"`
}

// ChoiceSetResult is the shared choice-set create/delete response payload.
type ChoiceSetResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// PerformInteractionParams is UI.PerformInteraction's request payload. It
// is handled entirely independently of AlertParams (O.Q. 4).
type PerformInteractionParams struct {
	AppID                      uint32            `json:"appId"`
	InitialText                string            `json:"initialText"`
	InteractionChoiceSetIDList []uint32          `json:"interactionChoiceSetIDList"`
	InteractionMode            string            `json:"interactionMode"`
	InitialPrompt              []common.TTSChunk `json:"initialPrompt,omitempty"`
	TimeoutMs                  *uint32           `json:"timeout,omitempty"`
}

// PerformInteractionResult is UI.PerformInteractionResponse's payload.
type PerformInteractionResult struct {
	ResultCode ResultCode `json:"resultCode"`
	ChoiceID   *uint32    `json:"choiceID,omitempty"`
}

// MediaClockTimerParams is UI.SetMediaClockTimer's request payload.
type MediaClockTimerParams struct {
	AppID      uint32  `json:"appId"`
	StartTime  *string `json:"startTime,omitempty"`
	UpdateMode string  `json:"updateMode"`
}

// MediaClockTimerResult is UI.SetMediaClockTimerResponse's payload.
type MediaClockTimerResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// SliderParams is UI.Slider's request payload; v2-only, no v1 counterpart.
type SliderParams struct {
	AppID        uint32  `json:"appId"`
	NumTicks     uint32  `json:"numTicks"`
	Position     uint32  `json:"position"`
	SliderHeader string  `json:"sliderHeader"`
	SliderFooter *string `json:"sliderFooter,omitempty"`
	TimeoutMs    *uint32 `json:"timeout,omitempty"`
}

// SliderResult is UI.SliderResponse's payload.
type SliderResult struct {
	ResultCode     ResultCode `json:"resultCode"`
	SliderPosition *uint32    `json:"sliderPosition,omitempty"`
}

// ScrollableMessageParams is UI.ScrollableMessage's request payload;
// v2-only, no v1 counterpart.
type ScrollableMessageParams struct {
	AppID                  uint32              `json:"appId"`
	ScrollableMessageBody  string              `json:"scrollableMessageBody"`
	TimeoutMs              *uint32             `json:"timeout,omitempty"`
	SoftButtons            []common.SoftButton `json:"softButtons,omitempty"`
}

// ScrollableMessageResult is UI.ScrollableMessageResponse's payload.
type ScrollableMessageResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// SetAppIconParams is UI.SetAppIcon's request payload; v2-only, no v1
// counterpart.
type SetAppIconParams struct {
	AppID        uint32 `json:"appId"`
	SyncFileName string `json:"syncFileName"`
}

// SetAppIconResult is UI.SetAppIconResponse's payload.
type SetAppIconResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// SubscribeButtonParams is Buttons.SubscribeButton/UnsubscribeButton params.
type SubscribeButtonParams struct {
	AppID      uint32 `json:"appId"`
	ButtonName string `json:"buttonName"`
}

// SubscribeButtonResult is the shared subscribe/unsubscribe response.
type SubscribeButtonResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// OnButtonEventParams is Buttons.OnButtonEvent's notification payload.
type OnButtonEventParams struct {
	ButtonName      string `json:"buttonName"`
	ButtonEventMode string `json:"buttonEventMode"`
}

// OnButtonPressParams is Buttons.OnButtonPress's notification payload.
type OnButtonPressParams struct {
	ButtonName      string `json:"buttonName"`
	ButtonPressMode string `json:"buttonPressMode"`
}

// OnCommandParams is UI.OnCommand/VR.OnCommand's notification payload.
type OnCommandParams struct {
	AppID         uint32               `json:"appId"`
	CmdID         uint32               `json:"cmdID"`
	TriggerSource common.TriggerSource `json:"triggerSource"`
}

// OnAppRegisteredParams is AppLinkCore.OnAppRegistered's notification.
type OnAppRegisteredParams struct {
	AppName       string `json:"appName"`
	AppID         uint32 `json:"appId"`
	VersionNumber int    `json:"versionNumber"`
}

// OnAppUnregisteredParams is AppLinkCore.OnAppUnregistered's notification.
type OnAppUnregisteredParams struct {
	AppID  uint32                   `json:"appId"`
	Reason common.UnregisterReason  `json:"reason"`
}

// ActivateAppParams is AppLinkCore.ActivateApp's request payload.
type ActivateAppParams struct {
	AppName string `json:"appName"`
}

// ActivateAppResult is AppLinkCore.ActivateAppResponse's payload.
type ActivateAppResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// OnSystemContextParams is AppLinkCore.OnSystemContext's notification.
type OnSystemContextParams struct {
	AppID         uint32               `json:"appId"`
	SystemContext common.SystemContext `json:"systemContext"`
}

// OnDriverDistractionParams is AppLinkCore.OnDriverDistraction's notification.
type OnDriverDistractionParams struct {
	State string `json:"state"`
}

// SendDataParams is AppLinkCore.SendData's request payload.
type SendDataParams struct {
	AppID   uint32  `json:"appId"`
	Data    []byte  `json:"data,omitempty"`
	URL     *string `json:"url,omitempty"`
	Timeout *int    `json:"timeout,omitempty"`
}

// SendDataResult is AppLinkCore.SendDataResponse's payload.
type SendDataResult struct {
	ResultCode ResultCode `json:"resultCode"`
}

// OnEncodedSyncPDataParams is AppLinkCore.OnEncodedSyncPData's notification.
type OnEncodedSyncPDataParams struct {
	AppID uint32   `json:"appId"`
	Data  []string `json:"data"`
}

// OnDeviceChosenParams is AppLinkCore.OnDeviceChosen's request payload.
type OnDeviceChosenParams struct {
	DeviceName string `json:"deviceName"`
}

// AppListEntry describes one registered application for GetAppListResponse.
type AppListEntry struct {
	AppName string `json:"appName"`
	AppID   uint32 `json:"appId"`
}

// GetAppListResult is AppLinkCore.GetAppListResponse's payload.
type GetAppListResult struct {
	AppList []AppListEntry `json:"appList"`
}

// DeviceListEntry describes one known device for GetDeviceListResponse.
type DeviceListEntry struct {
	Name string `json:"name"`
}

// GetDeviceListResult is AppLinkCore.GetDeviceListResponse's payload.
type GetDeviceListResult struct {
	DeviceList []DeviceListEntry `json:"deviceList"`
}

// CapabilitiesResult is the shared UI/VR/TTS/Buttons.GetCapabilitiesResponse
// payload shape.
type CapabilitiesResult struct {
	Capabilities []string `json:"capabilities"`
}

// GetLanguageResult is UI.GetLanguageResponse's payload.
type GetLanguageResult struct {
	Language common.Language `json:"language"`
}

// GetVehicleTypeResult is VehicleInfo.GetVehicleTypeResponse's payload.
type GetVehicleTypeResult struct {
	VehicleType string `json:"vehicleType"`
}
