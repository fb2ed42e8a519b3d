// Package common holds wire-level enums and value types shared by the v1
// and v2 mobile protocols and by the HMI bus payloads translated to/from
// them.
package common

// ResultCode is the bus-visible outcome of a mobile request, carried on
// every response envelope.
type ResultCode string

const (
	ResultSuccess                  ResultCode = "SUCCESS"
	ResultInvalidData              ResultCode = "INVALID_DATA"
	ResultApplicationNotRegistered ResultCode = "APPLICATION_NOT_REGISTERED"
	ResultApplicationRegisteredAlready ResultCode = "APPLICATION_REGISTERED_ALREADY"
	ResultRejected                 ResultCode = "REJECTED"
	ResultGenericError             ResultCode = "GENERIC_ERROR"
	ResultUnsupportedResource      ResultCode = "UNSUPPORTED_RESOURCE"
)

// HMILevel is the coarse HMI activity state of an application.
type HMILevel string

const (
	HMINone       HMILevel = "NONE"
	HMIBackground HMILevel = "BACKGROUND"
	HMILimited    HMILevel = "LIMITED"
	HMIFull       HMILevel = "FULL"
)

// AudioStreamingState describes whether an app is currently audible.
type AudioStreamingState string

const (
	AudioAudible    AudioStreamingState = "AUDIBLE"
	AudioNotAudible AudioStreamingState = "NOT_AUDIBLE"
	AudioAttenuated AudioStreamingState = "ATTENUATED"
)

// SystemContext is the finer UI state of the active application.
type SystemContext string

const (
	SystemContextMain         SystemContext = "MAIN"
	SystemContextVRSession    SystemContext = "VRSESSION"
	SystemContextMenu         SystemContext = "MENU"
	SystemContextHMIObscured  SystemContext = "HMI_OBSCURED"
	SystemContextAlert        SystemContext = "ALERT"
)

// CommandType distinguishes a command's UI counterpart from its VR
// counterpart; a single logical command may register both.
type CommandType string

const (
	CommandUI CommandType = "UI"
	CommandVR CommandType = "VR"
)

// TriggerSource identifies how an OnCommand notification was raised.
type TriggerSource string

const (
	TriggerMenu TriggerSource = "MENU"
	TriggerVR   TriggerSource = "VR"
)

// Language is a BCP-47-ish language tag understood by the HMI.
type Language string

const (
	LanguageEnUS Language = "EN-US"
	LanguageEnGB Language = "EN-GB"
	LanguageDeDE Language = "DE-DE"
	LanguageEsES Language = "ES-ES"
	LanguageFrFR Language = "FR-FR"
)

// AppType classifies an application for v2 registrations.
type AppType string

const (
	AppTypeDefault    AppType = "DEFAULT"
	AppTypeCommunication AppType = "COMMUNICATION"
	AppTypeMedia      AppType = "MEDIA"
	AppTypeMessaging  AppType = "MESSAGING"
	AppTypeNavigation AppType = "NAVIGATION"
	AppTypeInformation AppType = "INFORMATION"
	AppTypeSocial     AppType = "SOCIAL"
	AppTypeSystem     AppType = "SYSTEM"
)

// UnregisterReason is carried on OnAppInterfaceUnregistered.
type UnregisterReason string

const (
	UnregisterUserExit    UnregisterReason = "USER_EXIT"
	UnregisterIgnitionOff UnregisterReason = "IGNITION_OFF"
	UnregisterMasterReset UnregisterReason = "MASTER_RESET"
)

// SyncMsgVersion is the {major,minor} negotiated protocol sub-version.
type SyncMsgVersion struct {
	Major uint32 `json:"majorVersion"`
	Minor uint32 `json:"minorVersion"`
}

// TTSChunk is one spoken segment; SpeechCapability is empty for plain text.
type TTSChunk struct {
	Text             string `json:"text"`
	SpeechCapability string `json:"type,omitempty"`
}

// MenuParams describes where a command/submenu is placed in the UI menu.
type MenuParams struct {
	ParentID *uint32 `json:"parentID,omitempty"`
	Position *uint32 `json:"position,omitempty"`
	MenuName string  `json:"menuName"`
}

// Choice is one selectable item of an interaction choice set.
type Choice struct {
	ChoiceID       uint32   `json:"choiceID"`
	MenuName       string   `json:"menuName"`
	VRCommands     []string `json:"vrCommands"`
	Image          *string  `json:"image,omitempty"`
	SecondaryText  *string  `json:"secondaryText,omitempty"`
	TertiaryText   *string  `json:"tertiaryText,omitempty"`
	SecondaryImage *string  `json:"secondaryImage,omitempty"`
}

// SoftButton is a v2-only, HMI-passthrough button definition.
type SoftButton struct {
	Type        string  `json:"type"`
	Text        *string `json:"text,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsHighlighted bool  `json:"isHighlighted,omitempty"`
	SoftButtonID uint32 `json:"softButtonID"`
	SystemAction *string `json:"systemAction,omitempty"`
}
