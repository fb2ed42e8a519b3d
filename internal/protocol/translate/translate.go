// Package translate holds the total, lossless, deterministic field mapping
// between mobile wire payloads (v1, v2) and their HMI bus counterparts
// (spec §4.5). Handlers call these helpers instead of building bus params
// inline, so the mapping lives in exactly one place per operation.
package translate

import (
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// ResultCodeToHMI maps the mobile ResultCode vocabulary onto the bus
// vocabulary. Shared names map one to one; the two registration errors
// collapse to REJECTED and any other code becomes GENERIC_ERROR.
func ResultCodeToHMI(rc common.ResultCode) hmi.ResultCode {
	switch rc {
	case common.ResultSuccess:
		return hmi.ResultSuccess
	case common.ResultInvalidData:
		return hmi.ResultInvalidData
	case common.ResultApplicationNotRegistered, common.ResultApplicationRegisteredAlready:
		return hmi.ResultRejected
	case common.ResultRejected:
		return hmi.ResultRejected
	case common.ResultUnsupportedResource:
		return hmi.ResultUnsupportedResource
	default:
		return hmi.ResultGenericError
	}
}

// ResultCodeFromHMI is the inverse mapping applied when building a mobile
// response from a bus result.
func ResultCodeFromHMI(rc hmi.ResultCode) common.ResultCode {
	switch rc {
	case hmi.ResultSuccess:
		return common.ResultSuccess
	case hmi.ResultInvalidData:
		return common.ResultInvalidData
	case hmi.ResultRejected:
		return common.ResultRejected
	case hmi.ResultUnsupportedResource:
		return common.ResultUnsupportedResource
	default:
		return common.ResultGenericError
	}
}

// ShowParams builds UI.Show's bus params from either wire version. Only one
// of v1req/v2req should be non-nil; the caller (mobile handler) already
// knows which via RpcRequest.IsV1()/IsV2().
func ShowParams(appID uint32, v1req *v1.ShowRequest, v2req *v2.ShowRequest) hmi.ShowParams {
	if v2req != nil {
		return hmi.ShowParams{
			AppID:         appID,
			MainField1:    v2req.MainField1,
			MainField2:    v2req.MainField2,
			MainField3:    v2req.MainField3,
			MainField4:    v2req.MainField4,
			StatusBar:     v2req.StatusBar,
			MediaClock:    v2req.MediaClock,
			Alignment:     v2req.Alignment,
			Graphic:       v2req.Graphic,
			SoftButtons:   v2req.SoftButtons,
			CustomPresets: v2req.CustomPresets,
		}
	}
	return hmi.ShowParams{
		AppID:      appID,
		MainField1: v1req.MainField1,
		MainField2: v1req.MainField2,
		StatusBar:  v1req.StatusBar,
		MediaClock: v1req.MediaClock,
		Alignment:  v1req.Alignment,
	}
}

// ShowResponseV1 builds a v1 ShowResponse from the bus result.
func ShowResponseV1(result hmi.ShowResult) v1.ShowResponse {
	return v1.ShowResponse{
		Success:    result.ResultCode == hmi.ResultSuccess,
		ResultCode: ResultCodeFromHMI(result.ResultCode),
	}
}

// ShowResponseV2 builds a v2 ShowResponse from the bus result.
func ShowResponseV2(result hmi.ShowResult) v2.ShowResponse {
	return v2.ShowResponse{
		Success:    result.ResultCode == hmi.ResultSuccess,
		ResultCode: ResultCodeFromHMI(result.ResultCode),
	}
}

// SpeakParams builds TTS.Speak's bus params. Identical shape in both
// versions; kept as separate entry points so handlers never reach past
// this package into the wire structs directly.
func SpeakParams(appID uint32, chunks []common.TTSChunk) hmi.SpeakParams {
	return hmi.SpeakParams{AppID: appID, TTSChunks: chunks}
}

func SpeakResponseV1(result hmi.SpeakResult) v1.SpeakResponse {
	return v1.SpeakResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func SpeakResponseV2(result hmi.SpeakResult) v2.SpeakResponse {
	return v2.SpeakResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// SetGlobalPropertiesParams builds UI.SetGlobalProperties's bus params.
func SetGlobalPropertiesParams(appID uint32, helpPrompt, timeoutPrompt []common.TTSChunk) hmi.GlobalPropertiesParams {
	return hmi.GlobalPropertiesParams{AppID: appID, HelpPrompt: helpPrompt, TimeoutPrompt: timeoutPrompt}
}

// ResetGlobalPropertiesParams builds UI.ResetGlobalProperties's bus params.
func ResetGlobalPropertiesParams(appID uint32, properties []string) hmi.GlobalPropertiesParams {
	return hmi.GlobalPropertiesParams{AppID: appID, Properties: properties}
}

func GlobalPropertiesResponseV1(result hmi.GlobalPropertiesResult) v1.SetGlobalPropertiesResponse {
	return v1.SetGlobalPropertiesResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func GlobalPropertiesResponseV2(result hmi.GlobalPropertiesResult) v2.SetGlobalPropertiesResponse {
	return v2.SetGlobalPropertiesResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func ResetGlobalPropertiesResponseV1(result hmi.GlobalPropertiesResult) v1.ResetGlobalPropertiesResponse {
	return v1.ResetGlobalPropertiesResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func ResetGlobalPropertiesResponseV2(result hmi.GlobalPropertiesResult) v2.ResetGlobalPropertiesResponse {
	return v2.ResetGlobalPropertiesResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// AlertParams builds UI.Alert's bus params from either wire version.
func AlertParams(appID uint32, v1req *v1.AlertRequest, v2req *v2.AlertRequest) hmi.AlertParams {
	if v2req != nil {
		return hmi.AlertParams{
			AppID:       appID,
			AlertText1:  v2req.AlertText1,
			AlertText2:  v2req.AlertText2,
			AlertText3:  v2req.AlertText3,
			TTSChunks:   v2req.TTSChunks,
			Duration:    v2req.Duration,
			SoftButtons: v2req.SoftButtons,
		}
	}
	return hmi.AlertParams{
		AppID:      appID,
		AlertText1: v1req.AlertText1,
		AlertText2: v1req.AlertText2,
		AlertText3: v1req.AlertText3,
		TTSChunks:  v1req.TTSChunks,
		Duration:   v1req.Duration,
	}
}

func AlertResponseV1(result hmi.AlertResult) v1.AlertResponse {
	return v1.AlertResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// AlertResponseV2 carries the v2-only TryAgainTime field through.
func AlertResponseV2(result hmi.AlertResult) v2.AlertResponse {
	return v2.AlertResponse{
		Success:      result.ResultCode == hmi.ResultSuccess,
		ResultCode:   ResultCodeFromHMI(result.ResultCode),
		TryAgainTime: result.TryAgainTime,
	}
}

// AddCommandParams builds the UI or VR AddCommand bus params for one
// counterpart. menuParams is nil for the VR counterpart, vrCommands is nil
// for the UI counterpart; the caller (handler fanout, spec §4.5) decides
// which counterparts to issue based on which fields the mobile request set.
func AddCommandParams(appID, cmdID uint32, menuParams *common.MenuParams, vrCommands []string) hmi.AddCommandParams {
	return hmi.AddCommandParams{AppID: appID, CmdID: cmdID, MenuParams: menuParams, VRCommands: vrCommands}
}

func DeleteCommandParams(appID, cmdID uint32) hmi.DeleteCommandParams {
	return hmi.DeleteCommandParams{AppID: appID, CmdID: cmdID}
}

func AddCommandResponseV1(rc common.ResultCode) v1.AddCommandResponse {
	return v1.AddCommandResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

func AddCommandResponseV2(rc common.ResultCode) v2.AddCommandResponse {
	return v2.AddCommandResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

func DeleteCommandResponseV1(rc common.ResultCode) v1.DeleteCommandResponse {
	return v1.DeleteCommandResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

func DeleteCommandResponseV2(rc common.ResultCode) v2.DeleteCommandResponse {
	return v2.DeleteCommandResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

// AddSubMenuParams builds UI.AddSubMenu's bus params.
func AddSubMenuParams(appID, menuID uint32, name string, position *uint32) hmi.AddSubMenuParams {
	return hmi.AddSubMenuParams{AppID: appID, MenuID: menuID, MenuName: name, Position: position}
}

func DeleteSubMenuParams(appID, menuID uint32) hmi.DeleteSubMenuParams {
	return hmi.DeleteSubMenuParams{AppID: appID, MenuID: menuID}
}

func AddSubMenuResponseV1(result hmi.MenuResult) v1.AddSubMenuResponse {
	return v1.AddSubMenuResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func AddSubMenuResponseV2(result hmi.MenuResult) v2.AddSubMenuResponse {
	return v2.AddSubMenuResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func DeleteSubMenuResponseV1(result hmi.MenuResult) v1.DeleteSubMenuResponse {
	return v1.DeleteSubMenuResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func DeleteSubMenuResponseV2(result hmi.MenuResult) v2.DeleteSubMenuResponse {
	return v2.DeleteSubMenuResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// ChoiceSetParams builds UI.CreateInteractionChoiceSet's bus params.
func ChoiceSetParams(appID, setID uint32, choices []common.Choice) hmi.ChoiceSetParams {
	return hmi.ChoiceSetParams{AppID: appID, InteractionChoiceSetID: setID, Choices: choices}
}

func DeleteChoiceSetParams(appID, setID uint32) hmi.DeleteChoiceSetParams {
	return hmi.DeleteChoiceSetParams{AppID: appID, InteractionChoiceSetID: setID}
}

func ChoiceSetResponseV1(result hmi.ChoiceSetResult) v1.CreateInteractionChoiceSetResponse {
	return v1.CreateInteractionChoiceSetResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func ChoiceSetResponseV2(result hmi.ChoiceSetResult) v2.CreateInteractionChoiceSetResponse {
	return v2.CreateInteractionChoiceSetResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func DeleteChoiceSetResponseV1(result hmi.ChoiceSetResult) v1.DeleteInteractionChoiceSetResponse {
	return v1.DeleteInteractionChoiceSetResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func DeleteChoiceSetResponseV2(result hmi.ChoiceSetResult) v2.DeleteInteractionChoiceSetResponse {
	return v2.DeleteInteractionChoiceSetResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// PerformInteractionParams builds UI.PerformInteraction's bus params. This
// path never touches AlertParams — PerformInteraction and Alert are
// independent operations end to end (O.Q. 4).
func PerformInteractionParams(appID uint32, v1req *v1.PerformInteractionRequest, v2req *v2.PerformInteractionRequest) hmi.PerformInteractionParams {
	if v2req != nil {
		return hmi.PerformInteractionParams{
			AppID:                      appID,
			InitialText:                v2req.InitialText,
			InteractionChoiceSetIDList: v2req.InteractionChoiceSetIDList,
			InteractionMode:            v2req.InteractionMode,
			InitialPrompt:              v2req.TTSChunks,
			TimeoutMs:                  v2req.TimeoutMs,
		}
	}
	return hmi.PerformInteractionParams{
		AppID:                      appID,
		InitialText:                v1req.InitialText,
		InteractionChoiceSetIDList: v1req.InteractionChoiceSetIDList,
		InteractionMode:            v1req.InteractionMode,
		InitialPrompt:              v1req.TTSChunks,
		TimeoutMs:                  v1req.TimeoutMs,
	}
}

func PerformInteractionResponseV1(result hmi.PerformInteractionResult) v1.PerformInteractionResponse {
	return v1.PerformInteractionResponse{
		Success:    result.ResultCode == hmi.ResultSuccess,
		ResultCode: ResultCodeFromHMI(result.ResultCode),
		ChoiceID:   result.ChoiceID,
	}
}

func PerformInteractionResponseV2(result hmi.PerformInteractionResult) v2.PerformInteractionResponse {
	return v2.PerformInteractionResponse{
		Success:    result.ResultCode == hmi.ResultSuccess,
		ResultCode: ResultCodeFromHMI(result.ResultCode),
		ChoiceID:   result.ChoiceID,
	}
}

// MediaClockTimerParams builds UI.SetMediaClockTimer's bus params.
func MediaClockTimerParams(appID uint32, startTime *string, updateMode string) hmi.MediaClockTimerParams {
	return hmi.MediaClockTimerParams{AppID: appID, StartTime: startTime, UpdateMode: updateMode}
}

func MediaClockTimerResponseV1(result hmi.MediaClockTimerResult) v1.SetMediaClockTimerResponse {
	return v1.SetMediaClockTimerResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func MediaClockTimerResponseV2(result hmi.MediaClockTimerResult) v2.SetMediaClockTimerResponse {
	return v2.SetMediaClockTimerResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// SubscribeButtonParams builds Buttons.SubscribeButton/UnsubscribeButton's
// bus params; the same shape serves both operations.
func SubscribeButtonParams(appID uint32, buttonName string) hmi.SubscribeButtonParams {
	return hmi.SubscribeButtonParams{AppID: appID, ButtonName: buttonName}
}

func SubscribeButtonResponseV1(result hmi.SubscribeButtonResult) v1.SubscribeButtonResponse {
	return v1.SubscribeButtonResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func SubscribeButtonResponseV2(result hmi.SubscribeButtonResult) v2.SubscribeButtonResponse {
	return v2.SubscribeButtonResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func UnsubscribeButtonResponseV1(result hmi.SubscribeButtonResult) v1.UnsubscribeButtonResponse {
	return v1.UnsubscribeButtonResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

func UnsubscribeButtonResponseV2(result hmi.SubscribeButtonResult) v2.UnsubscribeButtonResponse {
	return v2.UnsubscribeButtonResponse{Success: result.ResultCode == hmi.ResultSuccess, ResultCode: ResultCodeFromHMI(result.ResultCode)}
}

// OnButtonEventNotificationV1 turns a bus button event into the mobile
// notification shape; identical across versions.
func OnButtonEventNotificationV1(p hmi.OnButtonEventParams) v1.OnButtonEventNotification {
	return v1.OnButtonEventNotification{ButtonName: p.ButtonName, ButtonEventMode: p.ButtonEventMode}
}

func OnButtonPressNotificationV1(p hmi.OnButtonPressParams) v1.OnButtonPressNotification {
	return v1.OnButtonPressNotification{ButtonName: p.ButtonName, ButtonPressMode: p.ButtonPressMode}
}

func OnButtonEventNotificationV2(p hmi.OnButtonEventParams) v2.OnButtonEventNotification {
	return v2.OnButtonEventNotification{ButtonName: p.ButtonName, ButtonEventMode: p.ButtonEventMode}
}

func OnButtonPressNotificationV2(p hmi.OnButtonPressParams) v2.OnButtonPressNotification {
	return v2.OnButtonPressNotification{ButtonName: p.ButtonName, ButtonPressMode: p.ButtonPressMode}
}

// EncodedSyncPDataParams builds AppLinkCore.OnEncodedSyncPData's params from
// an inbound mobile EncodedSyncPData request (mobile -> HMI direction is
// actually a notification per spec §4.7; this mirrors the SyncP buffer
// hand-off path).
func EncodedSyncPDataParams(appID uint32, data []string) hmi.OnEncodedSyncPDataParams {
	return hmi.OnEncodedSyncPDataParams{AppID: appID, Data: data}
}

func EncodedSyncPDataResponseV1(rc common.ResultCode) v1.EncodedSyncPDataResponse {
	return v1.EncodedSyncPDataResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

func EncodedSyncPDataResponseV2(rc common.ResultCode) v2.EncodedSyncPDataResponse {
	return v2.EncodedSyncPDataResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

// OnEncodedSyncPDataV1/V2 forward the HMI-pushed raw sync-P payload down to
// the active app when AppLinkCore.SendData carried no url (spec §4.6).
func OnEncodedSyncPDataV1(data []byte) v1.OnEncodedSyncPDataNotification {
	return v1.OnEncodedSyncPDataNotification{Data: data}
}

func OnEncodedSyncPDataV2(data []byte) v2.OnEncodedSyncPDataNotification {
	return v2.OnEncodedSyncPDataNotification{Data: data}
}

// OnHMIStatusV1 builds a v1 OnHMIStatusNotification from tracked app state.
func OnHMIStatusV1(level common.HMILevel, audio common.AudioStreamingState, ctx common.SystemContext) v1.OnHMIStatusNotification {
	return v1.OnHMIStatusNotification{HMILevel: level, AudioStreamingState: audio, SystemContext: ctx}
}

func OnHMIStatusV2(level common.HMILevel, audio common.AudioStreamingState, ctx common.SystemContext) v2.OnHMIStatusNotification {
	return v2.OnHMIStatusNotification{HMILevel: level, AudioStreamingState: audio, SystemContext: ctx}
}

// OnCommandNotificationV1 builds the mobile OnCommand notification the
// app named by the bus appId field receives once its ownership of cmd_id
// has been confirmed.
func OnCommandNotificationV1(p hmi.OnCommandParams) v1.OnCommandNotification {
	return v1.OnCommandNotification{CmdID: p.CmdID, TriggerSource: p.TriggerSource}
}

func OnCommandNotificationV2(p hmi.OnCommandParams) v2.OnCommandNotification {
	return v2.OnCommandNotification{CmdID: p.CmdID, TriggerSource: p.TriggerSource}
}

func OnDriverDistractionV1(state string) v1.OnDriverDistractionNotification {
	return v1.OnDriverDistractionNotification{State: state}
}

func OnDriverDistractionV2(state string) v2.OnDriverDistractionNotification {
	return v2.OnDriverDistractionNotification{State: state}
}

func OnAppInterfaceUnregisteredV1(reason common.UnregisterReason) v1.OnAppInterfaceUnregisteredNotification {
	return v1.OnAppInterfaceUnregisteredNotification{Reason: reason}
}

func OnAppInterfaceUnregisteredV2(reason common.UnregisterReason) v2.OnAppInterfaceUnregisteredNotification {
	return v2.OnAppInterfaceUnregisteredNotification{Reason: reason}
}

// PutFileResponseV2 builds a PutFile response; v2-only, there is no v1
// counterpart (file transfer did not exist in v1, spec §4.5).
func PutFileResponseV2(rc common.ResultCode, spaceAvailable int64) v2.PutFileResponse {
	return v2.PutFileResponse{Success: rc == common.ResultSuccess, ResultCode: rc, SpaceAvailable: &spaceAvailable}
}

func DeleteFileResponseV2(rc common.ResultCode, spaceAvailable int64) v2.DeleteFileResponse {
	return v2.DeleteFileResponse{Success: rc == common.ResultSuccess, ResultCode: rc, SpaceAvailable: &spaceAvailable}
}

func ListFilesResponseV2(rc common.ResultCode, names []string, spaceAvailable int64) v2.ListFilesResponse {
	return v2.ListFilesResponse{Success: rc == common.ResultSuccess, ResultCode: rc, Filenames: names, SpaceAvailable: &spaceAvailable}
}

func SetAppIconResponseV2(rc common.ResultCode) v2.SetAppIconResponse {
	return v2.SetAppIconResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

func SliderResponseV2(rc common.ResultCode, position *uint32) v2.SliderResponse {
	return v2.SliderResponse{Success: rc == common.ResultSuccess, ResultCode: rc, SliderPosition: position}
}

func ScrollableMessageResponseV2(rc common.ResultCode) v2.ScrollableMessageResponse {
	return v2.ScrollableMessageResponse{Success: rc == common.ResultSuccess, ResultCode: rc}
}

// SliderParams builds UI.Slider's bus params; v2-only.
func SliderParams(appID uint32, req v2.SliderRequest) hmi.SliderParams {
	return hmi.SliderParams{
		AppID:        appID,
		NumTicks:     req.NumTicks,
		Position:     req.Position,
		SliderHeader: req.SliderHeader,
		SliderFooter: req.SliderFooter,
		TimeoutMs:    req.TimeoutMs,
	}
}

// ScrollableMessageParams builds UI.ScrollableMessage's bus params; v2-only.
func ScrollableMessageParams(appID uint32, req v2.ScrollableMessageRequest) hmi.ScrollableMessageParams {
	return hmi.ScrollableMessageParams{
		AppID:                 appID,
		ScrollableMessageBody: req.ScrollableMessageBody,
		TimeoutMs:             req.TimeoutMs,
		SoftButtons:           req.SoftButtons,
	}
}

// SetAppIconParams builds UI.SetAppIcon's bus params; v2-only.
func SetAppIconParams(appID uint32, syncFileName string) hmi.SetAppIconParams {
	return hmi.SetAppIconParams{AppID: appID, SyncFileName: syncFileName}
}

// GenericResponseV1 builds the fallback response used when a request's
// method could not be resolved to a known handler.
func GenericResponseV1(rc common.ResultCode, info string) v1.GenericResponse {
	return v1.GenericResponse{Success: rc == common.ResultSuccess, ResultCode: rc, Info: &info}
}

func GenericResponseV2(rc common.ResultCode, info string) v2.GenericResponse {
	return v2.GenericResponse{Success: rc == common.ResultSuccess, ResultCode: rc, Info: &info}
}
