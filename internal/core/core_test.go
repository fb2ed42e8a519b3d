package core

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/domain/syncp"
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	v1 "github.com/latticeworks/appmgr/internal/protocol/v1"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// fakeMobileSender records every outbound mobile response/notification for
// assertions, standing in for the out-of-scope mobile transport.
type fakeMobileSender struct {
	mu            sync.Mutex
	responses     []fakeMobileMessage
	notifications []fakeMobileMessage
}

type fakeMobileMessage struct {
	sessionKey uint32
	method     mobile.MethodID
	payload    any
}

func (f *fakeMobileSender) SendResponse(sessionKey uint32, version mobile.Version, method mobile.MethodID, correlationID uint32, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeMobileMessage{sessionKey: sessionKey, method: method, payload: payload})
	return nil
}

func (f *fakeMobileSender) SendNotification(sessionKey uint32, version mobile.Version, method mobile.MethodID, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, fakeMobileMessage{sessionKey: sessionKey, method: method, payload: payload})
	return nil
}

func (f *fakeMobileSender) lastResponse() fakeMobileMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		panic("no responses recorded")
	}
	return f.responses[len(f.responses)-1]
}

// fakeHMISender records every outbound HMI request/response/notification.
type fakeHMISender struct {
	mu            sync.Mutex
	requests      []hmi.Request
	responses     []hmi.Response
	notifications []hmi.Notification
}

func (f *fakeHMISender) SendRequest(req hmi.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakeHMISender) SendResponse(resp hmi.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeHMISender) SendNotification(n hmi.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

func newTestCore(t *testing.T) (*Core, *fakeMobileSender, *fakeHMISender) {
	t.Helper()
	root := t.TempDir()
	mobileOut := &fakeMobileSender{}
	hmiOut := &fakeHMISender{}
	sp := syncp.New(2, 4, zap.NewNop())
	t.Cleanup(sp.Stop)
	c := New(Deps{
		MobileOut:         mobileOut,
		HMIOut:            hmiOut,
		SyncP:             sp,
		StorageRoot:       root,
		StorageQuotaBytes: 100,
		Log:               zap.NewNop(),
	})
	return c, mobileOut, hmiOut
}

func v2Request(sessionKey uint32, method mobile.MethodID, payload any) mobile.RpcRequest {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return mobile.RpcRequest{SessionKey: sessionKey, Method: method, V2Payload: raw, CorrelationID: 1}
}

func TestRegisterAppInterfaceSucceedsAndNotifiesHMI(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)

	req := v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{
		AppName:         "Nav",
		LanguageDesired: common.LanguageEnUS,
		SyncMsgVersion:  common.SyncMsgVersion{Major: 2, Minor: 0},
	})
	c.HandleMobile(req)

	resp := mobileOut.lastResponse()
	assert.Equal(t, mobile.MethodRegisterAppInterface, resp.method)
	registerResp, ok := resp.payload.(v2.RegisterAppInterfaceResponse)
	require.True(t, ok)
	assert.True(t, registerResp.Success)
	assert.Equal(t, common.ResultSuccess, registerResp.ResultCode)

	state, ok := c.lookupApp(1)
	require.True(t, ok)
	assert.Equal(t, "Nav", state.Name)

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.NotEmpty(t, hmiOut.notifications)
	assert.Equal(t, hmi.MethodAppLinkCoreOnAppRegistered, hmiOut.notifications[len(hmiOut.notifications)-1].Method)
}

func TestRegisterAppInterfaceRejectsDuplicateSession(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	req := v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"})
	c.HandleMobile(req)
	c.HandleMobile(req)

	resp := mobileOut.lastResponse().payload.(v2.RegisterAppInterfaceResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultApplicationRegisteredAlready, resp.ResultCode)
}

func TestSubscribeButtonRejectedWhenHMILevelNone(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	c.HandleMobile(v2Request(1, mobile.MethodSubscribeButton, v2.SubscribeButtonRequest{ButtonName: "OK"}))

	resp := mobileOut.lastResponse().payload.(v2.GenericResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultRejected, resp.ResultCode)
}

func TestSubscribeButtonSucceedsOnceActivated(t *testing.T) {
	c, _, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	c.HandleMobile(v2Request(1, mobile.MethodSubscribeButton, v2.SubscribeButtonRequest{ButtonName: "OK"}))

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.Len(t, hmiOut.requests, 1)
	assert.Equal(t, hmi.MethodButtonsSubscribe, hmiOut.requests[0].Method)

	session, ok := c.tables.ResolveButton("OK")
	assert.True(t, ok)
	assert.Equal(t, uint32(1), session)
}

func TestPutFileStagesUnderSandboxAndTracksFreeSpace(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	req := v2Request(1, mobile.MethodPutFile, v2.PutFileRequest{SyncFileName: "icon.png"})
	req.BinaryData = []byte("hello world") // 11 bytes, well under the 100-byte test quota

	c.HandleMobile(req)

	resp := mobileOut.lastResponse().payload.(v2.PutFileResponse)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.SpaceAvailable)
	assert.Equal(t, int64(89), *resp.SpaceAvailable)

	state, ok := c.lookupApp(1)
	require.True(t, ok)
	dir := c.sandboxDir(state)
	data, err := os.ReadFile(dir + "/icon.png")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestPutFileRejectsWhenPayloadExceedsFreeSpace(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	req := v2Request(1, mobile.MethodPutFile, v2.PutFileRequest{SyncFileName: "huge.bin"})
	req.BinaryData = make([]byte, 200) // exceeds the 100-byte test quota

	c.HandleMobile(req)

	resp := mobileOut.lastResponse().payload.(v2.PutFileResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultGenericError, resp.ResultCode)
}

func TestPutFileFromV1SessionIsRejected(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	req := mobile.RpcRequest{SessionKey: 1, Method: mobile.MethodPutFile, V1Payload: json.RawMessage(`{}`)}
	c.HandleMobile(req)

	resp, ok := mobileOut.lastResponse().payload.(v1.GenericResponse)
	require.True(t, ok)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultInvalidData, resp.ResultCode)
}

func TestAddCommandFanoutRepliesOnlyOnceBothCounterpartsAnswer(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	c.HandleMobile(v2Request(1, mobile.MethodAddCommand, v2.AddCommandRequest{
		CmdID:      10,
		MenuParams: &common.MenuParams{},
		VRCommands: []string{"go"},
	}))

	hmiOut.mu.Lock()
	require.Len(t, hmiOut.requests, 2, "AddCommand with both UI and VR counterparts must fan out to two bus requests")
	uiID, vrID := hmiOut.requests[0].ID, hmiOut.requests[1].ID
	hmiOut.mu.Unlock()

	initialResponses := len(mobileOut.responses)

	c.HandleHMI(hmi.Command{ID: &uiID, Result: json.RawMessage(`{"resultCode":"SUCCESS"}`)})
	mobileOut.mu.Lock()
	stillNoReply := len(mobileOut.responses) == initialResponses
	mobileOut.mu.Unlock()
	assert.True(t, stillNoReply, "must not reply until both counterparts have answered")

	c.HandleHMI(hmi.Command{ID: &vrID, Result: json.RawMessage(`{"resultCode":"SUCCESS"}`)})

	resp, ok := mobileOut.lastResponse().payload.(v2.AddCommandResponse)
	require.True(t, ok)
	assert.True(t, resp.Success)
	assert.Equal(t, common.ResultSuccess, resp.ResultCode)
}

func TestUnregisterAppInterfaceTearsDownCommandsAndDropsCorrelation(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	c.HandleMobile(v2Request(1, mobile.MethodAddCommand, v2.AddCommandRequest{
		CmdID:      10,
		MenuParams: &common.MenuParams{},
	}))

	hmiOut.mu.Lock()
	requestsBeforeUnregister := len(hmiOut.requests)
	hmiOut.mu.Unlock()

	c.HandleMobile(v2Request(1, mobile.MethodUnregisterAppInterface, struct{}{}))

	resp, ok := mobileOut.lastResponse().payload.(v2.UnregisterAppInterfaceResponse)
	require.True(t, ok)
	assert.True(t, resp.Success)

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	assert.Greater(t, len(hmiOut.requests), requestsBeforeUnregister, "teardown must send a DeleteCommand for the registered UI command")

	_, exists := c.lookupApp(1)
	assert.False(t, exists, "registry entry must be gone after unregister")
	outbound, cmd, buttons, _ := c.tables.Sizes()
	assert.Zero(t, outbound)
	assert.Zero(t, cmd)
	assert.Zero(t, buttons)
}

func TestUnregisterAppInterfaceOnUnknownSessionIsRejected(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(99, mobile.MethodUnregisterAppInterface, struct{}{}))

	resp := mobileOut.lastResponse().payload.(v2.GenericResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultApplicationNotRegistered, resp.ResultCode)
}

func TestUnsubscribeButtonReleasesSubscription(t *testing.T) {
	c, _, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	c.HandleMobile(v2Request(1, mobile.MethodSubscribeButton, v2.SubscribeButtonRequest{ButtonName: "OK"}))
	_, subscribed := c.tables.ResolveButton("OK")
	require.True(t, subscribed)

	c.HandleMobile(v2Request(1, mobile.MethodUnsubscribeButton, v2.SubscribeButtonRequest{ButtonName: "OK"}))

	_, stillSubscribed := c.tables.ResolveButton("OK")
	assert.False(t, stillSubscribed)

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.Len(t, hmiOut.requests, 2)
	assert.Equal(t, hmi.MethodButtonsUnsubscribe, hmiOut.requests[1].Method)
}

func TestShowRoundTripsThroughPendingOpsToMobileResponse(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	field := "hello"
	c.HandleMobile(v2Request(1, mobile.MethodShow, v2.ShowRequest{MainField1: &field}))

	hmiOut.mu.Lock()
	require.Len(t, hmiOut.requests, 1)
	assert.Equal(t, hmi.MethodUIShow, hmiOut.requests[0].Method)
	showID := hmiOut.requests[0].ID
	hmiOut.mu.Unlock()

	c.HandleHMI(hmi.Command{ID: &showID, Result: json.RawMessage(`{"resultCode":"SUCCESS"}`)})

	resp, ok := mobileOut.lastResponse().payload.(v2.ShowResponse)
	require.True(t, ok)
	assert.True(t, resp.Success)
	assert.Equal(t, common.ResultSuccess, resp.ResultCode)
}

func TestShowRejectedBeforeActivation(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	c.HandleMobile(v2Request(1, mobile.MethodShow, v2.ShowRequest{}))

	resp := mobileOut.lastResponse().payload.(v2.GenericResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultRejected, resp.ResultCode)

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	assert.Empty(t, hmiOut.requests)
}

func TestUnknownMethodYieldsInvalidData(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, "NotAMethod", struct{}{}))

	resp := mobileOut.lastResponse().payload.(v2.GenericResponse)
	assert.False(t, resp.Success)
	assert.Equal(t, common.ResultInvalidData, resp.ResultCode)
}

func TestUnregisterAppInterfaceSweepsPendingOpsSoStaleHMIResponseIsDropped(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	field := "hello"
	c.HandleMobile(v2Request(1, mobile.MethodShow, v2.ShowRequest{MainField1: &field}))

	hmiOut.mu.Lock()
	require.Len(t, hmiOut.requests, 1)
	showID := hmiOut.requests[0].ID
	hmiOut.mu.Unlock()

	c.HandleMobile(v2Request(1, mobile.MethodUnregisterAppInterface, struct{}{}))
	mobileOut.mu.Lock()
	responsesAfterUnregister := len(mobileOut.responses)
	mobileOut.mu.Unlock()

	// The HMI's UI.ShowResponse for the in-flight Show now arrives after the
	// app is gone. Without sweeping pendingOps this would still resolve and
	// produce a mobile response for a session that no longer exists.
	c.HandleHMI(hmi.Command{ID: &showID, Result: json.RawMessage(`{"resultCode":"SUCCESS"}`)})

	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	assert.Equal(t, responsesAfterUnregister, len(mobileOut.responses), "a stale HMI response for an unregistered session must not produce a mobile response")
}

func TestHMIOnReadyQueriesUIVRAndTTSLanguage(t *testing.T) {
	c, _, hmiOut := newTestCore(t)
	c.handleHMIOnReady()

	hmiOut.mu.Lock()
	methods := make([]hmi.Method, len(hmiOut.requests))
	ids := make(map[hmi.Method]uint32, len(hmiOut.requests))
	for i, r := range hmiOut.requests {
		methods[i] = r.Method
		ids[r.Method] = r.ID
	}
	hmiOut.mu.Unlock()
	assert.Contains(t, methods, hmi.MethodUIGetLanguage)
	assert.Contains(t, methods, hmi.MethodVRGetLanguage)
	assert.Contains(t, methods, hmi.MethodTTSGetLanguage)

	c.HandleHMI(hmi.Command{ID: idPtr(ids[hmi.MethodUIGetLanguage]), Result: json.RawMessage(`{"language":"EN-US"}`)})
	c.HandleHMI(hmi.Command{ID: idPtr(ids[hmi.MethodVRGetLanguage]), Result: json.RawMessage(`{"language":"ES-MX"}`)})
	c.HandleHMI(hmi.Command{ID: idPtr(ids[hmi.MethodTTSGetLanguage]), Result: json.RawMessage(`{"language":"FR-CA"}`)})

	c.lock()
	snapshot := c.caps.Snapshot()
	vr, tts := c.caps.VRLanguage, c.caps.TTSLanguage
	c.unlock()

	assert.Equal(t, common.LanguageEnUS, snapshot.Language)
	assert.Equal(t, common.Language("ES-MX"), vr)
	assert.Equal(t, common.Language("FR-CA"), tts)
}

func idPtr(v uint32) *uint32 { return &v }

func TestSendDataWithURLEnqueuesDeferredJobAndDoesNotNotifyActiveApp(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	// Registration already sent OnHMIStatus(NONE); only count what SendData adds.
	mobileOut.mu.Lock()
	notifsBefore := len(mobileOut.notifications)
	mobileOut.mu.Unlock()

	url := "127.0.0.1:1"
	sendID := uint32(999)
	c.HandleHMI(hmi.Command{
		ID:     &sendID,
		Method: hmi.MethodAppLinkCoreSendData,
		Params: marshalParams(t, hmi.SendDataParams{AppID: 1, Data: []byte("raw-bytes"), URL: &url}),
	})

	hmiOut.mu.Lock()
	require.Len(t, hmiOut.responses, 1)
	assert.Equal(t, hmi.ResultSuccess, mustDecodeSendDataResult(t, hmiOut.responses[0]).ResultCode)
	hmiOut.mu.Unlock()

	c.lock()
	raw := c.sp.Raw()
	c.unlock()
	assert.Equal(t, []byte("raw-bytes"), raw, "raw payload must be stored via SetRaw regardless of the URL branch")

	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	assert.Empty(t, mobileOut.notifications[notifsBefore:], "a URL-bearing SendData must not notify the active app directly")
}

func TestSendDataWithoutURLNotifiesActiveAppWithEncodedSyncPData(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	// Registration already sent OnHMIStatus(NONE); only count what SendData adds.
	mobileOut.mu.Lock()
	notifsBefore := len(mobileOut.notifications)
	mobileOut.mu.Unlock()

	sendID := uint32(1000)
	c.HandleHMI(hmi.Command{
		ID:     &sendID,
		Method: hmi.MethodAppLinkCoreSendData,
		Params: marshalParams(t, hmi.SendDataParams{AppID: 1, Data: []byte("push-me")}),
	})

	mobileOut.mu.Lock()
	require.Len(t, mobileOut.notifications[notifsBefore:], 1)
	notification := mobileOut.notifications[notifsBefore]
	mobileOut.mu.Unlock()

	assert.Equal(t, uint32(1), notification.sessionKey)
	assert.Equal(t, mobile.MethodOnEncodedSyncPData, notification.method)
	payload, ok := notification.payload.(v2.OnEncodedSyncPDataNotification)
	require.True(t, ok)
	assert.Equal(t, []byte("push-me"), payload.Data)

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.Len(t, hmiOut.responses, 1)
	assert.Equal(t, hmi.ResultSuccess, mustDecodeSendDataResult(t, hmiOut.responses[0]).ResultCode)
}

func TestSendDataWithoutURLAndNoActiveAppSendsNoNotification(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)

	sendID := uint32(1001)
	c.HandleHMI(hmi.Command{
		ID:     &sendID,
		Method: hmi.MethodAppLinkCoreSendData,
		Params: marshalParams(t, hmi.SendDataParams{Data: []byte("orphan")}),
	})

	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	assert.Empty(t, mobileOut.notifications, "with no active app there is nowhere to push OnEncodedSyncPData")

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.Len(t, hmiOut.responses, 1)
	assert.Equal(t, hmi.ResultSuccess, mustDecodeSendDataResult(t, hmiOut.responses[0]).ResultCode)
}

func TestOnCommandForwardsOnlyToTheAppNamedByBusAppID(t *testing.T) {
	c, mobileOut, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.HandleMobile(v2Request(2, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Media"}))
	c.lock()
	_, err := c.registry.Activate(1)
	require.NoError(t, err)
	c.unlock()

	// Both registrations already sent OnHMIStatus(NONE); only count OnCommand.
	mobileOut.mu.Lock()
	notifsBefore := len(mobileOut.notifications)
	mobileOut.mu.Unlock()

	c.HandleMobile(v2Request(1, mobile.MethodAddCommand, v2.AddCommandRequest{
		CmdID:      10,
		MenuParams: &common.MenuParams{},
	}))
	hmiOut.mu.Lock()
	require.Len(t, hmiOut.requests, 1)
	uiID := hmiOut.requests[0].ID
	hmiOut.mu.Unlock()
	c.HandleHMI(hmi.Command{ID: &uiID, Result: json.RawMessage(`{"resultCode":"SUCCESS"}`)})

	// cmd_id 10 belongs to session 1's app, but the bus notification names
	// appId 2 (a different, uninvolved app). Wrong-owner notifications must
	// be dropped rather than resolved by scanning every app for cmd_id 10.
	c.HandleHMI(hmi.Command{Method: hmi.MethodUIOnCommand, Params: marshalParams(t, hmi.OnCommandParams{AppID: 2, CmdID: 10})})
	mobileOut.mu.Lock()
	notifsAfterWrongOwner := len(mobileOut.notifications) - notifsBefore
	mobileOut.mu.Unlock()
	assert.Zero(t, notifsAfterWrongOwner, "a cmd_id owned by a different app must not be forwarded")

	c.HandleHMI(hmi.Command{Method: hmi.MethodUIOnCommand, Params: marshalParams(t, hmi.OnCommandParams{AppID: 1, CmdID: 10})})
	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	require.Len(t, mobileOut.notifications[notifsBefore:], 1)
	assert.Equal(t, uint32(1), mobileOut.notifications[notifsBefore].sessionKey)
	assert.Equal(t, mobile.MethodOnCommand, mobileOut.notifications[notifsBefore].method)
}

func TestOnCommandUnregisteredAppIDYieldsNoNotification(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleHMI(hmi.Command{Method: hmi.MethodUIOnCommand, Params: marshalParams(t, hmi.OnCommandParams{AppID: 99, CmdID: 1})})

	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	assert.Empty(t, mobileOut.notifications)
}

func TestOnSystemContextForcesFullOnlyOnMainTransition(t *testing.T) {
	c, mobileOut, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	require.NoError(t, err)
	state, _ := c.lookupApp(1)
	state.HMILevel = common.HMILimited
	c.unlock()

	// Registration already sent OnHMIStatus(NONE); only count what follows.
	mobileOut.mu.Lock()
	notifsBefore := len(mobileOut.notifications)
	mobileOut.mu.Unlock()

	c.HandleHMI(hmi.Command{Method: hmi.MethodAppLinkCoreOnSystemContext, Params: marshalParams(t, hmi.OnSystemContextParams{AppID: 1, SystemContext: common.SystemContextVRSession})})
	mobileOut.mu.Lock()
	notifsAfterNonMain := len(mobileOut.notifications) - notifsBefore
	mobileOut.mu.Unlock()
	assert.Zero(t, notifsAfterNonMain, "a non-MAIN context transition must not emit OnHMIStatus")
	c.lock()
	assert.Equal(t, common.HMILimited, state.HMILevel, "hmi_level must be untouched outside the MAIN transition")
	c.unlock()

	c.HandleHMI(hmi.Command{Method: hmi.MethodAppLinkCoreOnSystemContext, Params: marshalParams(t, hmi.OnSystemContextParams{AppID: 1, SystemContext: common.SystemContextMain})})

	c.lock()
	assert.Equal(t, common.HMIFull, state.HMILevel, "MAIN must force hmi_level to FULL")
	c.unlock()

	mobileOut.mu.Lock()
	defer mobileOut.mu.Unlock()
	require.Len(t, mobileOut.notifications[notifsBefore:], 1)
	payload, ok := mobileOut.notifications[notifsBefore].payload.(v2.OnHMIStatusNotification)
	require.True(t, ok)
	assert.Equal(t, common.HMIFull, payload.HMILevel)
	assert.Equal(t, common.SystemContextMain, payload.SystemContext)
}

func TestPutFileStampsUploadedFileWithAFileToken(t *testing.T) {
	c, _, _ := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))

	req := v2Request(1, mobile.MethodPutFile, v2.PutFileRequest{SyncFileName: "icon.png"})
	req.BinaryData = []byte("hello world")
	c.HandleMobile(req)

	c.lock()
	defer c.unlock()
	state, ok := c.lookupApp(1)
	require.True(t, ok)
	uploaded, ok := state.UploadedFiles["icon.png"]
	require.True(t, ok)
	assert.NotEmpty(t, uploaded.Token, "PutFile must stamp a FileToken for log correlation")
}

func TestSendDataWithURLMintsAJobToken(t *testing.T) {
	c, _, hmiOut := newTestCore(t)
	c.HandleMobile(v2Request(1, mobile.MethodRegisterAppInterface, v2.RegisterAppInterfaceRequest{AppName: "Nav"}))
	c.lock()
	_, err := c.registry.Activate(1)
	c.unlock()
	require.NoError(t, err)

	url := "127.0.0.1:1"
	sendID := uint32(2000)
	c.HandleHMI(hmi.Command{
		ID:     &sendID,
		Method: hmi.MethodAppLinkCoreSendData,
		Params: marshalParams(t, hmi.SendDataParams{AppID: 1, Data: []byte("raw"), URL: &url}),
	})

	select {
	case result := <-c.sp.Results():
		assert.NotEmpty(t, result.Token, "the deferred job's outcome must carry the same JobToken it was queued with")
	case <-time.After(10 * time.Second): // the worker first sleeps the 5s default timeout
		t.Fatal("timed out waiting for the deferred syncp job to complete")
	}

	hmiOut.mu.Lock()
	defer hmiOut.mu.Unlock()
	require.Len(t, hmiOut.responses, 1)
}

func marshalParams(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func mustDecodeSendDataResult(t *testing.T, resp hmi.Response) hmi.SendDataResult {
	t.Helper()
	var result hmi.SendDataResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	return result
}
