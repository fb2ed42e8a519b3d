package core

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/id"
	"github.com/latticeworks/appmgr/internal/protocol/common"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
	"github.com/latticeworks/appmgr/internal/protocol/translate"
	v2 "github.com/latticeworks/appmgr/internal/protocol/v2"
)

// replyV2Only rejects a v1 request against a v2-only method (spec §4.5).
func (c *Core) replyV2Only(req mobile.RpcRequest) {
	c.sendMobileResponse(req, v1GenericResponse(common.ResultInvalidData, "v2 only"))
}

// handlePutFile runs the free-space check off the lock (spec §5's PutFile
// suspension point) and stages the file under the app's sandbox directory.
func (c *Core) handlePutFile(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}
	var p v2.PutFileRequest
	if err := decodeV2(req, &p); err != nil || p.SyncFileName == "" {
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultInvalidData, 0))
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultApplicationNotRegistered, 0))
		return
	}
	free := c.storageQuotaBytes - state.UsedBytes()
	alreadyExists := state.HasFile(p.SyncFileName)
	dir := c.sandboxDir(state)
	c.unlock()

	payloadLen := int64(len(req.BinaryData))
	if alreadyExists {
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultInvalidData, free))
		return
	}
	if free <= payloadLen {
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultGenericError, free))
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultGenericError, free))
		return
	}
	if err := os.WriteFile(filepath.Join(dir, p.SyncFileName), req.BinaryData, 0o644); err != nil {
		c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultGenericError, free))
		return
	}

	token := id.Default().FileToken()
	c.lock()
	state, exists = c.lookupApp(req.SessionKey)
	if exists {
		state.PutFile(p.SyncFileName, payloadLen, token)
		free = c.storageQuotaBytes - state.UsedBytes()
	}
	c.unlock()
	c.log.Info("staged uploaded file", zap.Uint32("session_key", req.SessionKey), zap.String("name", p.SyncFileName), zap.String("token", token))

	c.sendMobileResponse(req, translate.PutFileResponseV2(common.ResultSuccess, free))
}

func (c *Core) handleDeleteFile(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}
	var p v2.DeleteFileRequest
	if err := decodeV2(req, &p); err != nil || p.SyncFileName == "" {
		c.sendMobileResponse(req, translate.DeleteFileResponseV2(common.ResultInvalidData, 0))
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.sendMobileResponse(req, translate.DeleteFileResponseV2(common.ResultApplicationNotRegistered, 0))
		return
	}
	if !state.HasFile(p.SyncFileName) {
		free := c.storageQuotaBytes - state.UsedBytes()
		c.unlock()
		c.sendMobileResponse(req, translate.DeleteFileResponseV2(common.ResultInvalidData, free))
		return
	}
	dir := c.sandboxDir(state)
	c.unlock()

	rc := common.ResultSuccess
	if err := os.Remove(filepath.Join(dir, p.SyncFileName)); err != nil && !os.IsNotExist(err) {
		rc = common.ResultGenericError
	}

	c.lock()
	state, exists = c.lookupApp(req.SessionKey)
	var free int64
	if exists {
		if rc == common.ResultSuccess {
			state.DeleteFile(p.SyncFileName)
		}
		free = c.storageQuotaBytes - state.UsedBytes()
	}
	c.unlock()

	c.sendMobileResponse(req, translate.DeleteFileResponseV2(rc, free))
}

// handleListFiles reads the sandbox directory without recursion (spec §6).
func (c *Core) handleListFiles(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.sendMobileResponse(req, translate.ListFilesResponseV2(common.ResultApplicationNotRegistered, nil, 0))
		return
	}
	dir := c.sandboxDir(state)
	free := c.storageQuotaBytes - state.UsedBytes()
	c.unlock()

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		c.sendMobileResponse(req, translate.ListFilesResponseV2(common.ResultGenericError, nil, free))
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	c.sendMobileResponse(req, translate.ListFilesResponseV2(common.ResultSuccess, names, free))
}

func (c *Core) handleSlider(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}
	if !c.precheckActivatable(req) {
		return
	}
	var p v2.SliderRequest
	if err := decodeV2(req, &p); err != nil {
		c.sendMobileResponse(req, translate.SliderResponseV2(common.ResultInvalidData, nil))
		return
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putSlider(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUISlider, translate.SliderParams(req.SessionKey, p))
}

func (c *Core) handleScrollableMessage(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}
	if !c.precheckActivatable(req) {
		return
	}
	var p v2.ScrollableMessageRequest
	if err := decodeV2(req, &p); err != nil {
		c.sendMobileResponse(req, translate.ScrollableMessageResponseV2(common.ResultInvalidData))
		return
	}

	c.lock()
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putScrollableMessage(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUIScrollableMessage, translate.ScrollableMessageParams(req.SessionKey, p))
}

// handleSetAppIcon requires the file to already be staged via PutFile.
func (c *Core) handleSetAppIcon(req mobile.RpcRequest) {
	if !req.IsV2() {
		c.replyV2Only(req)
		return
	}
	var p v2.SetAppIconRequest
	if err := decodeV2(req, &p); err != nil || p.SyncFileName == "" {
		c.sendMobileResponse(req, translate.SetAppIconResponseV2(common.ResultInvalidData))
		return
	}

	c.lock()
	state, exists := c.lookupApp(req.SessionKey)
	if !exists {
		c.unlock()
		c.sendMobileResponse(req, translate.SetAppIconResponseV2(common.ResultApplicationNotRegistered))
		return
	}
	if !state.IsActivatable() {
		c.unlock()
		c.sendMobileResponse(req, translate.SetAppIconResponseV2(common.ResultRejected))
		return
	}
	if !state.HasFile(p.SyncFileName) {
		c.unlock()
		c.sendMobileResponse(req, translate.SetAppIconResponseV2(common.ResultInvalidData))
		return
	}
	id := c.allocateAndRecord(req.SessionKey)
	c.pending.putSetAppIcon(id, req)
	c.unlock()

	c.sendHMIRequest(id, hmi.MethodUISetAppIcon, translate.SetAppIconParams(req.SessionKey, p.SyncFileName))
}
