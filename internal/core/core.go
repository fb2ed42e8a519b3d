// Package core wires together Registry, CorrelationTables, CapabilityCache,
// SyncPBuffer and the IdAllocator behind the single logical mutex spec §5
// requires, and implements MobileHandlers/HmiHandlers as methods on the
// resulting facade. Spec §9 ("Global singletons... re-architect as plain
// objects wired at startup and passed by reference") is why this is one
// plain struct rather than package-level state: Core is constructed fresh
// by cmd/appmgrd and by every test.
package core

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/domain/capability"
	"github.com/latticeworks/appmgr/internal/domain/correlation"
	"github.com/latticeworks/appmgr/internal/domain/registry"
	"github.com/latticeworks/appmgr/internal/domain/syncp"
	"github.com/latticeworks/appmgr/internal/idalloc"
	"github.com/latticeworks/appmgr/internal/metrics"
	"github.com/latticeworks/appmgr/internal/protocol/hmi"
	"github.com/latticeworks/appmgr/internal/protocol/mobile"
)

// MobileSender is the out-of-scope mobile transport's inbound contract for
// outbound traffic (spec §1): accepts response/notification objects
// addressed by session key.
type MobileSender interface {
	SendResponse(sessionKey uint32, version mobile.Version, method mobile.MethodID, correlationID uint32, payload any) error
	SendNotification(sessionKey uint32, version mobile.Version, method mobile.MethodID, payload any) error
}

// HMISender is the out-of-scope HMI transport's inbound contract for
// outbound traffic: accepts requests (core assigns the id), responses, and
// notifications.
type HMISender interface {
	SendRequest(req hmi.Request) error
	SendResponse(resp hmi.Response) error
	SendNotification(n hmi.Notification) error
}

// DeviceHandler is the out-of-scope connection handler's contract: known
// device list, discover/connect surface.
type DeviceHandler interface {
	Discover() []string
	Connect(deviceName string) error
}

// Core is the application-manager facade. Its mutex is the single logical
// lock spec §5 mandates around Registry/CorrelationTables/CapabilityCache/
// SyncPBuffer mutation; it must never be held across an outbound Sender
// call.
type Core struct {
	mu sync.Mutex

	registry *registry.Registry
	tables   *correlation.Tables
	caps     *capability.Cache
	sp       *syncp.Buffer
	ids      *idalloc.Allocator
	pending  *pendingOps

	// driverDistraction caches the latest OnDriverDistraction state, one
	// slot per protocol version (spec §4.6).
	driverDistraction [3]string // index 1=v1, 2=v2; 0 unused

	mobileOut MobileSender
	hmiOut    HMISender
	devices   DeviceHandler

	// storageRoot/storageQuotaBytes back PutFile/DeleteFile/ListFiles' per-app
	// sandbox directory and free-space accounting (spec §4.5, §6).
	storageRoot       string
	storageQuotaBytes int64

	log     *zap.Logger
	metrics *metrics.Metrics
}

// Deps bundles Core's collaborators for New.
type Deps struct {
	MobileOut         MobileSender
	HMIOut            HMISender
	Devices           DeviceHandler
	SyncP             *syncp.Buffer
	StorageRoot       string
	StorageQuotaBytes int64
	Log               *zap.Logger
	Metrics           *metrics.Metrics
}

// New builds a Core with fresh Registry/CorrelationTables/CapabilityCache.
func New(deps Deps) *Core {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	root := deps.StorageRoot
	if root == "" {
		root = "./appdata"
	}
	quota := deps.StorageQuotaBytes
	if quota <= 0 {
		quota = 104857600
	}
	return &Core{
		registry:          registry.New(log),
		tables:            correlation.New(log),
		caps:              capability.New(),
		sp:                deps.SyncP,
		ids:               idalloc.New(),
		pending:           newPendingOps(),
		mobileOut:         deps.MobileOut,
		hmiOut:            deps.HMIOut,
		devices:           deps.Devices,
		storageRoot:       root,
		storageQuotaBytes: quota,
		log:               log,
		metrics:           deps.Metrics,
	}
}

// sandboxDir returns an app's per-session file sandbox directory (spec §4.5,
// §6): `<appName>_<appId>/` under the configured storage root. Caller need
// not hold the lock; State fields read here are immutable post-registration.
func (c *Core) sandboxDir(state *appstate.State) string {
	return filepath.Join(c.storageRoot, state.Name+"_"+strconv.FormatUint(uint64(state.SessionKey), 10))
}

// lock/unlock are thin wrappers kept private so every handler method makes
// the critical section boundary explicit at a glance.
func (c *Core) lock()   { c.mu.Lock() }
func (c *Core) unlock() { c.mu.Unlock() }

func mustMarshal(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return raw
}

// driverDistractionSlot returns the cache slot index for a protocol version.
func driverDistractionSlot(protocolVersion int) int {
	if protocolVersion == 2 {
		return 2
	}
	return 1
}

// snapshotCapabilities builds the RegisterAppInterface capability payload
// from the cache under lock.
func (c *Core) snapshotCapabilities() capability.Snapshot {
	return c.caps.Snapshot()
}

// lookupApp resolves an AppState by session key; caller must hold the lock.
func (c *Core) lookupApp(sessionKey uint32) (*appstate.State, bool) {
	return c.registry.Lookup(sessionKey)
}
