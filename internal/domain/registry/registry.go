// Package registry owns the sessionKey->AppState map, the appName index,
// and the single active-application pointer (spec §4.3). It is confined to
// the dispatcher's consumer threads: the spec's "single logical mutex"
// (§5) is core.Core's mutex, not this package's, so Registry
// itself carries no lock — matching the teacher's plain-object pattern for
// dispatcher-confined state (spec §9, "Global singletons").
package registry

import (
	"errors"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/domain/appstate"
	"github.com/latticeworks/appmgr/internal/protocol/common"
)

var (
	// ErrAlreadyRegistered is returned by Register when the session key is
	// already occupied (invariant 1: re-registering requires unregister).
	ErrAlreadyRegistered = errors.New("registry: session already registered")
	// ErrNotRegistered is returned when a session key has no AppState.
	ErrNotRegistered = errors.New("registry: session not registered")
	// ErrAlreadyActive is returned by Activate against the app already active.
	ErrAlreadyActive = errors.New("registry: application already active")
)

// Registry maps sessions to AppState, apps by name, and tracks the single
// active application (invariant 2: at most one active app registry-wide).
type Registry struct {
	byKey    map[uint32]*appstate.State
	byName   map[string][]uint32
	activeAt *uint32
	log      *zap.Logger
}

// New builds an empty Registry.
func New(log *zap.Logger) *Registry {
	return &Registry{
		byKey:  make(map[uint32]*appstate.State),
		byName: make(map[string][]uint32),
		log:    log,
	}
}

// Register inserts a freshly built AppState, failing if the session key is
// already occupied.
func (r *Registry) Register(state *appstate.State) error {
	if _, exists := r.byKey[state.SessionKey]; exists {
		return ErrAlreadyRegistered
	}
	r.byKey[state.SessionKey] = state
	r.byName[state.Name] = append(r.byName[state.Name], state.SessionKey)
	return nil
}

// Lookup returns the AppState for a session key.
func (r *Registry) Lookup(sessionKey uint32) (*appstate.State, bool) {
	s, ok := r.byKey[sessionKey]
	return s, ok
}

// LookupByName returns the first registered session for an app name,
// matching ActivateApp's "take the first matching AppState" rule (§4.6).
func (r *Registry) LookupByName(appName string) (*appstate.State, bool) {
	keys, ok := r.byName[appName]
	if !ok || len(keys) == 0 {
		return nil, false
	}
	return r.Lookup(keys[0])
}

// Unregister frees an AppState, clearing the active pointer if it pointed
// at this session.
func (r *Registry) Unregister(sessionKey uint32) (*appstate.State, error) {
	state, ok := r.byKey[sessionKey]
	if !ok {
		return nil, ErrNotRegistered
	}
	delete(r.byKey, sessionKey)

	keys := r.byName[state.Name]
	for i, k := range keys {
		if k == sessionKey {
			r.byName[state.Name] = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if len(r.byName[state.Name]) == 0 {
		delete(r.byName, state.Name)
	}

	if r.activeAt != nil && *r.activeAt == sessionKey {
		r.activeAt = nil
	}
	return state, nil
}

// Active returns the currently active AppState, if any.
func (r *Registry) Active() (*appstate.State, bool) {
	if r.activeAt == nil {
		return nil, false
	}
	return r.Lookup(*r.activeAt)
}

// Activate marks sessionKey active. If a different app is currently active,
// the caller must already have torn down its HMI footprint and reduced it
// to BACKGROUND (spec §4.6 teardown path) before calling Activate — this
// method only flips the pointer and raises the new app's HMI level.
func (r *Registry) Activate(sessionKey uint32) (*appstate.State, error) {
	state, ok := r.byKey[sessionKey]
	if !ok {
		return nil, ErrNotRegistered
	}
	if r.activeAt != nil && *r.activeAt == sessionKey {
		return nil, ErrAlreadyActive
	}
	key := sessionKey
	r.activeAt = &key
	state.HMILevel = common.HMIFull
	return state, nil
}

// DeactivateActive reduces the active app's HMI level to BACKGROUND and
// returns it, leaving the active pointer untouched (a caller like ActivateApp
// clears it explicitly once the replacement is activated).
func (r *Registry) DeactivateActive() (*appstate.State, bool) {
	state, ok := r.Active()
	if !ok {
		return nil, false
	}
	state.HMILevel = common.HMIBackground
	return state, true
}

// Snapshot returns a defensive copy of all registered (appName, sessionKey)
// pairs, for GetAppList and the admin debug surface.
func (r *Registry) Snapshot() []Entry {
	entries := make([]Entry, 0, len(r.byKey))
	for key, state := range r.byKey {
		entries = append(entries, Entry{SessionKey: key, AppName: state.Name})
	}
	return entries
}

// Entry is one registry row returned by Snapshot.
type Entry struct {
	SessionKey uint32
	AppName    string
}

// Count returns the number of registered applications.
func (r *Registry) Count() int { return len(r.byKey) }
