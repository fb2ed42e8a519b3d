// Package appstate defines the per-application record owned by the
// registry and mutated exclusively on a dispatcher consumer thread. Fields
// mirror the data model's AppState: identity, negotiated capabilities, HMI
// activity state, and the menu/command/choice-set/file bookkeeping needed
// to replay or tear down an app's HMI footprint.
package appstate

import (
	"time"

	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/protocol/common"
)

// Command records one registered command and which counterparts (UI, VR)
// it has. The count of fanned-out HMI sub-requests still outstanding for it
// is kept separately, in State.UnrespondedByCmd.
type Command struct {
	CmdID      uint32
	MenuParams *common.MenuParams
	VRCommands []string
	HasUI      bool
	HasVR      bool
}

// Menu records one registered submenu.
type Menu struct {
	MenuID   uint32
	Name     string
	Position *uint32
}

// ChoiceSet records one registered interaction choice set.
type ChoiceSet struct {
	SetID   uint32
	Choices []common.Choice
}

// PendingCommand is what's needed to emit the single upstream response once
// every fanned-out counterpart of a cmd_id has replied.
type PendingCommand struct {
	CorrelationID uint32
	IsDelete      bool
	// Failed is set if any counterpart's response came back non-SUCCESS;
	// the aggregate mobile reply reports failure if any counterpart failed.
	Failed bool
}

// UploadedFile records one staged file under the app's sandbox directory.
// Token is the ULID minted by id.Generator.FileToken at staging time, kept
// around so ListFiles/DeleteFile logging can correlate back to the PutFile
// call that created the entry.
type UploadedFile struct {
	Name      string
	SizeBytes int64
	Token     string
}

// State is the per-app record keyed by session key in the Registry.
type State struct {
	SessionKey uint32
	Name       string

	NgnScreenName   string
	VRSynonyms      []string
	TTSName         []common.TTSChunk
	ProtocolVersion int // immutable once set at registration, invariant 1

	IsMedia         bool
	UsesVehicleData bool // v1 only

	LanguageDesired            common.Language
	HMIDisplayLanguageDesired  common.Language // v2 only
	AppTypes                   []common.AppType // v2 only
	SyncMsgVersion             common.SyncMsgVersion

	HMILevel      common.HMILevel
	AudioState    common.AudioStreamingState
	SystemContext common.SystemContext

	Menus         map[uint32]*Menu
	MenuCommands  map[uint32]map[uint32]struct{} // menuID -> set of cmdID
	Commands      map[uint32]*Command             // cmdID -> Command
	UnrespondedByCmd map[uint32]uint32
	// PendingCmdReply records the originating mobile request's correlation
	// id for a cmd_id whose AddCommand/DeleteCommand fanout has not yet
	// fully resolved (invariant 4: released only on the 1->0 transition).
	PendingCmdReply map[uint32]PendingCommand

	ChoiceSets map[uint32]*ChoiceSet

	UploadedFiles map[string]UploadedFile

	RegisteredAt time.Time
	Log          *zap.Logger
}

// New builds a freshly-registered AppState with the invariant initial
// values: hmi_level=NONE, system_context=MAIN (invariant list, spec §3).
func New(sessionKey uint32, name string, protocolVersion int, log *zap.Logger) *State {
	return &State{
		SessionKey:       sessionKey,
		Name:             name,
		ProtocolVersion:  protocolVersion,
		HMILevel:         common.HMINone,
		AudioState:       common.AudioNotAudible,
		SystemContext:    common.SystemContextMain,
		Menus:            make(map[uint32]*Menu),
		MenuCommands:     make(map[uint32]map[uint32]struct{}),
		Commands:         make(map[uint32]*Command),
		UnrespondedByCmd: make(map[uint32]uint32),
		PendingCmdReply:  make(map[uint32]PendingCommand),
		ChoiceSets:       make(map[uint32]*ChoiceSet),
		UploadedFiles:    make(map[string]UploadedFile),
		RegisteredAt:     time.Now(),
		Log:              log,
	}
}

// IsActivatable reports whether the app can receive a visible HMI effect
// (invariant 6): rejected synchronously with REJECTED when hmi_level==NONE.
func (s *State) IsActivatable() bool {
	return s.HMILevel != common.HMINone
}

// HasMenu reports whether a menu id is registered on this app.
func (s *State) HasMenu(menuID uint32) bool {
	_, ok := s.Menus[menuID]
	return ok
}

// HasChoiceSet reports whether a choice set id is registered on this app.
func (s *State) HasChoiceSet(setID uint32) bool {
	_, ok := s.ChoiceSets[setID]
	return ok
}

// AddCommand registers a command's counterparts, seeding the outstanding
// counter to the number of counterparts fanned out (invariant 3).
func (s *State) AddCommand(cmdID uint32, menuParams *common.MenuParams, vrCommands []string) *Command {
	cmd := &Command{CmdID: cmdID, MenuParams: menuParams, VRCommands: vrCommands}
	cmd.HasUI = menuParams != nil
	cmd.HasVR = len(vrCommands) > 0

	outstanding := uint32(0)
	if cmd.HasUI {
		outstanding++
	}
	if cmd.HasVR {
		outstanding++
	}
	s.Commands[cmdID] = cmd
	s.UnrespondedByCmd[cmdID] = outstanding

	if menuParams != nil && menuParams.ParentID != nil {
		set, ok := s.MenuCommands[*menuParams.ParentID]
		if !ok {
			set = make(map[uint32]struct{})
			s.MenuCommands[*menuParams.ParentID] = set
		}
		set[cmdID] = struct{}{}
	}
	return cmd
}

// ResolveCommandReply decrements the outstanding counter for cmdID and
// reports whether it has just reached zero (invariant 4: a mobile response
// is sent iff the counter transitions from 1 to 0).
func (s *State) ResolveCommandReply(cmdID uint32) bool {
	remaining, ok := s.UnrespondedByCmd[cmdID]
	if !ok || remaining == 0 {
		return false
	}
	remaining--
	s.UnrespondedByCmd[cmdID] = remaining
	return remaining == 0
}

// RemoveCommand deletes a command's bookkeeping, used once its DeleteCommand
// fanout has fully resolved or during teardown.
func (s *State) RemoveCommand(cmdID uint32) {
	delete(s.Commands, cmdID)
	delete(s.UnrespondedByCmd, cmdID)
	delete(s.PendingCmdReply, cmdID)
	for _, set := range s.MenuCommands {
		delete(set, cmdID)
	}
}

// CommandsUnderMenu returns the command ids parented to a menu, used by
// DeleteSubMenu's cascade (spec §4.5).
func (s *State) CommandsUnderMenu(menuID uint32) []uint32 {
	set, ok := s.MenuCommands[menuID]
	if !ok {
		return nil
	}
	ids := make([]uint32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// RemoveMenu deletes a menu's bookkeeping.
func (s *State) RemoveMenu(menuID uint32) {
	delete(s.Menus, menuID)
	delete(s.MenuCommands, menuID)
}

// PutFile stages a file record after the free-space check has passed
// (spec §4.5 PutFile).
func (s *State) PutFile(name string, sizeBytes int64, token string) {
	s.UploadedFiles[name] = UploadedFile{Name: name, SizeBytes: sizeBytes, Token: token}
}

// HasFile reports whether a file of this name is already staged.
func (s *State) HasFile(name string) bool {
	_, ok := s.UploadedFiles[name]
	return ok
}

// DeleteFile removes a staged file record.
func (s *State) DeleteFile(name string) {
	delete(s.UploadedFiles, name)
}

// UsedBytes sums the size of every staged file, for the PutFile free-space
// check (spec §4.5).
func (s *State) UsedBytes() int64 {
	var total int64
	for _, f := range s.UploadedFiles {
		total += f.SizeBytes
	}
	return total
}

// FileNames lists staged file names in map iteration order; ListFiles
// (spec §4.5) does not promise any particular ordering.
func (s *State) FileNames() []string {
	names := make([]string, 0, len(s.UploadedFiles))
	for name := range s.UploadedFiles {
		names = append(names, name)
	}
	return names
}
