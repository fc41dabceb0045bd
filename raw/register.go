//go:build !ios && !android && (amd64 || arm64)

package raw

// Kind is a host registration kind.
type Kind int

const (
	// HookCommand registers the global command hook (hookcommand2).
	HookCommand Kind = iota + 1
	// ToggleAction registers the global toggle state hook (toggleaction).
	ToggleAction
	// HookPostCommand registers the global post-command hook (hookpostcommand).
	HookPostCommand
	// Gaccel adds an action to the action list (gaccel).
	Gaccel
	// ControlSurface registers a control surface instance (csurf_inst).
	ControlSurface
	// AudioHook registers a hardware audio hook (Audio_RegHardwareHook).
	AudioHook
)

var kindNames = [...]string{
	HookCommand:     "hookcommand2",
	ToggleAction:    "toggleaction",
	HookPostCommand: "hookpostcommand",
	Gaccel:          "gaccel",
	ControlSurface:  "csurf_inst",
	AudioHook:       "audio_hook",
}

// String returns the host's registration name.
func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Registrar is the host's registration entry point.
//
// Add registers one callback binding. key is the identity the native
// trampoline hands back on every invocation: the command id for Gaccel,
// the surface key for ControlSurface and the slot index for AudioHook; the
// three global hooks ignore it. name is the action description for Gaccel
// and the surface type string for ControlSurface. The returned handle is
// the host-side registration object that Remove takes back.
type Registrar interface {
	AllocateCommandID(name string) int32
	Add(kind Kind, key uintptr, name string) (Handle, bool)
	Remove(kind Kind, h Handle) bool
}

// Callbacks receives every host-initiated native callback. Implementations
// must not let a panic escape.
type Callbacks interface {
	HookCommand(command, flag int32) bool
	ToggleAction(command int32) int32
	HookPostCommand(command, flag int32)
	// OnAudioBuffer runs on the audio thread, twice per block.
	OnAudioBuffer(slot uintptr, block AudioBlock)
	SurfaceEvent(key uintptr, ev SurfaceEvent) int32
}

// SurfaceEventKind identifies an IReaperControlSurface virtual method.
type SurfaceEventKind int

const (
	SurfaceRun SurfaceEventKind = iota
	SurfaceCloseNoReset
	SurfaceSetTrackListChange
	SurfaceSetVolume
	SurfaceSetPan
	SurfaceSetMute
	SurfaceSetSelected
	SurfaceSetSolo
	SurfaceSetRecArm
	SurfaceSetPlayState
	SurfaceSetRepeatState
	SurfaceSetTrackTitle
	SurfaceSetAutoMode
	SurfaceResetCachedVolPanStates
	SurfaceOnTrackSelection
	SurfaceGetTouchState
	SurfaceIsKeyDown
	SurfaceExtended
)

// SurfaceEvent is one decoded control surface call. Fields are populated
// according to Kind; pointer arguments of extended calls are already
// dereferenced.
type SurfaceEvent struct {
	Kind  SurfaceEventKind
	Track Handle
	Value float64
	Int   int32
	Text  string

	// Play, Pause and Rec carry SetPlayState. Flag carries the boolean
	// setters.
	Play, Pause, Rec bool
	Flag             bool

	Ext ExtArgs
}

// ExtArgs are the decoded arguments of an Extended call.
type ExtArgs struct {
	Code   int32
	Track  Handle
	Ints   [2]int32
	Floats [2]float64
	// Set is true when the third parameter was non-null.
	Set bool
}

// CallbackSink is implemented by raw layers whose native trampolines
// forward into a Callbacks value.
type CallbackSink interface {
	SetCallbacks(cb Callbacks)
}
