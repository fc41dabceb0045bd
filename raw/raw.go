//go:build !ios && !android && (amd64 || arm64)

// Package raw describes the narrow surface reapgo consumes from the host's
// C extension API.
//
// Nothing in this package is safe to use directly: handles are unchecked
// host pointers and most functions are legal only on the host's main
// thread. The reapgo package wraps it with validation and thread tokens.
// internal/bindings implements it on top of the real host and rawtest
// implements it in memory.
package raw

// Handle is an opaque, non-owning host object pointer.
type Handle uintptr

// Null is the nil host pointer.
const Null Handle = 0

// IsNull reports whether h is the nil pointer.
func (h Handle) IsNull() bool { return h == Null }

// Struct type names accepted by ValidatePtr2.
const (
	TypeProject  = "ReaProject*"
	TypeTrack    = "MediaTrack*"
	TypeItem     = "MediaItem*"
	TypeTake     = "MediaItem_Take*"
	TypeEnvelope = "TrackEnvelope*"
)

// CurrentProject is the EnumProjects index of the active project tab.
const CurrentProject int32 = -1

// InputFXFlag marks a TrackFX index as addressing the record input chain.
const InputFXFlag int32 = 0x1000000

// MainSection is the section id of the main action list.
const MainSection int32 = 0

// MaxLongMidiSize is the payload limit of a long MIDI event.
const MaxLongMidiSize = 256

// Track info parameter names.
const (
	TrackName       = "P_NAME"
	TrackVolume     = "D_VOL"
	TrackPan        = "D_PAN"
	TrackMute       = "B_MUTE"
	TrackSolo       = "I_SOLO"
	TrackRecArm     = "I_RECARM"
	TrackRecInput   = "I_RECINPUT"
	TrackRecMonitor = "I_RECMON"
	TrackSelected   = "I_SELECTED"
	TrackAutoMode   = "I_AUTOMODE"
	TrackNumber     = "IP_TRACKNUMBER"
	SendVolume      = "D_VOL"
	SendPan         = "D_PAN"
	SendMute        = "B_MUTE"
	ItemPosition    = "D_POSITION"
	ItemLength      = "D_LENGTH"
	ItemMute        = "B_MUTE"
	TakeName        = "P_NAME"
)

// MIDIEvent is one short event of a MIDI event list.
type MIDIEvent struct {
	FrameOffset int32
	Size        int32
	Message     [4]byte
}

// AudioBlock describes one audio hook invocation.
type AudioBlock struct {
	// Register is the host's audio_hook_register_t for this hook.
	Register       Handle
	IsPost         bool
	Length         int32
	SampleRate     float64
	InputChannels  int32
	OutputChannels int32
}
