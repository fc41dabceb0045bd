//go:build !ios && !android && (amd64 || arm64)

package raw

// Functions is the host function table. Method names follow the host's
// exported function names; unless noted, every method is legal only on the
// main thread.
//
// Functions taking a buf read or write a NUL-terminated string in place,
// the way the host's string getters do.
type Functions interface {
	// Liveness probe. Safe on any thread.
	ValidatePtr2(proj Handle, ptr Handle, typeName string) bool

	// Projects and tracks.
	EnumProjects(idx int32) Handle
	CountTracks(proj Handle) int32
	GetTrack(proj Handle, idx int32) Handle
	GetMasterTrack(proj Handle) Handle
	InsertTrackAtIndex(idx int32, wantDefaults bool)
	DeleteTrack(track Handle)
	GetMediaTrackInfoValue(track Handle, param string) float64
	SetMediaTrackInfoValue(track Handle, param string, value float64) bool
	GetSetMediaTrackInfoString(track Handle, param string, buf []byte, set bool) bool
	GetTrackGUID(track Handle) ([16]byte, bool)

	// Sends, receives and hardware outputs.
	CreateTrackSend(src, dest Handle) int32
	RemoveTrackSend(track Handle, category, idx int32) bool
	GetTrackNumSends(track Handle, category int32) int32
	GetTrackSendInfoValue(track Handle, category, idx int32, param string) float64
	SetTrackSendInfoValue(track Handle, category, idx int32, param string, value float64) bool

	// Track FX. Input FX are addressed with InputFXFlag.
	TrackFXGetCount(track Handle) int32
	TrackFXGetRecCount(track Handle) int32
	TrackFXGetFXName(track Handle, fx int32, buf []byte) bool
	TrackFXGetEnabled(track Handle, fx int32) bool
	TrackFXSetEnabled(track Handle, fx int32, enabled bool)
	TrackFXGetNumParams(track Handle, fx int32) int32
	TrackFXGetParamNormalized(track Handle, fx, param int32) float64
	TrackFXSetParamNormalized(track Handle, fx, param int32, value float64) bool
	TrackFXAddByName(track Handle, name string, recFX bool, instantiate int32) int32
	TrackFXDelete(track Handle, fx int32) bool
	TrackFXGetFXGUID(track Handle, fx int32) ([16]byte, bool)

	// Media items and takes.
	CountTrackMediaItems(track Handle) int32
	GetTrackMediaItem(track Handle, idx int32) Handle
	GetMediaItemInfoValue(item Handle, param string) float64
	SetMediaItemInfoValue(item Handle, param string, value float64) bool
	GetActiveTake(item Handle) Handle
	GetSetMediaItemTakeInfoString(take Handle, param string, buf []byte, set bool) bool

	// Undo.
	UndoBeginBlock2(proj Handle)
	UndoEndBlock2(proj Handle, description string, extraFlags int32)
	UndoDoUndo2(proj Handle) int32
	UndoDoRedo2(proj Handle) int32
	MarkProjectDirty(proj Handle)

	// Transport and automation.
	GetPlayStateEx(proj Handle) int32
	GetGlobalAutomationOverride() int32
	SetGlobalAutomationOverride(mode int32)

	// Actions.
	MainOnCommandEx(command, flag int32, proj Handle)
	GetToggleCommandStateEx(section, command int32) int32
	NamedCommandLookup(name string) int32

	// Miscellaneous.
	ShowConsoleMsg(msg string)
	GetAppVersion() string
	GetMaxMidiInputs() int32
	GetMaxMidiOutputs() int32
	GetMIDIInputName(dev int32, buf []byte) bool
	GetMIDIOutputName(dev int32, buf []byte) bool

	// Audio thread only. None of these may allocate.
	GetMidiInput(dev int32) Handle
	GetMidiOutput(dev int32) Handle
	MidiInputGetReadBuf(input Handle) Handle
	MidiEventListEnumItems(list Handle, bpos int32) (ev MIDIEvent, next int32, ok bool)
	MidiOutputSend(output Handle, status, data1, data2 byte, frameOffset int32)
	MidiOutputSendMsg(output Handle, msg []byte, frameOffset int32)
	AudioBuffer(register Handle, output bool, channel, length int32) []float64
}
