//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/obinnaokechukwu/reapgo/raw"
)

// Main-thread host functions. purego wraps them with reflection, which
// allocates, so nothing on the audio thread may call these.
var (
	validatePtr2                  func(proj, ptr uintptr, typeName string) bool
	enumProjects                  func(idx int32, fn *byte, fnSize int32) uintptr
	countTracks                   func(proj uintptr) int32
	getTrack                      func(proj uintptr, idx int32) uintptr
	getMasterTrack                func(proj uintptr) uintptr
	insertTrackAtIndex            func(idx int32, wantDefaults bool)
	deleteTrack                   func(tr uintptr)
	getMediaTrackInfoValue        func(tr uintptr, param string) float64
	setMediaTrackInfoValue        func(tr uintptr, param string, value float64) bool
	getSetMediaTrackInfoString    func(tr uintptr, param string, buf *byte, set bool) bool
	getTrackGUID                  func(tr uintptr) uintptr
	createTrackSend               func(src, dest uintptr) int32
	removeTrackSend               func(tr uintptr, category, idx int32) bool
	getTrackNumSends              func(tr uintptr, category int32) int32
	getTrackSendInfoValue         func(tr uintptr, category, idx int32, param string) float64
	setTrackSendInfoValue         func(tr uintptr, category, idx int32, param string, value float64) bool
	trackFXGetCount               func(tr uintptr) int32
	trackFXGetRecCount            func(tr uintptr) int32
	trackFXGetFXName              func(tr uintptr, fx int32, buf *byte, size int32) bool
	trackFXGetEnabled             func(tr uintptr, fx int32) bool
	trackFXSetEnabled             func(tr uintptr, fx int32, enabled bool)
	trackFXGetNumParams           func(tr uintptr, fx int32) int32
	trackFXGetParamNormalized     func(tr uintptr, fx, param int32) float64
	trackFXSetParamNormalized     func(tr uintptr, fx, param int32, value float64) bool
	trackFXAddByName              func(tr uintptr, name string, recFX bool, instantiate int32) int32
	trackFXDelete                 func(tr uintptr, fx int32) bool
	trackFXGetFXGUID              func(tr uintptr, fx int32) uintptr
	countTrackMediaItems          func(tr uintptr) int32
	getTrackMediaItem             func(tr uintptr, idx int32) uintptr
	getMediaItemInfoValue         func(it uintptr, param string) float64
	setMediaItemInfoValue         func(it uintptr, param string, value float64) bool
	getActiveTake                 func(it uintptr) uintptr
	getSetMediaItemTakeInfoString func(tk uintptr, param string, buf *byte, set bool) bool
	undoBeginBlock2               func(proj uintptr)
	undoEndBlock2                 func(proj uintptr, desc string, extraFlags int32)
	undoDoUndo2                   func(proj uintptr) int32
	undoDoRedo2                   func(proj uintptr) int32
	markProjectDirty              func(proj uintptr)
	getPlayStateEx                func(proj uintptr) int32
	getGlobalAutomationOverride   func() int32
	setGlobalAutomationOverride   func(mode int32)
	mainOnCommandEx               func(command, flag int32, proj uintptr)
	getToggleCommandStateEx       func(section, command int32) int32
	namedCommandLookup            func(name string) int32
	showConsoleMsg                func(msg string)
	getAppVersion                 func() string
	getMaxMidiInputs              func() int32
	getMaxMidiOutputs             func() int32
	getMIDIInputName              func(dev int32, buf *byte, size int32) bool
	getMIDIOutputName             func(dev int32, buf *byte, size int32) bool
	audioRegHardwareHook          func(isAdd bool, reg uintptr) int32
)

// Audio-thread host functions, called through SyscallN.
var (
	addrGetMidiInput  uintptr
	addrGetMidiOutput uintptr
)

func functionTable() []binding {
	return []binding{
		{name: "ValidatePtr2", fn: &validatePtr2},
		{name: "EnumProjects", fn: &enumProjects},
		{name: "CountTracks", fn: &countTracks},
		{name: "GetTrack", fn: &getTrack},
		{name: "GetMasterTrack", fn: &getMasterTrack},
		{name: "InsertTrackAtIndex", fn: &insertTrackAtIndex},
		{name: "DeleteTrack", fn: &deleteTrack},
		{name: "GetMediaTrackInfo_Value", fn: &getMediaTrackInfoValue},
		{name: "SetMediaTrackInfo_Value", fn: &setMediaTrackInfoValue},
		{name: "GetSetMediaTrackInfo_String", fn: &getSetMediaTrackInfoString},
		{name: "GetTrackGUID", fn: &getTrackGUID},
		{name: "CreateTrackSend", fn: &createTrackSend},
		{name: "RemoveTrackSend", fn: &removeTrackSend},
		{name: "GetTrackNumSends", fn: &getTrackNumSends},
		{name: "GetTrackSendInfo_Value", fn: &getTrackSendInfoValue},
		{name: "SetTrackSendInfo_Value", fn: &setTrackSendInfoValue},
		{name: "TrackFX_GetCount", fn: &trackFXGetCount},
		{name: "TrackFX_GetRecCount", fn: &trackFXGetRecCount},
		{name: "TrackFX_GetFXName", fn: &trackFXGetFXName},
		{name: "TrackFX_GetEnabled", fn: &trackFXGetEnabled},
		{name: "TrackFX_SetEnabled", fn: &trackFXSetEnabled},
		{name: "TrackFX_GetNumParams", fn: &trackFXGetNumParams},
		{name: "TrackFX_GetParamNormalized", fn: &trackFXGetParamNormalized},
		{name: "TrackFX_SetParamNormalized", fn: &trackFXSetParamNormalized},
		{name: "TrackFX_AddByName", fn: &trackFXAddByName},
		{name: "TrackFX_Delete", fn: &trackFXDelete},
		{name: "TrackFX_GetFXGUID", fn: &trackFXGetFXGUID},
		{name: "CountTrackMediaItems", fn: &countTrackMediaItems},
		{name: "GetTrackMediaItem", fn: &getTrackMediaItem},
		{name: "GetMediaItemInfo_Value", fn: &getMediaItemInfoValue},
		{name: "SetMediaItemInfo_Value", fn: &setMediaItemInfoValue},
		{name: "GetActiveTake", fn: &getActiveTake},
		{name: "GetSetMediaItemTakeInfo_String", fn: &getSetMediaItemTakeInfoString},
		{name: "Undo_BeginBlock2", fn: &undoBeginBlock2},
		{name: "Undo_EndBlock2", fn: &undoEndBlock2},
		{name: "Undo_DoUndo2", fn: &undoDoUndo2},
		{name: "Undo_DoRedo2", fn: &undoDoRedo2},
		{name: "MarkProjectDirty", fn: &markProjectDirty},
		{name: "GetPlayStateEx", fn: &getPlayStateEx},
		{name: "GetGlobalAutomationOverride", fn: &getGlobalAutomationOverride},
		{name: "SetGlobalAutomationOverride", fn: &setGlobalAutomationOverride},
		{name: "Main_OnCommandEx", fn: &mainOnCommandEx},
		{name: "GetToggleCommandStateEx", fn: &getToggleCommandStateEx},
		{name: "NamedCommandLookup", fn: &namedCommandLookup},
		{name: "ShowConsoleMsg", fn: &showConsoleMsg},
		{name: "GetAppVersion", fn: &getAppVersion},
		{name: "GetMaxMidiInputs", fn: &getMaxMidiInputs},
		{name: "GetMaxMidiOutputs", fn: &getMaxMidiOutputs},
		{name: "GetMIDIInputName", fn: &getMIDIInputName},
		{name: "GetMIDIOutputName", fn: &getMIDIOutputName},
		{name: "Audio_RegHardwareHook", fn: &audioRegHardwareHook},
		{name: "GetMidiInput", addr: &addrGetMidiInput},
		{name: "GetMidiOutput", addr: &addrGetMidiOutput},
	}
}

// readGUID copies the 16 bytes of a host GUID.
func readGUID(p uintptr) ([16]byte, bool) {
	var g [16]byte
	if p == 0 {
		return g, false
	}
	copy(g[:], unsafe.Slice((*byte)(unsafe.Pointer(p)), len(g)))
	return g, true
}

func (h *Host) ValidatePtr2(proj, ptr raw.Handle, typeName string) bool {
	return validatePtr2(uintptr(proj), uintptr(ptr), typeName)
}

func (h *Host) EnumProjects(idx int32) raw.Handle {
	return raw.Handle(enumProjects(idx, nil, 0))
}

func (h *Host) CountTracks(proj raw.Handle) int32 { return countTracks(uintptr(proj)) }

func (h *Host) GetTrack(proj raw.Handle, idx int32) raw.Handle {
	return raw.Handle(getTrack(uintptr(proj), idx))
}

func (h *Host) GetMasterTrack(proj raw.Handle) raw.Handle {
	return raw.Handle(getMasterTrack(uintptr(proj)))
}

func (h *Host) InsertTrackAtIndex(idx int32, wantDefaults bool) {
	insertTrackAtIndex(idx, wantDefaults)
}

func (h *Host) DeleteTrack(tr raw.Handle) { deleteTrack(uintptr(tr)) }

func (h *Host) GetMediaTrackInfoValue(tr raw.Handle, param string) float64 {
	return getMediaTrackInfoValue(uintptr(tr), param)
}

func (h *Host) SetMediaTrackInfoValue(tr raw.Handle, param string, value float64) bool {
	return setMediaTrackInfoValue(uintptr(tr), param, value)
}

func (h *Host) GetSetMediaTrackInfoString(tr raw.Handle, param string, buf []byte, set bool) bool {
	return getSetMediaTrackInfoString(uintptr(tr), param, bufPtr(buf), set)
}

func (h *Host) GetTrackGUID(tr raw.Handle) ([16]byte, bool) {
	return readGUID(getTrackGUID(uintptr(tr)))
}

func (h *Host) CreateTrackSend(src, dest raw.Handle) int32 {
	return createTrackSend(uintptr(src), uintptr(dest))
}

func (h *Host) RemoveTrackSend(tr raw.Handle, category, idx int32) bool {
	return removeTrackSend(uintptr(tr), category, idx)
}

func (h *Host) GetTrackNumSends(tr raw.Handle, category int32) int32 {
	return getTrackNumSends(uintptr(tr), category)
}

func (h *Host) GetTrackSendInfoValue(tr raw.Handle, category, idx int32, param string) float64 {
	return getTrackSendInfoValue(uintptr(tr), category, idx, param)
}

func (h *Host) SetTrackSendInfoValue(tr raw.Handle, category, idx int32, param string, value float64) bool {
	return setTrackSendInfoValue(uintptr(tr), category, idx, param, value)
}

func (h *Host) TrackFXGetCount(tr raw.Handle) int32    { return trackFXGetCount(uintptr(tr)) }
func (h *Host) TrackFXGetRecCount(tr raw.Handle) int32 { return trackFXGetRecCount(uintptr(tr)) }

func (h *Host) TrackFXGetFXName(tr raw.Handle, fx int32, buf []byte) bool {
	return trackFXGetFXName(uintptr(tr), fx, bufPtr(buf), int32(len(buf)))
}

func (h *Host) TrackFXGetEnabled(tr raw.Handle, fx int32) bool {
	return trackFXGetEnabled(uintptr(tr), fx)
}

func (h *Host) TrackFXSetEnabled(tr raw.Handle, fx int32, enabled bool) {
	trackFXSetEnabled(uintptr(tr), fx, enabled)
}

func (h *Host) TrackFXGetNumParams(tr raw.Handle, fx int32) int32 {
	return trackFXGetNumParams(uintptr(tr), fx)
}

func (h *Host) TrackFXGetParamNormalized(tr raw.Handle, fx, param int32) float64 {
	return trackFXGetParamNormalized(uintptr(tr), fx, param)
}

func (h *Host) TrackFXSetParamNormalized(tr raw.Handle, fx, param int32, value float64) bool {
	return trackFXSetParamNormalized(uintptr(tr), fx, param, value)
}

func (h *Host) TrackFXAddByName(tr raw.Handle, name string, recFX bool, instantiate int32) int32 {
	return trackFXAddByName(uintptr(tr), name, recFX, instantiate)
}

func (h *Host) TrackFXDelete(tr raw.Handle, fx int32) bool {
	return trackFXDelete(uintptr(tr), fx)
}

func (h *Host) TrackFXGetFXGUID(tr raw.Handle, fx int32) ([16]byte, bool) {
	return readGUID(trackFXGetFXGUID(uintptr(tr), fx))
}

func (h *Host) CountTrackMediaItems(tr raw.Handle) int32 {
	return countTrackMediaItems(uintptr(tr))
}

func (h *Host) GetTrackMediaItem(tr raw.Handle, idx int32) raw.Handle {
	return raw.Handle(getTrackMediaItem(uintptr(tr), idx))
}

func (h *Host) GetMediaItemInfoValue(it raw.Handle, param string) float64 {
	return getMediaItemInfoValue(uintptr(it), param)
}

func (h *Host) SetMediaItemInfoValue(it raw.Handle, param string, value float64) bool {
	return setMediaItemInfoValue(uintptr(it), param, value)
}

func (h *Host) GetActiveTake(it raw.Handle) raw.Handle {
	return raw.Handle(getActiveTake(uintptr(it)))
}

func (h *Host) GetSetMediaItemTakeInfoString(tk raw.Handle, param string, buf []byte, set bool) bool {
	return getSetMediaItemTakeInfoString(uintptr(tk), param, bufPtr(buf), set)
}

func (h *Host) UndoBeginBlock2(proj raw.Handle) { undoBeginBlock2(uintptr(proj)) }

func (h *Host) UndoEndBlock2(proj raw.Handle, description string, extraFlags int32) {
	undoEndBlock2(uintptr(proj), description, extraFlags)
}

func (h *Host) UndoDoUndo2(proj raw.Handle) int32 { return undoDoUndo2(uintptr(proj)) }
func (h *Host) UndoDoRedo2(proj raw.Handle) int32 { return undoDoRedo2(uintptr(proj)) }
func (h *Host) MarkProjectDirty(proj raw.Handle)  { markProjectDirty(uintptr(proj)) }
func (h *Host) GetPlayStateEx(proj raw.Handle) int32 {
	return getPlayStateEx(uintptr(proj))
}

func (h *Host) GetGlobalAutomationOverride() int32     { return getGlobalAutomationOverride() }
func (h *Host) SetGlobalAutomationOverride(mode int32) { setGlobalAutomationOverride(mode) }

func (h *Host) MainOnCommandEx(command, flag int32, proj raw.Handle) {
	mainOnCommandEx(command, flag, uintptr(proj))
}

func (h *Host) GetToggleCommandStateEx(section, command int32) int32 {
	return getToggleCommandStateEx(section, command)
}

func (h *Host) NamedCommandLookup(name string) int32 { return namedCommandLookup(name) }
func (h *Host) ShowConsoleMsg(msg string)            { showConsoleMsg(msg) }
func (h *Host) GetAppVersion() string                { return getAppVersion() }
func (h *Host) GetMaxMidiInputs() int32              { return getMaxMidiInputs() }
func (h *Host) GetMaxMidiOutputs() int32             { return getMaxMidiOutputs() }

func (h *Host) GetMIDIInputName(dev int32, buf []byte) bool {
	return getMIDIInputName(dev, bufPtr(buf), int32(len(buf)))
}

func (h *Host) GetMIDIOutputName(dev int32, buf []byte) bool {
	return getMIDIOutputName(dev, bufPtr(buf), int32(len(buf)))
}

func (h *Host) GetMidiInput(dev int32) raw.Handle {
	r, _, _ := purego.SyscallN(addrGetMidiInput, uintptr(dev))
	return raw.Handle(r)
}

func (h *Host) GetMidiOutput(dev int32) raw.Handle {
	r, _, _ := purego.SyscallN(addrGetMidiOutput, uintptr(dev))
	return raw.Handle(r)
}

var _ raw.Functions = (*Host)(nil)
