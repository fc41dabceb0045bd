//go:build !ios && !android && (amd64 || arm64)

package rawtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/raw"
)

func TestTrackLifecycle(t *testing.T) {
	h := NewHost()
	proj := h.EnumProjects(raw.CurrentProject)
	require.NotEqual(t, raw.Null, proj)

	tr := h.AddTrack(proj, "Drums")
	assert.True(t, h.ValidatePtr2(proj, tr, raw.TypeTrack))
	assert.False(t, h.ValidatePtr2(proj, tr, raw.TypeItem))
	assert.Equal(t, int32(1), h.CountTracks(proj))
	assert.Equal(t, float64(1), h.GetMediaTrackInfoValue(tr, raw.TrackNumber))

	buf := make([]byte, 16)
	require.True(t, h.GetSetMediaTrackInfoString(tr, raw.TrackName, buf, false))
	assert.Equal(t, "Drums", readString(buf))

	h.DeleteTrack(tr)
	assert.False(t, h.ValidatePtr2(proj, tr, raw.TypeTrack))
	assert.Equal(t, int32(0), h.CountTracks(proj))
}

func TestStringsAreTruncatedToBuffer(t *testing.T) {
	h := NewHost()
	tr := h.AddTrack(raw.Null, "A very long track name")

	buf := make([]byte, 5)
	require.True(t, h.GetSetMediaTrackInfoString(tr, raw.TrackName, buf, false))
	assert.Equal(t, "A ve", readString(buf))
}

func TestCloseProjectInvalidatesOwnedObjects(t *testing.T) {
	h := NewHost()
	proj := h.EnumProjects(raw.CurrentProject)
	tr := h.AddTrack(proj, "Bass")
	it := h.AddItem(tr, 0, 4, "take")

	h.CloseProject(proj)

	assert.False(t, h.ValidatePtr2(raw.Null, tr, raw.TypeTrack))
	assert.False(t, h.ValidatePtr2(raw.Null, it, raw.TypeItem))
	assert.Equal(t, raw.Null, h.EnumProjects(raw.CurrentProject))
}

func TestRegistrarDetectsDoubleRemoval(t *testing.T) {
	h := NewHost()

	hd, ok := h.Add(raw.Gaccel, 50001, "Do something")
	require.True(t, ok)
	assert.Equal(t, 1, h.Live(raw.Gaccel))

	assert.True(t, h.Remove(raw.Gaccel, hd))
	assert.False(t, h.Remove(raw.Gaccel, hd))
	assert.Equal(t, 1, h.DoubleRemovals())
	assert.Zero(t, h.Live(0))
}

func TestRegistrarRejections(t *testing.T) {
	h := NewHost()
	h.RejectAdd(raw.ControlSurface, true)
	_, ok := h.Add(raw.ControlSurface, 1, "surface")
	assert.False(t, ok)

	hd, ok := h.Add(raw.AudioHook, 0, "")
	require.True(t, ok)
	h.RejectRemove(raw.AudioHook, true)
	assert.False(t, h.Remove(raw.AudioHook, hd))
	assert.Equal(t, 1, h.Live(raw.AudioHook))
}

func TestAllocateCommandIDIsStablePerName(t *testing.T) {
	h := NewHost()
	a := h.AllocateCommandID("REAPGO_A")
	b := h.AllocateCommandID("REAPGO_B")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, h.AllocateCommandID("REAPGO_A"))
	assert.Equal(t, a, h.NamedCommandLookup("_REAPGO_A"))
}

type recordingCallbacks struct {
	commands []int32
	audio    []bool
	threads  []bool
	host     *Host
}

func (r *recordingCallbacks) HookCommand(command, flag int32) bool {
	r.commands = append(r.commands, command)
	return true
}
func (r *recordingCallbacks) ToggleAction(command int32) int32    { return 1 }
func (r *recordingCallbacks) HookPostCommand(command, flag int32) {}
func (r *recordingCallbacks) SurfaceEvent(key uintptr, ev raw.SurfaceEvent) int32 {
	return int32(key)
}
func (r *recordingCallbacks) OnAudioBuffer(slot uintptr, block raw.AudioBlock) {
	r.audio = append(r.audio, block.IsPost)
	r.threads = append(r.threads, r.host.CurrentThread() == AudioThread)
}

func TestFireOnlyReachesRegisteredKinds(t *testing.T) {
	h := NewHost()
	cb := &recordingCallbacks{host: h}
	h.SetCallbacks(cb)

	assert.False(t, h.FireCommand(1, 0))
	assert.Equal(t, int32(-1), h.GetToggleCommandStateEx(raw.MainSection, 1))

	_, ok := h.Add(raw.HookCommand, 0, "")
	require.True(t, ok)
	_, ok = h.Add(raw.ToggleAction, 0, "")
	require.True(t, ok)
	_, ok = h.Add(raw.AudioHook, 3, "")
	require.True(t, ok)

	h.MainOnCommandEx(7, 0, raw.Null)
	assert.Equal(t, []int32{7}, cb.commands)
	assert.Equal(t, int32(1), h.GetToggleCommandStateEx(raw.MainSection, 7))

	h.FireAudio()
	assert.Equal(t, []bool{false, true}, cb.audio)
	assert.Equal(t, []bool{true, true}, cb.threads)
	assert.Equal(t, MainThread, h.CurrentThread())
}

func TestUndoHistory(t *testing.T) {
	h := NewHost()
	proj := h.EnumProjects(raw.CurrentProject)

	h.UndoBeginBlock2(proj)
	h.UndoBeginBlock2(proj)
	h.UndoEndBlock2(proj, "inner", -1)
	h.UndoEndBlock2(proj, "outer", -1)
	assert.Equal(t, []string{"outer"}, h.UndoHistory(proj))

	assert.Equal(t, int32(1), h.UndoDoUndo2(proj))
	assert.Equal(t, int32(0), h.UndoDoUndo2(proj))
	assert.Equal(t, int32(1), h.UndoDoRedo2(proj))
}
