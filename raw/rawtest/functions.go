//go:build !ios && !android && (amd64 || arm64)

package rawtest

import (
	"github.com/google/uuid"

	"github.com/obinnaokechukwu/reapgo/raw"
)

func (h *Host) ValidatePtr2(proj raw.Handle, ptr raw.Handle, typeName string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("ValidatePtr2")
	o, ok := h.objects[ptr]
	if !ok || !o.valid || o.typeName != typeName {
		return false
	}
	return proj == raw.Null || o.owner == raw.Null || o.owner == proj
}

func (h *Host) EnumProjects(idx int32) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("EnumProjects")
	if idx == raw.CurrentProject {
		if h.current == nil {
			return raw.Null
		}
		return h.current.handle
	}
	if idx < 0 || int(idx) >= len(h.projects) {
		return raw.Null
	}
	return h.projects[idx].handle
}

func (h *Host) CountTracks(proj raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("CountTracks")
	if p := h.projectLocked(proj); p != nil {
		return int32(len(p.tracks))
	}
	return 0
}

func (h *Host) GetTrack(proj raw.Handle, idx int32) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetTrack")
	p := h.projectLocked(proj)
	if p == nil || idx < 0 || int(idx) >= len(p.tracks) {
		return raw.Null
	}
	return p.tracks[idx].handle
}

func (h *Host) GetMasterTrack(proj raw.Handle) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMasterTrack")
	if p := h.projectLocked(proj); p != nil {
		return p.master.handle
	}
	return raw.Null
}

func (h *Host) InsertTrackAtIndex(idx int32, wantDefaults bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("InsertTrackAtIndex")
	p := h.current
	if p == nil {
		return
	}
	if idx < 0 || int(idx) > len(p.tracks) {
		idx = int32(len(p.tracks))
	}
	t := h.newTrackLocked(p)
	p.tracks = append(p.tracks, nil)
	copy(p.tracks[idx+1:], p.tracks[idx:])
	p.tracks[idx] = t
}

func (h *Host) DeleteTrack(tr raw.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("DeleteTrack")
	t := h.trackLocked(tr)
	if t == nil {
		return
	}
	p := t.proj
	for i, c := range p.tracks {
		if c == t {
			p.tracks = append(p.tracks[:i], p.tracks[i+1:]...)
			break
		}
	}
	h.objects[tr].valid = false
	for _, it := range t.items {
		h.objects[it.handle].valid = false
		h.objects[it.take.handle].valid = false
	}
}

func (h *Host) GetMediaTrackInfoValue(tr raw.Handle, param string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMediaTrackInfoValue")
	t := h.trackLocked(tr)
	if t == nil {
		return 0
	}
	if param == raw.TrackNumber {
		if t == t.proj.master {
			return -1
		}
		for i, c := range t.proj.tracks {
			if c == t {
				return float64(i + 1)
			}
		}
		return 0
	}
	return t.info[param]
}

func (h *Host) SetMediaTrackInfoValue(tr raw.Handle, param string, value float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetMediaTrackInfoValue")
	t := h.trackLocked(tr)
	if t == nil || param == raw.TrackNumber {
		return false
	}
	t.info[param] = value
	return true
}

func (h *Host) GetSetMediaTrackInfoString(tr raw.Handle, param string, buf []byte, set bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetSetMediaTrackInfoString")
	t := h.trackLocked(tr)
	if t == nil {
		return false
	}
	if set {
		t.strings[param] = readString(buf)
		return true
	}
	s, ok := t.strings[param]
	if !ok {
		return false
	}
	writeString(buf, s)
	return true
}

func (h *Host) GetTrackGUID(tr raw.Handle) ([16]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetTrackGUID")
	t := h.trackLocked(tr)
	if t == nil {
		return [16]byte{}, false
	}
	return t.guid, true
}

func (h *Host) CreateTrackSend(src, dest raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("CreateTrackSend")
	s := h.trackLocked(src)
	if s == nil {
		return -1
	}
	snd := &send{src: s, info: map[string]float64{raw.SendVolume: 1}}
	if dest == raw.Null {
		s.hwOuts = append(s.hwOuts, snd)
		return int32(len(s.hwOuts) - 1)
	}
	d := h.trackLocked(dest)
	if d == nil || d == s {
		return -1
	}
	snd.dest = d
	s.sends = append(s.sends, snd)
	d.recvs = append(d.recvs, snd)
	return int32(len(s.sends) - 1)
}

func (h *Host) RemoveTrackSend(tr raw.Handle, category, idx int32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("RemoveTrackSend")
	t := h.trackLocked(tr)
	if t == nil {
		return false
	}
	list := t.sendsLocked(category)
	if idx < 0 || int(idx) >= len(list) {
		return false
	}
	snd := list[idx]
	removeSend(&snd.src.sends, snd)
	removeSend(&snd.src.hwOuts, snd)
	if snd.dest != nil {
		removeSend(&snd.dest.recvs, snd)
	}
	return true
}

func removeSend(list *[]*send, snd *send) {
	for i, s := range *list {
		if s == snd {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

func (h *Host) GetTrackNumSends(tr raw.Handle, category int32) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetTrackNumSends")
	t := h.trackLocked(tr)
	if t == nil {
		return 0
	}
	return int32(len(t.sendsLocked(category)))
}

func (h *Host) sendLocked(tr raw.Handle, category, idx int32) *send {
	t := h.trackLocked(tr)
	if t == nil {
		return nil
	}
	list := t.sendsLocked(category)
	if idx < 0 || int(idx) >= len(list) {
		return nil
	}
	return list[idx]
}

func (h *Host) GetTrackSendInfoValue(tr raw.Handle, category, idx int32, param string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetTrackSendInfoValue")
	if s := h.sendLocked(tr, category, idx); s != nil {
		return s.info[param]
	}
	return 0
}

func (h *Host) SetTrackSendInfoValue(tr raw.Handle, category, idx int32, param string, value float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetTrackSendInfoValue")
	s := h.sendLocked(tr, category, idx)
	if s == nil {
		return false
	}
	s.info[param] = value
	return true
}

func (h *Host) TrackFXGetCount(tr raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetCount")
	if t := h.trackLocked(tr); t != nil {
		return int32(len(t.fx))
	}
	return 0
}

func (h *Host) TrackFXGetRecCount(tr raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetRecCount")
	if t := h.trackLocked(tr); t != nil {
		return int32(len(t.recFX))
	}
	return 0
}

func (h *Host) fxLocked(tr raw.Handle, idx int32) *fx {
	t := h.trackLocked(tr)
	if t == nil {
		return nil
	}
	return t.fxLocked(idx)
}

func (h *Host) TrackFXGetFXName(tr raw.Handle, idx int32, buf []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetFXName")
	f := h.fxLocked(tr, idx)
	if f == nil {
		return false
	}
	writeString(buf, f.name)
	return true
}

func (h *Host) TrackFXGetEnabled(tr raw.Handle, idx int32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetEnabled")
	f := h.fxLocked(tr, idx)
	return f != nil && f.enabled
}

func (h *Host) TrackFXSetEnabled(tr raw.Handle, idx int32, enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXSetEnabled")
	if f := h.fxLocked(tr, idx); f != nil {
		f.enabled = enabled
	}
}

func (h *Host) TrackFXGetNumParams(tr raw.Handle, idx int32) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetNumParams")
	if f := h.fxLocked(tr, idx); f != nil {
		return int32(len(f.params))
	}
	return 0
}

func (h *Host) TrackFXGetParamNormalized(tr raw.Handle, idx, param int32) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetParamNormalized")
	f := h.fxLocked(tr, idx)
	if f == nil || param < 0 || int(param) >= len(f.params) {
		return -1
	}
	return f.params[param]
}

func (h *Host) TrackFXSetParamNormalized(tr raw.Handle, idx, param int32, value float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXSetParamNormalized")
	f := h.fxLocked(tr, idx)
	if f == nil || param < 0 || int(param) >= len(f.params) {
		return false
	}
	f.params[param] = value
	return true
}

func (h *Host) TrackFXAddByName(tr raw.Handle, name string, recFX bool, instantiate int32) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXAddByName")
	t := h.trackLocked(tr)
	if t == nil || name == "" {
		return -1
	}
	chain := &t.fx
	flag := int32(0)
	if recFX {
		chain = &t.recFX
		flag = raw.InputFXFlag
	}
	if instantiate >= 0 {
		for i, f := range *chain {
			if f.name == name {
				return int32(i) | flag
			}
		}
		if instantiate == 0 {
			return -1
		}
	}
	*chain = append(*chain, &fx{name: name, enabled: true, params: make([]float64, 4), guid: uuid.New()})
	return int32(len(*chain)-1) | flag
}

func (h *Host) TrackFXDelete(tr raw.Handle, idx int32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXDelete")
	t := h.trackLocked(tr)
	if t == nil {
		return false
	}
	chain := &t.fx
	if idx&raw.InputFXFlag != 0 {
		chain = &t.recFX
		idx &^= raw.InputFXFlag
	}
	if idx < 0 || int(idx) >= len(*chain) {
		return false
	}
	*chain = append((*chain)[:idx], (*chain)[idx+1:]...)
	return true
}

func (h *Host) TrackFXGetFXGUID(tr raw.Handle, idx int32) ([16]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("TrackFXGetFXGUID")
	f := h.fxLocked(tr, idx)
	if f == nil {
		return [16]byte{}, false
	}
	return f.guid, true
}

func (h *Host) CountTrackMediaItems(tr raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("CountTrackMediaItems")
	if t := h.trackLocked(tr); t != nil {
		return int32(len(t.items))
	}
	return 0
}

func (h *Host) GetTrackMediaItem(tr raw.Handle, idx int32) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetTrackMediaItem")
	t := h.trackLocked(tr)
	if t == nil || idx < 0 || int(idx) >= len(t.items) {
		return raw.Null
	}
	return t.items[idx].handle
}

func (h *Host) GetMediaItemInfoValue(it raw.Handle, param string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetMediaItemInfoValue")
	if i := h.items[it]; i != nil {
		return i.info[param]
	}
	return 0
}

func (h *Host) SetMediaItemInfoValue(it raw.Handle, param string, value float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetMediaItemInfoValue")
	i := h.items[it]
	if i == nil {
		return false
	}
	i.info[param] = value
	return true
}

func (h *Host) GetActiveTake(it raw.Handle) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetActiveTake")
	if i := h.items[it]; i != nil && i.take != nil {
		return i.take.handle
	}
	return raw.Null
}

func (h *Host) GetSetMediaItemTakeInfoString(tk raw.Handle, param string, buf []byte, set bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetSetMediaItemTakeInfoString")
	t := h.takes[tk]
	if t == nil || param != raw.TakeName {
		return false
	}
	if set {
		t.name = readString(buf)
	} else {
		writeString(buf, t.name)
	}
	return true
}

func (h *Host) UndoBeginBlock2(proj raw.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("UndoBeginBlock2")
	if p := h.projectLocked(proj); p != nil {
		p.undoDepth++
	}
}

func (h *Host) UndoEndBlock2(proj raw.Handle, description string, extraFlags int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("UndoEndBlock2")
	p := h.projectLocked(proj)
	if p == nil || p.undoDepth == 0 {
		return
	}
	p.undoDepth--
	if p.undoDepth == 0 {
		p.undo = append(p.undo, description)
		p.redo = nil
	}
}

func (h *Host) UndoDoUndo2(proj raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("UndoDoUndo2")
	p := h.projectLocked(proj)
	if p == nil || len(p.undo) == 0 {
		return 0
	}
	last := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]
	p.redo = append(p.redo, last)
	return 1
}

func (h *Host) UndoDoRedo2(proj raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("UndoDoRedo2")
	p := h.projectLocked(proj)
	if p == nil || len(p.redo) == 0 {
		return 0
	}
	last := p.redo[len(p.redo)-1]
	p.redo = p.redo[:len(p.redo)-1]
	p.undo = append(p.undo, last)
	return 1
}

func (h *Host) MarkProjectDirty(proj raw.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("MarkProjectDirty")
	if p := h.projectLocked(proj); p != nil {
		p.dirty++
	}
}

func (h *Host) GetPlayStateEx(proj raw.Handle) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetPlayStateEx")
	if p := h.projectLocked(proj); p != nil {
		return p.playState
	}
	return 0
}

func (h *Host) GetGlobalAutomationOverride() int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetGlobalAutomationOverride")
	return h.automationOverride
}

func (h *Host) SetGlobalAutomationOverride(mode int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("SetGlobalAutomationOverride")
	h.automationOverride = mode
}

// MainOnCommandEx runs the command hooks, then the post-command hooks, as
// the host's action dispatch does.
func (h *Host) MainOnCommandEx(command, flag int32, proj raw.Handle) {
	h.mu.Lock()
	h.record("MainOnCommandEx")
	h.mu.Unlock()

	h.FireCommand(command, flag)
	h.FirePostCommand(command, flag)
}

// GetToggleCommandStateEx asks the toggle hook, or reports -1 when none is
// registered.
func (h *Host) GetToggleCommandStateEx(section, command int32) int32 {
	h.mu.Lock()
	h.record("GetToggleCommandStateEx")
	h.mu.Unlock()

	if section != raw.MainSection {
		return -1
	}
	return h.FireToggle(command)
}

func (h *Host) NamedCommandLookup(name string) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("NamedCommandLookup")
	if len(name) > 0 && name[0] == '_' {
		name = name[1:]
	}
	return h.commandIDs[name]
}

func (h *Host) ShowConsoleMsg(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("ShowConsoleMsg")
	h.console = append(h.console, msg)
}

func (h *Host) GetAppVersion() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("GetAppVersion")
	return h.appVersion
}
