//go:build !ios && !android && (amd64 || arm64)

package rawtest

import (
	"github.com/obinnaokechukwu/reapgo/raw"
)

// Registration describes a live host-side registration.
type Registration struct {
	Kind   raw.Kind
	Key    uintptr
	Name   string
	Handle raw.Handle
}

func (h *Host) AllocateCommandID(name string) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("AllocateCommandID")
	if id, ok := h.commandIDs[name]; ok {
		return id
	}
	h.nextCommandID++
	h.commandIDs[name] = h.nextCommandID
	return h.nextCommandID
}

func (h *Host) Add(kind raw.Kind, key uintptr, name string) (raw.Handle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("Add")
	if h.rejectAdd[kind] {
		return raw.Null, false
	}
	r := &registration{kind: kind, key: key, name: name}
	r.handle = h.alloc("", raw.Null)
	if kind == raw.AudioHook {
		for dir := range r.bufs {
			r.bufs[dir] = [][]float64{make([]float64, h.blockLength), make([]float64, h.blockLength)}
		}
	}
	h.regs[r.handle] = r
	return r.handle, true
}

// Remove unregisters hd. Removing a handle twice is counted, see
// DoubleRemovals.
func (h *Host) Remove(kind raw.Kind, hd raw.Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record("Remove")
	if h.removed[hd] {
		h.doubleRemoves++
		return false
	}
	r, ok := h.regs[hd]
	if !ok || r.kind != kind {
		return false
	}
	if h.rejectRemove[kind] {
		return false
	}
	delete(h.regs, hd)
	h.removed[hd] = true
	return true
}

// RejectAdd makes subsequent Add calls of kind fail.
func (h *Host) RejectAdd(kind raw.Kind, reject bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejectAdd[kind] = reject
}

// RejectRemove makes subsequent Remove calls of kind fail.
func (h *Host) RejectRemove(kind raw.Kind, reject bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejectRemove[kind] = reject
}

// Registrations returns the live registrations of kind. Zero returns all.
func (h *Host) Registrations(kind raw.Kind) []Registration {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Registration
	for _, r := range h.regs {
		if kind == 0 || r.kind == kind {
			out = append(out, Registration{Kind: r.kind, Key: r.key, Name: r.name, Handle: r.handle})
		}
	}
	return out
}

// Live returns the number of live registrations of kind. Zero counts all.
func (h *Host) Live(kind raw.Kind) int {
	return len(h.Registrations(kind))
}

// DoubleRemovals returns how often an already removed handle was removed
// again.
func (h *Host) DoubleRemovals() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doubleRemoves
}

func (h *Host) hasLocked(kind raw.Kind) bool {
	for _, r := range h.regs {
		if r.kind == kind {
			return true
		}
	}
	return false
}

func (h *Host) callbacksFor(kind raw.Kind) raw.Callbacks {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.callbacks == nil || !h.hasLocked(kind) {
		return nil
	}
	return h.callbacks
}

// FireCommand invokes the command hook and reports whether it handled the
// command.
func (h *Host) FireCommand(command, flag int32) bool {
	cb := h.callbacksFor(raw.HookCommand)
	if cb == nil {
		return false
	}
	return cb.HookCommand(command, flag)
}

// FireToggle invokes the toggle hook. It returns -1 without one.
func (h *Host) FireToggle(command int32) int32 {
	cb := h.callbacksFor(raw.ToggleAction)
	if cb == nil {
		return -1
	}
	return cb.ToggleAction(command)
}

// FirePostCommand invokes the post-command hook.
func (h *Host) FirePostCommand(command, flag int32) {
	if cb := h.callbacksFor(raw.HookPostCommand); cb != nil {
		cb.HookPostCommand(command, flag)
	}
}

// FireSurface delivers ev to every registered control surface and returns
// the last result.
func (h *Host) FireSurface(ev raw.SurfaceEvent) int32 {
	h.mu.Lock()
	cb := h.callbacks
	var keys []uintptr
	for _, r := range h.regs {
		if r.kind == raw.ControlSurface {
			keys = append(keys, r.key)
		}
	}
	h.mu.Unlock()

	var res int32
	if cb == nil {
		return res
	}
	for _, k := range keys {
		res = cb.SurfaceEvent(k, ev)
	}
	return res
}

// FireAudio runs one audio block on the simulated audio thread: every
// audio hook is called before and after processing. Like the host's audio
// thread it must not run concurrently with itself. It does not allocate.
func (h *Host) FireAudio() {
	h.mu.Lock()
	cb := h.callbacks
	h.audioScratch = h.audioScratch[:0]
	for _, r := range h.regs {
		if r.kind == raw.AudioHook && len(h.audioScratch) < cap(h.audioScratch) {
			h.audioScratch = append(h.audioScratch, r)
		}
	}
	length := h.blockLength
	h.mu.Unlock()

	if cb == nil {
		return
	}

	prev := h.thread.Swap(uint64(AudioThread))
	defer h.thread.Store(prev)

	for _, post := range [2]bool{false, true} {
		for _, r := range h.audioScratch {
			cb.OnAudioBuffer(r.key, raw.AudioBlock{
				Register:       r.handle,
				IsPost:         post,
				Length:         length,
				SampleRate:     48000,
				InputChannels:  int32(len(r.bufs[0])),
				OutputChannels: int32(len(r.bufs[1])),
			})
		}
	}
}
